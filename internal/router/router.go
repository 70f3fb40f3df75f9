package router

import (
	"context"
	"net/http"
	"time"

	"byblos-atelier/config"
	"byblos-atelier/internal/cache"
	"byblos-atelier/internal/handler"
	"byblos-atelier/internal/middleware"
	"byblos-atelier/internal/model"
	"byblos-atelier/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	PublicEvents *handler.PublicEventHandler
	Events       *handler.EventHandler
	Tickets      *handler.TicketHandler
	Dashboard    *handler.DashboardHandler
	Organizers   *handler.AccountHandler
	Sellers      *handler.AccountHandler
	Admin        *handler.AdminHandler
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

func New(
	cfg *config.Config,
	h Handlers,
	authenticate gin.HandlerFunc,
	limiter cache.RateLimiter,
	checks map[string]HealthCheck,
) *gin.Engine {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		requestid.New(),
		middleware.AccessLog(),
		middleware.Metrics(),
	)
	// cors.New panics on an empty origin list; no origins means same-origin only
	if len(cfg.CORS.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	} else {
		logger.WithComponent("router").Warn("No CORS origins configured, cross-origin requests are not allowed")
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.GET("/health", health(checks))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limit := func(scope string) gin.HandlerFunc {
		return middleware.RateLimit(limiter, scope)
	}

	api := r.Group("/api")
	h.PublicEvents.RegisterRoutes(api)
	h.Tickets.RegisterValidationRoutes(api)

	organizers := api.Group("/organizers")
	h.Organizers.RegisterRoutes(organizers, limit, authenticate, middleware.RequireRole(model.RoleOrganizer))
	organizerOnly := organizers.Group("", authenticate, middleware.RequireRole(model.RoleOrganizer))
	h.Dashboard.RegisterRoutes(organizerOnly)
	h.Events.RegisterRoutes(organizerOnly)
	h.Tickets.RegisterRoutes(organizerOnly)

	sellers := api.Group("/sellers")
	h.Sellers.RegisterRoutes(sellers, limit, authenticate, middleware.RequireRole(model.RoleSeller))

	admin := api.Group("/admin")
	h.Admin.RegisterRoutes(admin, limit, authenticate, middleware.RequireRole(model.RoleAdmin))

	return r
}

func health(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		result := gin.H{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				result[name] = err.Error()
				continue
			}
			result[name] = "ok"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": result})
	}
}
