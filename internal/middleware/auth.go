package middleware

import (
	"errors"
	"net/http"
	"strings"

	"byblos-atelier/config"
	"byblos-atelier/internal/auth"
	"byblos-atelier/internal/cache"
	"byblos-atelier/internal/model"
	"byblos-atelier/internal/service"
	apperrors "byblos-atelier/pkg/app_errors"
	"byblos-atelier/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	identityKey = "identity"
	claimsKey   = "claims"
)

// ExtractToken looks at the Authorization header, then the auth cookie, then (when
// allowed) the token query parameter.
func ExtractToken(c *gin.Context, cookieName string, allowQuery bool) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && strings.TrimSpace(token) != "" {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	if allowQuery {
		return c.Query("token")
	}
	return ""
}

// Authenticate resolves the request's identity or aborts with 401.
func Authenticate(identities service.IdentityService, revoked cache.TokenRevocationStore, cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.WithComponent("auth").With(
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
		)

		token := ExtractToken(c, cfg.CookieName, cfg.AllowQueryToken)
		if token == "" {
			log.Warn("Missing auth token")
			abortUnauthorized(c, apperrors.ErrUnauthenticated)
			return
		}

		identity, claims, err := identities.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, apperrors.ErrInvalidToken):
			log.Warn("Invalid auth token", zap.Error(err))
			abortUnauthorized(c, apperrors.ErrInvalidToken)
			return
		case errors.Is(err, apperrors.ErrIdentityNotFound):
			log.Warn("Auth identity not found", zap.Error(err))
			abortUnauthorized(c, apperrors.ErrIdentityNotFound)
			return
		default:
			log.Error("Failed to resolve identity", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if claims.ID != "" {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				log.Error("Failed to check token revocation", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			if isRevoked {
				log.Warn("Revoked auth token", zap.String("jti", claims.ID))
				abortUnauthorized(c, apperrors.ErrInvalidToken)
				return
			}
		}

		c.Set(identityKey, identity)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated identity has one of roles.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok {
			abortUnauthorized(c, apperrors.ErrUnauthenticated)
			return
		}
		for _, role := range roles {
			if identity.Role() == role {
				c.Next()
				return
			}
		}
		logger.WithComponent("auth").Warn("Role not allowed",
			zap.String("role", string(identity.Role())),
			zap.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
}

func Identity(c *gin.Context) (model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(model.Identity)
	return identity, ok
}

func Claims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// Account returns the seller or organizer behind the request.
func Account(c *gin.Context) (*model.Account, bool) {
	identity, ok := Identity(c)
	if !ok {
		return nil, false
	}
	return model.AccountOf(identity)
}

// SetIdentity is used by handler tests to bypass token resolution.
func SetIdentity(c *gin.Context, identity model.Identity, claims *auth.Claims) {
	c.Set(identityKey, identity)
	if claims != nil {
		c.Set(claimsKey, claims)
	}
}
