package metrics

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	ticketSales = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticket_sales_total",
			Help: "Total tickets recorded",
		},
	)

	statsRecompute = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_stats_recompute_duration_seconds",
			Help:    "Duration of dashboard stats recomputation",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)

	mailJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_jobs_total",
			Help: "Mail jobs processed by template and result",
		},
		[]string{"template", "result"},
	)

	rateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)
)

func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func TrackTicketSale() {
	ticketSales.Inc()
}

func ObserveStatsRecompute(duration time.Duration) {
	statsRecompute.Observe(duration.Seconds())
}

func TrackMailJob(template, result string) {
	mailJobs.WithLabelValues(template, result).Inc()
}

func TrackRateLimited(route string) {
	rateLimited.WithLabelValues(route).Inc()
}

// RegisterPoolStats exposes connection pool gauges read at scrape time.
func RegisterPoolStats(pool *pgxpool.Pool) {
	gauges := map[string]func(*pgxpool.Stat) int32{
		"db_pool_acquired_conns": (*pgxpool.Stat).AcquiredConns,
		"db_pool_idle_conns":     (*pgxpool.Stat).IdleConns,
		"db_pool_total_conns":    (*pgxpool.Stat).TotalConns,
	}
	for name, read := range gauges {
		read := read
		prometheus.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Name: name, Help: "pgx pool " + name},
			func() float64 { return float64(read(pool.Stat())) },
		))
	}
}
