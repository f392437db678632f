package api

import (
	"net/http"
	"time"

	"nse-screener/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates and configures a Chi router with all routes
func NewRouter(h *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(CORSMiddleware(cfg.Server.CORSAllowedOrigins))
	r.Use(MetricsMiddleware)

	// Health check
	r.Get("/health", h.HandleHealth)

	// Metrics endpoint for Prometheus
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Quote snapshot reads
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/latest", h.HandleLatestQuotes)
			r.Get("/filter", h.HandleFilterQuotes)
			r.Get("/statistics", h.HandleStatistics)
			r.Get("/movers", h.HandleMovers)
		})

		// Scan history
		r.Get("/scans/history", h.HandleScanHistory)

		// Scanner control
		r.Route("/scanner", func(r chi.Router) {
			r.Get("/status", h.HandleScannerStatus)
			r.Post("/scan", h.HandleTriggerScan)
		})
	})

	return r
}

// CORSMiddleware returns CORS middleware with the specified allowed origins
func CORSMiddleware(allowedOrigins string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
