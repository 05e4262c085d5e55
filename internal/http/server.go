// Package http exposes the JSON API: vehicle catalog lookups, fuel
// prices, route search, the expense record lifecycle and export job
// submission.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"gyeongbi/internal/amqp"
	"gyeongbi/internal/cache"
	"gyeongbi/internal/ledger"
	"gyeongbi/internal/pricing"
	"gyeongbi/internal/route"
)

// JobPublisher submits export jobs to the queue. Nil when no broker is
// configured; the exports endpoint then answers 503.
type JobPublisher interface {
	PublishExportJob(ctx context.Context, msg *amqp.ExportJobMessage) error
}

type Server struct {
	http.Server

	prices *pricing.Resolver
	routes route.Provider
	ledger *ledger.Ledger
	jobs   JobPublisher
	author string

	// Route lookups hit an external API; identical searches within a
	// short window are served from cache.
	routeCache *cache.LRUCache[route.Result]

	rateLimiter      *rateLimiter
	metrics          *securityMetrics
	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and middleware, returning a
// ready-to-run http.Server. jobs may be nil.
func NewServer(addr string, prices *pricing.Resolver, routes route.Provider, l *ledger.Ledger, jobs JobPublisher, author string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		prices:           prices,
		routes:           routes,
		ledger:           l,
		jobs:             jobs,
		author:           author,
		routeCache:       cache.NewLRUCache[route.Result](200, 5*time.Minute),
		rateLimiter:      newRateLimiter(),
		metrics:          &securityMetrics{},
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/catalog/brands", s.withSecurityHeaders(s.handleBrands))
	mux.HandleFunc("/api/catalog/models", s.withSecurityHeaders(s.handleModels))
	mux.HandleFunc("/api/catalog/variants", s.withSecurityHeaders(s.handleVariants))
	mux.HandleFunc("/api/fuel-prices", s.withSecurityHeaders(s.handleFuelPrices))
	mux.HandleFunc("/api/routes/search", s.withSecurityHeaders(s.handleRouteSearch))
	mux.HandleFunc("/api/expenses", s.withSecurityHeaders(s.handleExpenses))
	mux.HandleFunc("/api/expenses/", s.withSecurityHeaders(s.handleExpenseByID))
	mux.HandleFunc("/api/exports", s.withSecurityHeaders(s.handleExportJob))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// startCacheCleanup periodically drops expired route cache entries.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.routeCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Route cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// withSecurityHeaders adds security headers, rate limiting, and
// request logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		if detectSuspiciousRequest(r, s.metrics) {
			slog.WarnContext(ctx, "Suspicious request", "client_ip", clientIP, "url", r.URL.Path)
		}

		// Mutating requests are rate limited per client IP.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP, s.metrics) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
