// Package http exposes the expense tracker as a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"outlay/internal/cache"
	"outlay/internal/core"
)

// ExpenseService is the application surface the handlers talk to.
// *services.ExpenseService implements it; tests substitute fakes.
type ExpenseService interface {
	Create(ctx context.Context, e core.Expense) (core.Expense, error)
	Update(ctx context.Context, e core.Expense) (core.Expense, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (core.Expense, error)
	ListMonth(ctx context.Context, year int, month time.Month) ([]core.Expense, error)
}

// Options tune the server's caches.
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
}

func (o *Options) applyDefaults() {
	if o.CacheSize < 1 {
		o.CacheSize = 64
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = 5 * time.Minute
	}
}

type Server struct {
	http.Server
	service     ExpenseService
	rateLimiter *rateLimiter

	// Month-keyed caches in front of the store. Writes invalidate them.
	listCache    *cache.LRU[[]core.Expense]
	summaryCache *cache.LRU[core.MonthSummary]

	cancelJanitors context.CancelFunc
	shutdownOnce   sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, service ExpenseService, opts Options) *Server {
	opts.applyDefaults()

	mux := http.NewServeMux()
	janitorCtx, cancel := context.WithCancel(context.Background())

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		service:        service,
		rateLimiter:    newRateLimiter(),
		listCache:      cache.NewLRU[[]core.Expense](opts.CacheSize, opts.CacheTTL),
		summaryCache:   cache.NewLRU[core.MonthSummary](opts.CacheSize, opts.CacheTTL),
		cancelJanitors: cancel,
	}

	s.listCache.StartJanitor(janitorCtx, 10*time.Minute)
	s.summaryCache.StartJanitor(janitorCtx, 10*time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/expenses", s.withMiddleware(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.withMiddleware(s.handleCreateExpense))
	mux.HandleFunc("PUT /api/expenses/{id}", s.withMiddleware(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.withMiddleware(s.handleDeleteExpense))
	mux.HandleFunc("GET /api/summary", s.withMiddleware(s.handleSummary))
	mux.HandleFunc("GET /api/calendar", s.withMiddleware(s.handleCalendar))
	mux.HandleFunc("GET /api/categories", s.withMiddleware(s.handleCategories))

	return s
}

// Shutdown stops the janitor goroutines and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cancelJanitors != nil {
			s.cancelJanitors()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Rate limit mutations only; month browsing stays cheap.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

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

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.service.ListMonth(r.Context(), time.Now().Year(), time.Now().Month()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("store unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func monthKey(year int, month time.Month) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(int(month))
}

// invalidateMonth drops the cached listing and summary for one month.
func (s *Server) invalidateMonth(year int, month time.Month) {
	key := monthKey(year, month)
	s.listCache.Delete(key)
	s.summaryCache.Delete(key)
}

// invalidateAll drops every cached month. Used when a write may have moved
// an expense between months.
func (s *Server) invalidateAll() {
	s.listCache.Purge()
	s.summaryCache.Purge()
}

// listMonth serves the month's expenses through the cache.
func (s *Server) listMonth(ctx context.Context, year int, month time.Month) ([]core.Expense, error) {
	key := monthKey(year, month)

	if items, found := s.listCache.Get(key); found {
		slog.DebugContext(ctx, "Month cache hit", "year", year, "month", int(month))
		result := make([]core.Expense, len(items))
		copy(result, items)
		return result, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	items, err := s.service.ListMonth(cctx, year, month)
	if err != nil {
		return nil, err
	}

	s.listCache.Set(key, items)
	return items, nil
}

// monthSummary serves the month's aggregates through the cache.
func (s *Server) monthSummary(ctx context.Context, year int, month time.Month) (core.MonthSummary, error) {
	key := monthKey(year, month)

	if summary, found := s.summaryCache.Get(key); found {
		slog.DebugContext(ctx, "Summary cache hit", "year", year, "month", int(month))
		return summary, nil
	}

	items, err := s.listMonth(ctx, year, month)
	if err != nil {
		return core.MonthSummary{}, err
	}

	summary := core.Summarize(year, month, items)
	s.summaryCache.Set(key, summary)
	return summary, nil
}
