package router

import (
	"net/http"

	"github.com/orderdesk/emailer/internal/config"
	"github.com/orderdesk/emailer/internal/handler"
	"github.com/orderdesk/emailer/internal/logger"
	"github.com/orderdesk/emailer/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, log *logger.Logger, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)

	// API v1 routes
	mux.HandleFunc("GET /api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"OrderDesk Emailer API v1","version":"0.1.0"}`))
	})

	// Notification triggers (rate limited per tenant)
	sendRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Limit:  cfg.RateLimit.Limit,
		Window: cfg.RateLimit.Window,
		KeyFn:  middleware.TenantKey,
	})
	mux.Handle("POST /api/v1/notifications/order-confirmation", sendRateLimit(http.HandlerFunc(h.SendOrderConfirmation)))

	// Apply middleware stack
	var root http.Handler = mux

	// Security headers
	root = mw.SecurityHeaders(root)

	// Request logging
	root = mw.Logger(root)

	// Timing
	root = mw.Timing(root)

	// Request ID
	root = mw.RequestID(root)

	// Panic recovery (outermost)
	root = mw.Recover(root)

	return root
}
