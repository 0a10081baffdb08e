package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/marmos91/filevault/internal/api/handlers"
	apiMiddleware "github.com/marmos91/filevault/internal/api/middleware"
	"github.com/marmos91/filevault/internal/logger"
	"github.com/marmos91/filevault/pkg/auth"
	"github.com/marmos91/filevault/pkg/files"
	"github.com/marmos91/filevault/pkg/metrics"
	"github.com/marmos91/filevault/pkg/session"
	"github.com/marmos91/filevault/pkg/store"
)

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//
// Routes:
//   - GET /status - Store liveness
//   - GET /stats - User and file counts
//   - POST /users - Account registration
//   - GET /connect - Session creation (HTTP Basic)
//   - GET /disconnect - Session revocation (X-Token)
//   - GET /users/me - Current user info (X-Token)
//   - POST /files - File/folder creation (X-Token)
//   - GET /files - Paginated listing (X-Token)
//   - GET /files/{id} - Metadata lookup (X-Token)
//   - PUT /files/{id}/publish - Make public (X-Token)
//   - PUT /files/{id}/unpublish - Make private (X-Token)
//   - GET /files/{id}/data - Raw content (token optional, visibility-gated)
func NewRouter(gate *auth.Gate, svc *files.Service, st store.Store, sessions session.Store, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	appHandler := handlers.NewAppHandler(sessions, st)
	usersHandler := handlers.NewUsersHandler(st)
	authHandler := handlers.NewAuthHandler(gate)
	filesHandler := handlers.NewFilesHandler(svc)

	// Probes and registration - unauthenticated
	r.Get("/status", appHandler.Status)
	r.Get("/stats", appHandler.Stats)
	r.Post("/users", usersHandler.Create)
	r.Get("/connect", authHandler.Connect)

	// Disconnect checks the token itself so stale tokens map to 401
	r.Get("/disconnect", authHandler.Disconnect)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(apiMiddleware.TokenAuth(gate))

		r.Get("/users/me", usersHandler.Me)

		r.Post("/files", filesHandler.Create)
		r.Get("/files", filesHandler.Index)
		r.Get("/files/{id}", filesHandler.Show)
		r.Put("/files/{id}/publish", filesHandler.Publish)
		r.Put("/files/{id}/unpublish", filesHandler.Unpublish)
	})

	// Content serving is visibility-gated, not auth-gated
	r.Group(func(r chi.Router) {
		r.Use(apiMiddleware.OptionalTokenAuth(gate))
		r.Get("/files/{id}/data", filesHandler.Data)
	})

	return r
}

// isProbePath returns true if the request path is a liveness endpoint.
func isProbePath(path string) bool {
	return path == "/status" || path == "/stats"
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
//   - Probe requests are logged at DEBUG level to reduce noise
//
// Completed requests are also recorded in the HTTP metrics when the metrics
// registry is enabled.
func requestLogger(next http.Handler) http.Handler {
	httpMetrics := metrics.NewHTTPMetrics()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		// Use the route pattern rather than the raw path to keep metric
		// label cardinality bounded
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		httpMetrics.ObserveRequest(r.Method, route, ww.Status(), duration)

		logArgs := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		}

		if isProbePath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
		} else {
			logger.Info("API request completed", logArgs...)
		}
	})
}
