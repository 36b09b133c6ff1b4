package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mentor3d/professor/internal/api/handlers"
	"github.com/mentor3d/professor/internal/api/middleware"
)

// Router wraps the HTTP multiplexer with middleware and handlers
type Router struct {
	mux        *http.ServeMux
	app        *App
	courses    *handlers.CourseHandler
	chat       *handlers.ChatHandler
	submission *handlers.SubmissionHandler
	progress   *handlers.ProgressHandler
	dashboard  *handlers.DashboardHandler
	profile    *handlers.ProfileHandler

	// expensiveLimit is shared across the model-calling routes so they
	// draw from one budget. Nil in debug mode.
	expensiveLimit func(http.Handler) http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(app *App) http.Handler {
	r := &Router{
		mux: http.NewServeMux(),
		app: app,
	}

	// Initialize handlers
	r.courses = handlers.NewCourseHandler(app.Tutor, app.Store, app.Effects)
	r.chat = handlers.NewChatHandler(app.Tutor, app.Store, app.Effects)
	r.submission = handlers.NewSubmissionHandler(app.Grader, app.Tutor, app.Store, app.Effects)
	r.progress = handlers.NewProgressHandler(app.Store)
	r.dashboard = handlers.NewDashboardHandler(app.Dashboard)
	r.profile = handlers.NewProfileHandler(app.Store)

	if !app.Config.Debug {
		r.expensiveLimit = middleware.ExpensiveRateLimitMiddleware(middleware.DefaultRateLimitConfig())
	}

	// Register routes
	r.registerRoutes()

	// Build middleware chain
	return r.buildMiddlewareChain(r.mux, app)
}

func (r *Router) registerRoutes() {
	// Health check
	r.mux.HandleFunc("GET /health", r.handleHealth)
	r.mux.HandleFunc("GET /ready", r.handleReady)

	// Courses
	r.mux.HandleFunc("POST /api/v1/courses/generate", r.expensive(r.courses.Generate))
	r.mux.HandleFunc("GET /api/v1/courses", r.courses.List)
	r.mux.HandleFunc("GET /api/v1/courses/{id}", r.courses.Get)

	// Tutoring chat
	r.mux.HandleFunc("POST /api/v1/chat", r.expensive(r.chat.Ask))

	// Submissions
	r.mux.HandleFunc("POST /api/v1/submissions", r.expensive(r.submission.Submit))

	// Progress
	r.mux.HandleFunc("POST /api/v1/progress", r.progress.Update)

	// Dashboard
	r.mux.HandleFunc("GET /api/v1/dashboard", r.dashboard.Get)

	// Profiles
	r.mux.HandleFunc("GET /api/v1/profiles/{id}", r.profile.Get)

	// Languages
	r.mux.HandleFunc("GET /api/v1/languages", handlers.Languages)
}

func (r *Router) buildMiddlewareChain(handler http.Handler, app *App) http.Handler {
	// Apply middleware in reverse order (last applied = first executed)
	handler = middleware.Recovery(handler)
	handler = middleware.Logger(handler)

	// Apply rate limiting (skip in debug mode for easier development)
	if !app.Config.Debug {
		handler = middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig())(handler)
	}

	handler = middleware.RequestID(handler)
	handler = middleware.CORS(handler)

	return handler
}

// expensive applies the stricter rate limit to endpoints that call the
// model or the code execution service.
func (r *Router) expensive(next http.HandlerFunc) http.HandlerFunc {
	if r.expensiveLimit == nil {
		return next
	}
	return r.expensiveLimit(next).ServeHTTP
}

// Health check handlers
func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	r.jsonResponse(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (r *Router) handleReady(w http.ResponseWriter, req *http.Request) {
	// Check database connectivity
	if err := r.app.Store.Ping(req.Context()); err != nil {
		slog.Error("database health check failed",
			"error", err,
			"request_id", middleware.GetRequestID(req.Context()),
		)
		r.jsonResponse(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not ready",
			"checks": map[string]string{
				"database": "unhealthy",
			},
		})
		return
	}

	r.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ready",
		"checks": map[string]string{
			"database": "healthy",
		},
	})
}

// Helper for JSON responses
func (r *Router) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}
