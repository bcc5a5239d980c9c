package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GyroZepelix/newsboard/internal/apperr"
)

// The router depends on handler interfaces so that it stays decoupled from
// the feature packages, which themselves import server for response helpers.

// TopicsHandler serves the topic list.
type TopicsHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

// ArticlesHandler serves article routes.
type ArticlesHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Mine(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Vote(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// CommentsHandler serves comment routes.
type CommentsHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Vote(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// UsersHandler serves user reads.
type UsersHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

// AuthHandler serves registration and login.
type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

// ImagesHandler serves the gallery and avatar lists.
type ImagesHandler interface {
	Gallery(w http.ResponseWriter, r *http.Request)
	Avatars(w http.ResponseWriter, r *http.Request)
}

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Dependencies holds all injectable dependencies used by route handlers.
type Dependencies struct {
	DB             HealthChecker
	DevMode        bool
	AllowedOrigins []string
	RateLimit      RateLimitConfig

	Topics   TopicsHandler
	Articles ArticlesHandler
	Comments CommentsHandler
	Users    UsersHandler
	Auth     AuthHandler
	Images   ImagesHandler

	// AuthMiddleware guards the protected routes. It must reject requests
	// without a valid session credential.
	AuthMiddleware func(http.Handler) http.Handler
}

// NewRouter builds the chi router with the full route tree and middleware
// stack.
func NewRouter(deps Dependencies) chi.Router {
	r := chi.NewRouter()

	// --- Global middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(metrics)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(deps.DevMode, deps.AllowedOrigins))

	// --- Operational endpoints ---
	r.Get("/health", healthHandler(deps))
	r.Handle("/metrics", promhttp.Handler())

	limiter := NewRateLimiter(deps.RateLimit)

	// --- API ---
	r.Route("/api", func(r chi.Router) {
		r.Use(requireJSON)
		r.Use(limiter.Middleware)

		r.Get("/", endpointsHandler)
		r.Get("/topics", deps.Topics.List)
		r.Get("/gallery", deps.Images.Gallery)
		r.Get("/avatars", deps.Images.Avatars)

		r.Get("/articles", deps.Articles.List)
		r.Post("/articles", deps.Articles.Create)
		r.Get("/articles/{article_id}", deps.Articles.Get)
		r.Patch("/articles/{article_id}", deps.Articles.Vote)
		r.Get("/articles/{article_id}/comments", deps.Comments.List)
		r.Post("/articles/{article_id}/comments", deps.Comments.Create)

		r.Patch("/comments/{comment_id}", deps.Comments.Vote)

		r.Get("/users", deps.Users.List)
		r.Post("/users/register", deps.Auth.Register)
		r.Post("/users/login", deps.Auth.Login)

		// Protected routes - require a valid session credential.
		protected := r.With(deps.AuthMiddleware)
		protected.Get("/my-articles", deps.Articles.Mine)
		protected.Delete("/articles/{article_id}", deps.Articles.Delete)
		protected.Delete("/comments/{comment_id}", deps.Comments.Delete)
		protected.Get("/users/{username}", deps.Users.Get)
	})

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

// corsMiddleware returns a CORS middleware configured for the application.
// In dev mode the local frontend origins are allowed in addition to any
// configured ones.
func corsMiddleware(devMode bool, origins []string) func(http.Handler) http.Handler {
	allowedOrigins := append([]string{}, origins...)
	if devMode {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173", "http://localhost:8080")
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// healthHandler returns a handler that reports the health status of the
// application, including a database connectivity check.
func healthHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.DB.Health(r.Context()); err != nil {
			Error(w, http.StatusServiceUnavailable, "DB_UNHEALTHY", "database health check failed", nil)
			return
		}
		JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// notFound answers every unmatched route, including a known path requested
// with an unsupported method.
func notFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, &apperr.Error{Kind: apperr.KindNotFound})
}
