// Package api provides the HTTP API server and handlers for the StaffPicks application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/staffpicks/staffpicks-server/internal/config"
	"github.com/staffpicks/staffpicks-server/internal/media/images"
	"github.com/staffpicks/staffpicks-server/internal/metadata/isbndb"
	"github.com/staffpicks/staffpicks-server/internal/ratelimit"
	"github.com/staffpicks/staffpicks-server/internal/service"
	"github.com/staffpicks/staffpicks-server/internal/store"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth    *service.AuthService
	Company *service.CompanyService
	Store   *service.StoreService
	User    *service.UserService
	Book    *service.BookService
	List    *service.ListService
	Profile *service.ProfileService
	Search  *service.SearchService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *store.Store
	services *Services
	uploader *images.Uploader
	isbn     *isbndb.Client
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger

	cookieName      string
	secureCookies   bool
	sessionDuration time.Duration
	signupLimiter   *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg *config.Config,
	st *store.Store,
	services *Services,
	uploader *images.Uploader,
	isbn *isbndb.Client,
	logger *slog.Logger,
) *Server {
	s := &Server{
		store:           st,
		services:        services,
		uploader:        uploader,
		isbn:            isbn,
		router:          chi.NewRouter(),
		logger:          logger,
		cookieName:      cfg.Session.CookieName,
		secureCookies:   cfg.Session.SecureCookie,
		sessionDuration: cfg.Session.Duration,
		signupLimiter:   ratelimit.New(cfg.Signup.RatePerMinute/60.0, cfg.Signup.Burst),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("StaffPicks API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"session": {
			Type: "apiKey",
			In:   "cookie",
			Name: s.cookieName,
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerBookRoutes()
	s.registerListRoutes()
	s.registerStoreRoutes()
	s.registerUserRoutes()
	s.registerCompanyRoutes()
	s.registerProfileRoutes()
	s.registerMediaRoutes()
	s.registerSearchRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources (the signup limiter's sweeper).
func (s *Server) Close() {
	s.signupLimiter.Stop()
}

// setupMiddleware configures the middleware stack. Order matters: the
// session check runs after RealIP so lockout logging sees client IPs,
// and the signup throttle runs before the body is parsed.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	s.router.Use(s.signupRateLimit)
	s.router.Use(s.sessionMiddleware)
}
