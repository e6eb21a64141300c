package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"contactkeeper/application/services"
	"contactkeeper/infrastructure/config"
	"contactkeeper/interfaces/http/rest/handlers"
	"contactkeeper/interfaces/http/rest/middleware"
	"contactkeeper/pkg/auth"
	"contactkeeper/pkg/common"
	"contactkeeper/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg      *config.Config
	contacts *services.ContactService
	users    *services.UserService
	tokens   *auth.TokenService
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	contacts *services.ContactService,
	users *services.UserService,
	tokens *auth.TokenService,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:      cfg,
		contacts: contacts,
		users:    users,
		tokens:   tokens,
		metrics:  metrics,
		logger:   logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.metrics != nil {
		router.Use(middleware.Metrics(rt.metrics))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)

	// Registration and login
	userHandler := handlers.NewUserHandler(rt.users, rt.logger)
	router.Post("/api/users", userHandler.Register)

	authHandler := handlers.NewAuthHandler(rt.users, rt.logger)
	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/", authHandler.Login)
		r.With(middleware.Authenticate(rt.tokens, rt.logger)).Get("/", authHandler.Current)
	})

	// Contact endpoints, all behind the auth guard
	router.Route("/api/contacts", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.tokens, rt.logger))

		contactHandler := handlers.NewContactHandler(rt.contacts, rt.logger)
		r.Get("/", contactHandler.List)
		r.Post("/", contactHandler.Create)
		r.Put("/{contactID}", contactHandler.Update)
		r.Delete("/{contactID}", contactHandler.Delete)
	})

	if rt.cfg.StaticDir != "" {
		rt.serveFrontend(router)
	} else {
		router.Get("/", func(w http.ResponseWriter, r *http.Request) {
			common.RespondJSON(w, http.StatusOK, common.MsgResponse{
				Msg: "Welcome to the ContactKeeper API",
			})
		})
	}

	return router
}

// serveFrontend serves the built single-page front end: real files when
// they exist, index.html for everything else so client-side routing works.
func (rt *Router) serveFrontend(router chi.Router) {
	staticDir := rt.cfg.StaticDir
	fileServer := http.FileServer(http.Dir(staticDir))
	index := filepath.Join(staticDir, "index.html")

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			common.RespondMsg(w, http.StatusNotFound, "Not found")
			return
		}

		requested := filepath.Join(staticDir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, index)
	})
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
