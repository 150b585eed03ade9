package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"blogapi/internal/config"
	handlers "blogapi/internal/handler"
	"blogapi/internal/middleware"
	"blogapi/internal/models"

	"github.com/gorilla/mux"
)

// Server wraps an http.Server with the API routes.
type Server struct {
	inner *http.Server
}

// NewRouter builds the route table. Fixed paths under /posts are
// registered before /posts/{id}.
func NewRouter(h *handlers.Handlers, auth middleware.Authenticator) *mux.Router {
	required := middleware.AuthMiddleware(auth)
	optional := middleware.OptionalAuthMiddleware(auth)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	authRouter := api.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	authRouter.Handle("/me", required(http.HandlerFunc(h.GetCurrentUser))).Methods(http.MethodGet)
	authRouter.Handle("/logout", required(http.HandlerFunc(h.Logout))).Methods(http.MethodPost)

	posts := api.PathPrefix("/posts").Subrouter()
	posts.Handle("/user/me", required(http.HandlerFunc(h.GetMyPosts))).Methods(http.MethodGet)

	admin := posts.PathPrefix("/admin").Subrouter()
	admin.Use(mux.MiddlewareFunc(required), mux.MiddlewareFunc(middleware.RoleMiddleware(models.RoleAdmin)))
	admin.HandleFunc("/all", h.GetAllPosts).Methods(http.MethodGet)
	admin.HandleFunc("/users", h.GetAllUsers).Methods(http.MethodGet)
	admin.HandleFunc("/stats", h.GetStats).Methods(http.MethodGet)

	posts.Handle("", optional(http.HandlerFunc(h.GetPosts))).Methods(http.MethodGet)
	posts.Handle("", required(http.HandlerFunc(h.CreatePost))).Methods(http.MethodPost)
	posts.Handle("/{id}", optional(http.HandlerFunc(h.GetPost))).Methods(http.MethodGet)
	posts.Handle("/{id}", required(http.HandlerFunc(h.UpdatePost))).Methods(http.MethodPut)
	posts.Handle("/{id}", required(http.HandlerFunc(h.DeletePost))).Methods(http.MethodDelete)
	posts.Handle("/{id}/images", required(http.HandlerFunc(h.AddImage))).Methods(http.MethodPost)
	posts.Handle("/{id}/images/{imageId}", required(http.HandlerFunc(h.DeleteImage))).Methods(http.MethodDelete)

	return r
}

// Handler returns the router wrapped in the global middleware.
func Handler(h *handlers.Handlers, auth middleware.Authenticator, cfg *config.Config) http.Handler {
	return middleware.Chain(
		NewRouter(h, auth),
		middleware.RecoverMiddleware,
		middleware.CORSMiddleware(cfg.CORSOrigin),
		middleware.LoggingMiddleware,
	)
}

func New(cfg *config.Config, h *handlers.Handlers, auth middleware.Authenticator) *Server {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           Handler(h, auth, cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

func (s *Server) Addr() string {
	return s.inner.Addr
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
