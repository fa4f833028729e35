// Package httpapi exposes the expense tracker over HTTP: registration,
// login, and the authenticated expense endpoints.
package httpapi

import (
	"net/http"

	"outlay/internal/config"
	"outlay/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.Config
	store  store.Store
	log    *zap.Logger
	tokens *TokenService
	router chi.Router
}

func NewServer(cfg config.Config, st store.Store, log *zap.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		store:  st,
		log:    log,
		tokens: NewTokenService(cfg.JWTSecret, log),
		router: chi.NewRouter(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.observe)
	s.router.Use(s.recoverer)
	s.router.Use(s.corsMiddleware)

	s.router.Get("/", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Post("/auth/register", s.handleRegister)
	s.router.Post("/auth/login", s.handleLogin)

	s.router.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/expenses", s.handleListExpenses)
		r.Post("/expenses", s.handleCreateExpense)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
