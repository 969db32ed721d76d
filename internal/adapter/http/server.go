package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/bogi99/evote/internal/ports"
	"github.com/bogi99/evote/internal/usecase"
)

// Server represents the HTTP server
type Server struct {
	addr   string
	log    *logrus.Logger
	server *http.Server
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port             string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	RateLimitEnabled bool
	CastVoteLimit    int
	CastVoteWindow   time.Duration
}

// NewServer creates a new HTTP server with all routes wired
func NewServer(
	config ServerConfig,
	registrationUseCase *usecase.RegistrationUseCase,
	configuratorUseCase *usecase.ConfiguratorUseCase,
	boothUseCase *usecase.BoothUseCase,
	tabulatorUseCase *usecase.TabulatorUseCase,
	authUseCase *usecase.AuthUseCase,
	tokens ports.TokenService,
	limiter ports.RateLimitService,
	log *logrus.Logger,
) *Server {
	registrationHandler := NewRegistrationHandler(registrationUseCase)
	configuratorHandler := NewConfiguratorHandler(configuratorUseCase)
	boothHandler := NewBoothHandler(boothUseCase)
	resultsHandler := NewResultsHandler(tabulatorUseCase, configuratorUseCase)
	authHandler := NewAuthHandler(authUseCase)

	router := mux.NewRouter()

	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware)
	router.Use(recoveryMiddleware(log))

	requireAuth := authMiddleware(tokens)
	throttle := passthroughMiddleware
	if config.RateLimitEnabled {
		throttle = rateLimitMiddleware(limiter, log, config.CastVoteLimit, config.CastVoteWindow)
	}

	registrationHandler.RegisterRoutes(router)
	resultsHandler.RegisterRoutes(router)
	authHandler.RegisterRoutes(router)

	// /api/v1/elections/active must be registered before the configurator's
	// /api/v1/elections/{id} so the literal path wins.
	boothHandler.RegisterRoutes(router, throttle)
	configuratorHandler.RegisterRoutes(router, requireAuth)
	resultsHandler.RegisterAdminRoutes(router, requireAuth)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return &Server{
		addr: ":" + config.Port,
		log:  log,
		server: &http.Server{
			Addr:         ":" + config.Port,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.WithField("addr", s.addr).Info("starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
