// Package server provides the HTTP server and routing for Folio.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	allocationhandlers "github.com/foliotracker/folio/internal/modules/allocation/handlers"
	bondshandlers "github.com/foliotracker/folio/internal/modules/bonds/handlers"
	cashhandlers "github.com/foliotracker/folio/internal/modules/cash/handlers"
	currencyhandlers "github.com/foliotracker/folio/internal/modules/currency/handlers"
	holdingshandlers "github.com/foliotracker/folio/internal/modules/holdings/handlers"
	returnshandlers "github.com/foliotracker/folio/internal/modules/returns/handlers"
	riskhandlers "github.com/foliotracker/folio/internal/modules/risk/handlers"
	snapshotshandlers "github.com/foliotracker/folio/internal/modules/snapshots/handlers"
	taxhandlers "github.com/foliotracker/folio/internal/modules/tax/handlers"
)

// ModuleRouter registers a module's routes under the API prefix.
type ModuleRouter interface {
	RegisterRoutes(r chi.Router)
}

// Config holds server configuration
type Config struct {
	Log     zerolog.Logger
	Port    int
	DevMode bool

	HoldingsHandler   *holdingshandlers.Handler
	BondsHandler      *bondshandlers.Handler
	CurrencyHandler   *currencyhandlers.Handler
	AllocationHandler *allocationhandlers.Handler
	SnapshotsHandler  *snapshotshandlers.Handler
	ReturnsHandler    *returnshandlers.Handler
	RiskHandler       *riskhandlers.Handler
	TaxHandler        *taxhandlers.Handler
	CashHandler       *cashhandlers.Handler
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	port           int
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("component", "server").Logger(),
		port:           cfg.Port,
		systemHandlers: NewSystemHandlers(cfg.Log),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes(cfg)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(cfg Config) {
	s.router.Get("/health", s.systemHandlers.HandleHealth)

	s.router.Route("/api", func(r chi.Router) {
		for _, m := range []ModuleRouter{
			cfg.HoldingsHandler,
			cfg.BondsHandler,
			cfg.CurrencyHandler,
			cfg.AllocationHandler,
			cfg.SnapshotsHandler,
			cfg.ReturnsHandler,
			cfg.RiskHandler,
			cfg.TaxHandler,
			cfg.CashHandler,
		} {
			m.RegisterRoutes(r)
		}

		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.systemHandlers.HandleStatus)
		})
	})
}

// Start starts the HTTP server and blocks until it exits
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs each request with its duration and status
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("Request handled")
	})
}
