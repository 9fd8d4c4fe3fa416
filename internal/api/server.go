package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/Luxor-Foundation/luxor-swap/internal/config"
	"github.com/Luxor-Foundation/luxor-swap/internal/services"
)

// Server exposes the protocol operations over HTTP.
type Server struct {
	cfg        *config.ApiConfig
	service    *services.Service
	httpServer *http.Server
}

func New(cfg *config.ApiConfig, service *services.Service) *Server {
	s := &Server{
		cfg:     cfg,
		service: service,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(traceRequest)

	r.Get("/healthcheck", s.healthcheck)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/purchase", s.purchase)
		r.Post("/redeem", s.redeem)
		r.Post("/buyback", s.buyback)
		r.Get("/positions/{owner}", s.position)
		r.Get("/stats", s.stats)
		r.Get("/quote", s.quote)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireApiKey)
			r.Post("/manual-purchase", s.manualPurchase)
			r.Post("/emergency-withdraw", s.emergencyWithdraw)
			r.Post("/blacklist", s.blacklist)
			r.Patch("/config", s.updateConfig)
		})
	})

	s.httpServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      r,
		WriteTimeout: cfg.WriteTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Start runs the HTTP server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down API server")
		if err := s.httpServer.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to shut down API server")
		}
	}()

	log.Info().Msgf("Starting API server on %s", s.cfg.Address())
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
