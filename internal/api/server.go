package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"

	"github.com/vfg2006/agency-ratecard-api/internal/api/handler"
	"github.com/vfg2006/agency-ratecard-api/internal/api/handler/router"
	"github.com/vfg2006/agency-ratecard-api/internal/config"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/auditing"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/branding"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/estimating"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/learning"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/ratecard"
	"github.com/vfg2006/agency-ratecard-api/pkg/log"
	"github.com/vfg2006/agency-ratecard-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// Services are the use cases exposed over HTTP.
type Services struct {
	RateCard        ratecard.RateCardService
	Brands          branding.BrandService
	Audit           auditing.AuditService
	Estimates       estimating.EstimateService
	Insights        learning.InsightService
	PortfolioDigest handler.DigestJob
}

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.Config, services Services) (*Server, error) {
	if services.RateCard == nil || services.Brands == nil || services.Audit == nil ||
		services.Estimates == nil || services.Insights == nil {
		return nil, errors.New("api: every use case service is required")
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler builds the routed handler wrapped in the global middleware chain.
func NewHandler(cfg *config.Config, services Services) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.RateCard(services.RateCard)...),
		router.WithRoutes(handler.Brands(services.Brands)...),
		router.WithRoutes(handler.Audit(services.Audit)...),
		router.WithRoutes(handler.Estimates(services.Estimates)...),
		router.WithRoutes(handler.Insights(services.Insights)...),
		router.WithRoutes(handler.CronJobs(handler.CronJobServices{PortfolioDigest: services.PortfolioDigest})...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("api: server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.L.WithError(err).Error("api: server stopped unexpectedly")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.L.Info("api: interrupt signal received")
	case <-ctx.Done():
		log.L.Info("api: application context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.WithField("timeout", shutdownTimeout.String()).Info("api: graceful shutdown started")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("api: shutdown failed")
		return err
	}

	log.L.Info("api: server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
