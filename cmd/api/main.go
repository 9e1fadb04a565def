package main

import (
	"context"
	"sync"

	"github.com/vfg2006/agency-ratecard-api/infrastructure/database"
	"github.com/vfg2006/agency-ratecard-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/agency-ratecard-api/infrastructure/integrator/gemini/geminiclient"
	"github.com/vfg2006/agency-ratecard-api/infrastructure/repository"
	"github.com/vfg2006/agency-ratecard-api/internal/api"
	"github.com/vfg2006/agency-ratecard-api/internal/config"
	"github.com/vfg2006/agency-ratecard-api/internal/scheduler"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/auditing"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/branding"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/estimating"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/learning"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/ratecard"
	"github.com/vfg2006/agency-ratecard-api/pkg/log"
)

func main() {
	log.Setup("info")

	cfg, err := config.NewConfig()
	if err != nil {
		log.L.WithError(err).Fatal("failed to load configuration")
	}

	log.Setup(cfg.App.LogLevel)
	log.L.Infof("log level set to %s", cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore := openStore(ctx, cfg.Database)
	defer closeStore()

	repos := repository.NewRepositories(store)
	mapper := gemini.New(cfg.Gemini, geminiClient(ctx, cfg.Gemini))

	// one lock for every writer: the collections are rewritten whole
	mu := &sync.Mutex{}

	rateCardService := ratecard.NewService(mu, repos.Rates, repos.Settings, repos.Brands)
	brandService := branding.NewService(mu, repos.Brands)
	auditService := auditing.NewService(mu, repos.Brands, repos.WorkLogs, repos.Rates, repos.Snapshots, mapper)
	estimateService := estimating.NewService(mu, repos.History, rateCardService, brandService, mapper)
	insightService := learning.NewService(mu, repos.Insights, repos.Rates, mapper)

	portfolioDigest := scheduler.NewPortfolioDigestService(auditService, cfg)
	if err := portfolioDigest.Start(ctx); err != nil {
		log.L.WithError(err).Error("failed to start portfolio digest scheduler")
	}

	server, err := api.New(cfg, api.Services{
		RateCard:        rateCardService,
		Brands:          brandService,
		Audit:           auditService,
		Estimates:       estimateService,
		Insights:        insightService,
		PortfolioDigest: portfolioDigest,
	})
	if err != nil {
		log.L.WithError(err).Fatal("failed to build server")
	}

	if err := server.Run(ctx); err != nil {
		log.L.WithError(err).Error("server stopped with error")
	}
}

// openStore picks the collection store for the configured driver.
func openStore(ctx context.Context, cfg config.Database) (repository.CollectionStore, func()) {
	if cfg.Driver == config.DriverMemory {
		log.L.Warn("using in-memory store, data is lost on restart")
		return repository.NewMemoryStore(), func() {}
	}

	conn, err := database.NewConnection(ctx, cfg)
	if err != nil {
		log.L.WithError(err).WithField("driver", cfg.Driver).Fatal("failed to connect to database")
	}

	log.L.WithField("driver", cfg.Driver).Info("database connection established")

	return repository.NewSQLStore(conn), func() { _ = conn.Close() }
}

func geminiClient(ctx context.Context, cfg config.Gemini) geminiclient.Client {
	client, err := geminiclient.NewClient(ctx, cfg)
	if err != nil {
		log.L.WithError(err).Warn("gemini client unavailable, AI routes will fail")
		return geminiclient.Unavailable(err)
	}
	return client
}
