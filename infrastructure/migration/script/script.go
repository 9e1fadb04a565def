package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/vfg2006/agency-ratecard-api/infrastructure/database"
	"github.com/vfg2006/agency-ratecard-api/infrastructure/migration"
	"github.com/vfg2006/agency-ratecard-api/infrastructure/repository"
	"github.com/vfg2006/agency-ratecard-api/internal/config"
	"github.com/vfg2006/agency-ratecard-api/pkg/log"
)

// Imports a localStorage dump of the browser tool into the configured database:
//
//	go run ./infrastructure/migration/script -file agency-dump.json
func main() {
	file := flag.String("file", "agency-dump.json", "path to the localStorage dump")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.L.WithError(err).Fatal("failed to load configuration")
	}
	log.Setup(cfg.App.LogLevel)

	if cfg.Database.Driver == config.DriverMemory {
		log.L.Fatal("migration needs a persistent database driver")
	}

	dump, err := os.ReadFile(*file)
	if err != nil {
		log.L.WithError(err).Fatalf("failed to read %s", *file)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.L.WithError(err).Fatal("failed to connect to database")
	}
	defer conn.Close()

	startTime := time.Now()

	report, err := migration.Import(ctx, repository.NewSQLStore(conn), dump)
	if err != nil {
		log.L.WithError(err).Fatal("import failed")
	}

	for collection, count := range report {
		log.L.WithField("collection", collection).Infof("imported %d records", count)
	}
	log.L.Infof("import finished in %v", time.Since(startTime))
}
