package database

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/agency-ratecard-api/internal/config"
)

func openPostgres(cfg config.Database) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	return &Connection{
		DB:          db,
		driver:      config.DriverPostgres,
		placeholder: squirrel.Dollar,
	}, nil
}
