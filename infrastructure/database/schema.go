package database

import (
	"context"
	"fmt"

	"github.com/vfg2006/agency-ratecard-api/internal/config"
)

const CollectionsTable = "collections"

var schema = map[string]string{
	config.DriverPostgres: `CREATE TABLE IF NOT EXISTS collections (
		name       TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	config.DriverSQLite: `CREATE TABLE IF NOT EXISTS collections (
		name       TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

func (c *Connection) migrate(ctx context.Context) error {
	ddl, ok := schema[c.driver]
	if !ok {
		return fmt.Errorf("no schema for driver %q", c.driver)
	}

	if _, err := c.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create %s table: %w", CollectionsTable, err)
	}

	return nil
}
