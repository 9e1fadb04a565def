package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/agency-ratecard-api/internal/config"
)

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	Placeholder() squirrel.PlaceholderFormat
	RunInTransaction(context.Context, func(*sql.Tx) error) error
}

type Connection struct {
	*sql.DB
	driver      string
	placeholder squirrel.PlaceholderFormat
}

// NewConnection opens the SQL backend named by cfg.Driver and makes sure the schema exists.
func NewConnection(ctx context.Context, cfg config.Database) (*Connection, error) {
	var (
		conn *Connection
		err  error
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		conn, err = openPostgres(cfg)
	case config.DriverSQLite:
		conn, err = openSQLite(cfg)
	default:
		return nil, fmt.Errorf("database driver %q has no SQL backend", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := conn.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

func (c *Connection) Driver() string {
	return c.driver
}

func (c *Connection) Placeholder() squirrel.PlaceholderFormat {
	return c.placeholder
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// RunInTransaction runs fn inside a transaction, rolling back on error or panic.
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}
