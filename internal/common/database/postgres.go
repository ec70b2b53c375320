// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"kisan-advisory/internal/common/config"

	_ "github.com/lib/pq"
)

// PriceHistorySchema creates the mandi price history read by the price
// prediction worker.
const PriceHistorySchema = `CREATE TABLE IF NOT EXISTS mandi_prices (
	id          BIGSERIAL PRIMARY KEY,
	commodity   TEXT NOT NULL,
	market      TEXT NOT NULL,
	state       TEXT NOT NULL DEFAULT '',
	modal_price NUMERIC(10,2) NOT NULL,
	recorded_on DATE NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mandi_prices_commodity_date ON mandi_prices (commodity, recorded_on DESC)`

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres creates a new PostgreSQL client
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Name() string { return "postgres" }

// Ping tests the database connection
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Migrate applies PriceHistorySchema.
func (c *PostgresClient) Migrate(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, PriceHistorySchema); err != nil {
		return fmt.Errorf("failed to migrate price history: %w", err)
	}
	return nil
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
