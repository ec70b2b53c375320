// internal/workers/advisory/price-prediction/history.go
package priceprediction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// PriceHistory reports the average modal price of a crop. ok is false when no
// rows match.
type PriceHistory interface {
	AveragePrice(ctx context.Context, crop, district string, now time.Time) (avg float64, ok bool, err error)
}

const recentAverageQuery = `
	SELECT COALESCE(AVG(modal_price), 0), COUNT(*)
	FROM mandi_prices
	WHERE LOWER(commodity) = LOWER($1)
	  AND ($2 = '' OR LOWER(market) = LOWER($2) OR LOWER(state) = LOWER($2))
	  AND recorded_on >= $3`

const seasonalAverageQuery = `
	SELECT COALESCE(AVG(modal_price), 0), COUNT(*)
	FROM mandi_prices
	WHERE LOWER(commodity) = LOWER($1)
	  AND ($2 = '' OR LOWER(market) = LOWER($2) OR LOWER(state) = LOWER($2))
	  AND EXTRACT(MONTH FROM recorded_on) = $3`

// PostgresHistory averages the recent window of mandi_prices. With no recent
// rows it falls back to the same calendar month of earlier years. Results are
// cached in Redis per crop, district and day.
type PostgresHistory struct {
	db     *sql.DB
	redis  *redis.Client
	window time.Duration
	ttl    time.Duration
}

func NewPostgresHistory(db *sql.DB, rdb *redis.Client, config *Config) *PostgresHistory {
	return &PostgresHistory{db: db, redis: rdb, window: config.Window, ttl: config.CacheTTL}
}

func cacheKey(crop, district string, now time.Time) string {
	return fmt.Sprintf("price:avg:%s:%s:%s", strings.ToLower(crop), strings.ToLower(district), now.Format("2006-01-02"))
}

func (p *PostgresHistory) AveragePrice(ctx context.Context, crop, district string, now time.Time) (float64, bool, error) {
	key := cacheKey(crop, district, now)
	if p.redis != nil {
		if val, err := p.redis.Get(ctx, key).Result(); err == nil {
			if avg, err := strconv.ParseFloat(val, 64); err == nil {
				return avg, true, nil
			}
		}
	}

	avg, n, err := p.average(ctx, recentAverageQuery, crop, district, now.Add(-p.window))
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		avg, n, err = p.average(ctx, seasonalAverageQuery, crop, district, int(now.Month()))
		if err != nil {
			return 0, false, err
		}
	}
	if n == 0 {
		return 0, false, nil
	}

	if p.redis != nil {
		_ = p.redis.Set(ctx, key, strconv.FormatFloat(avg, 'f', 2, 64), p.ttl).Err()
	}
	return avg, true, nil
}

func (p *PostgresHistory) average(ctx context.Context, query, crop, district string, bound interface{}) (float64, int64, error) {
	var (
		avg float64
		n   int64
	)
	err := p.db.QueryRowContext(ctx, query, crop, district, bound).Scan(&avg, &n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("query price history: %w", err)
	}
	return avg, n, nil
}
