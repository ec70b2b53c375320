package priceprediction

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"kisan-advisory/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var testNow = time.Date(2024, 11, 15, 8, 0, 0, 0, time.UTC)

func createTestConfig() *Config {
	return &Config{Timeout: time.Second, Window: 30 * 24 * time.Hour, CacheTTL: time.Minute}
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr
}

func newTestHandler(t *testing.T, history PriceHistory) *Handler {
	h := NewHandler(createTestConfig(), history, logger.NewTestLogger(t))
	h.now = func() time.Time { return testNow }
	return h
}

type stubHistory struct {
	avg float64
	ok  bool
	err error
}

func (s stubHistory) AveragePrice(context.Context, string, string, time.Time) (float64, bool, error) {
	return s.avg, s.ok, s.err
}

var (
	recentRE   = regexp.QuoteMeta("recorded_on >= $3")
	seasonalRE = regexp.QuoteMeta("EXTRACT(MONTH FROM recorded_on) = $3")
)

// ==========================
// History
// ==========================

func TestPostgresHistory_RecentWindow(t *testing.T) {
	db, mock := setupMockDB(t)
	rdb, mr := setupRedis(t)
	hist := NewPostgresHistory(db, rdb, createTestConfig())

	mock.ExpectQuery(recentRE).
		WithArgs("Wheat", "Karnal", testNow.Add(-30*24*time.Hour)).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(2450.5, 12))

	avg, ok, err := hist.AveragePrice(context.Background(), "Wheat", "Karnal", testNow)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2450.5, avg)
	assert.NoError(t, mock.ExpectationsWereMet())

	cached, err := mr.Get(cacheKey("Wheat", "Karnal", testNow))
	require.NoError(t, err)
	assert.Equal(t, "2450.50", cached)

	// second call is served from the cache
	avg, ok, err = hist.AveragePrice(context.Background(), "Wheat", "Karnal", testNow)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2450.5, avg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresHistory_SeasonalFallback(t *testing.T) {
	db, mock := setupMockDB(t)
	hist := NewPostgresHistory(db, nil, createTestConfig())

	mock.ExpectQuery(recentRE).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(0, 0))
	mock.ExpectQuery(seasonalRE).
		WithArgs("onion", "Nashik", 11).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(1700.0, 40))

	avg, ok, err := hist.AveragePrice(context.Background(), "onion", "Nashik", testNow)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1700.0, avg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresHistory_NoRowsAndErrors(t *testing.T) {
	t.Run("no history", func(t *testing.T) {
		db, mock := setupMockDB(t)
		hist := NewPostgresHistory(db, nil, createTestConfig())
		mock.ExpectQuery(recentRE).WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(0, 0))
		mock.ExpectQuery(seasonalRE).WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(0, 0))

		_, ok, err := hist.AveragePrice(context.Background(), "saffron", "Pampore", testNow)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("query error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		hist := NewPostgresHistory(db, nil, createTestConfig())
		mock.ExpectQuery(recentRE).WillReturnError(errors.New("connection reset"))

		_, _, err := hist.AveragePrice(context.Background(), "rice", "Patna", testNow)
		assert.Error(t, err)
	})
}

// ==========================
// Handler
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name       string
		history    PriceHistory
		input      Input
		wantPrice  float64
		wantSource string
		wantRisk   string
	}{
		{"static wheat", nil, Input{Crop: "Wheat", District: "Karnal"}, 2400, SourceStatic, "Low"},
		{"static unknown crop", nil, Input{Crop: "quinoa", District: "Pune"}, 2500, SourceStatic, "Low"},
		{"history", stubHistory{avg: 2600, ok: true}, Input{Crop: "wheat", District: "Karnal", ArrivalQuantity: 1150}, 2600, SourceHistory, "Medium"},
		{"history empty", stubHistory{}, Input{Crop: "rice", District: "Patna", ArrivalQuantity: 1500}, 2200, SourceStatic, "High"},
		{"history error", stubHistory{err: errors.New("db down")}, Input{Crop: "cotton", District: "Rajkot"}, 5500, SourceStatic, "Low"},
		{"clamped high", stubHistory{avg: 25000, ok: true}, Input{Crop: "turmeric", District: "Erode"}, MaxPrice, SourceHistory, "Low"},
		{"below floor uses base price", stubHistory{avg: 40, ok: true}, Input{Crop: "potato", District: "Agra"}, 1200, SourceHistory, "Low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, tt.history)

			out, err := h.Execute(context.Background(), &tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPrice, out.PredictedPrice)
			assert.Equal(t, tt.wantSource, out.Source)
			assert.Equal(t, tt.wantRisk, out.RiskLevel)
			assert.GreaterOrEqual(t, out.PredictedPrice, MinPrice)
			assert.LessOrEqual(t, out.PredictedPrice, MaxPrice)
			assert.LessOrEqual(t, out.ForecastRange.Min, out.PredictedPrice)
			assert.GreaterOrEqual(t, out.ForecastRange.Max, out.PredictedPrice)
			assert.Equal(t, testNow, out.Timestamp)
		})
	}
}

func TestHandler_Execute_Deterministic(t *testing.T) {
	h := newTestHandler(t, nil)
	in := &Input{Crop: "onion", District: "Nashik"}

	first, err := h.Execute(context.Background(), in)
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHandler_Execute_InvalidInput(t *testing.T) {
	h := newTestHandler(t, nil)

	for _, in := range []*Input{nil, {Crop: "wheat"}, {District: "Karnal"}, {Crop: "wheat", District: "Karnal", ArrivalQuantity: -1}} {
		_, err := h.Execute(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestOversupplyRisk(t *testing.T) {
	assert.Equal(t, "Medium", oversupplyRisk(12000, 10000))
	assert.Equal(t, "High", oversupplyRisk(12500, 10000))
	assert.Equal(t, "Low", oversupplyRisk(9000, 10000))
	assert.Equal(t, "Medium", oversupplyRisk(5, 0))
}
