// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kisan-advisory/internal/bootstrap"
	"kisan-advisory/internal/chatbot/dialogue"
	"kisan-advisory/internal/chatbot/memory"
	"kisan-advisory/internal/common/config"
	"kisan-advisory/internal/common/database"
	"kisan-advisory/internal/common/logger"
	internalhttp "kisan-advisory/internal/http"
	"kisan-advisory/internal/models"

	croprecommendation "kisan-advisory/internal/workers/advisory/crop-recommendation"
	priceprediction "kisan-advisory/internal/workers/advisory/price-prediction"
)

const e2eUser = "e2e-farmer"

var zapLog *zap.Logger

// The suite needs PostgreSQL, Redis and Elasticsearch on localhost
// (docker-compose up). Set E2E=1 to run it.
func TestMain(m *testing.M) {
	if os.Getenv("E2E") == "" {
		fmt.Println("E2E not set, skipping end-to-end suite")
		os.Exit(0)
	}

	zapLog, _ = zap.NewProduction()
	code := m.Run()
	zapLog.Sync()
	os.Exit(code)
}

type services struct {
	pg    *database.PostgresClient
	redis *database.RedisClient
	es    *database.ElasticsearchClient
}

func (s *services) Close() {
	s.pg.Close()
	s.redis.Close()
}

func TestFullE2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	t.Log("Starting E2E test with real services...")

	svc := assertAllServicesConnectivity(t, ctx, cfg)
	defer svc.Close()

	seedPriceHistory(t, ctx, svc)

	testChatbotConversation(t, ctx, cfg, svc)
	testPricePredictionFromHistory(t, ctx, cfg, svc)
	testCropRecommendation(t, ctx, cfg)
	testHTTPBoundary(t, ctx, cfg, svc)

	t.Log("All E2E checks passed")
}

func assertAllServicesConnectivity(t *testing.T, ctx context.Context, cfg *config.Config) *services {
	t.Log("Checking service connectivity...")

	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.URL = "http://localhost:9200"
	cfg.Database.Elasticsearch.Addresses = nil

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "PostgreSQL connection failed")
	require.NoError(t, pg.Ping(ctx), "PostgreSQL ping failed")
	require.NoError(t, pg.Migrate(ctx))
	t.Log("PostgreSQL connected")

	rdb := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, rdb.Ping(ctx), "Redis ping failed")
	t.Log("Redis connected")

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err, "Elasticsearch client creation failed")
	require.NoError(t, es.Ping(ctx), "Elasticsearch ping failed")
	t.Log("Elasticsearch connected")

	status, healthy := database.CheckAll(ctx, 3*time.Second, pg, rdb, es)
	assert.True(t, healthy, "backend status: %v", status)

	return &services{pg: pg, redis: rdb, es: es}
}

func seedPriceHistory(t *testing.T, ctx context.Context, svc *services) {
	t.Log("Seeding mandi_prices...")

	_, err := svc.pg.DB.ExecContext(ctx, `DELETE FROM mandi_prices WHERE market = 'E2E Mandi'`)
	require.NoError(t, err)

	today := time.Now().UTC()
	for i, price := range []float64{2100, 2200, 2300} {
		_, err := svc.pg.DB.ExecContext(ctx,
			`INSERT INTO mandi_prices (commodity, market, state, modal_price, recorded_on) VALUES ($1, $2, $3, $4, $5)`,
			"wheat", "E2E Mandi", "Punjab", price, today.AddDate(0, 0, -(i+1)))
		require.NoError(t, err)
	}

	require.NoError(t, svc.redis.Client.Del(ctx, "price:avg:wheat:e2e mandi:"+today.Format("2006-01-02")).Err())
}

func testChatbotConversation(t *testing.T, ctx context.Context, cfg *config.Config, svc *services) {
	t.Log("Testing chatbot over Redis memory and the turn archive...")

	cfg.Chatbot.MemoryBackend = "redis"
	cfg.Chatbot.Responder = "static"
	cfg.Archive.Enabled = true
	cfg.Archive.Index = "chatbot-turns-e2e"

	log := logger.NewZapAdapter(zapLog)
	bot, err := bootstrap.NewChatbot(ctx, cfg, bootstrap.Backends{Redis: svc.redis.Client, Elasticsearch: svc.es}, log, dialogue.WithSyncArchive())
	require.NoError(t, err)
	defer bot.Close()

	require.NoError(t, bot.Manager.Clear(ctx, e2eUser))

	first := bot.Manager.ProcessMessage(ctx, "When should I sow wheat in Punjab?", nil, e2eUser)
	require.NotEqual(t, dialogue.KindError, first.Kind())
	assert.Equal(t, 1, first.Body().MessageCount)
	assert.Contains(t, first.Body().Entities.Crops, "wheat")

	second := bot.Manager.ProcessMessage(ctx, "my rice leaves have yellow spots", nil, e2eUser)
	require.NotEqual(t, dialogue.KindError, second.Kind())
	assert.Equal(t, 3, second.Body().MessageCount)

	exists, err := svc.redis.Client.Exists(ctx, "chatbot:conversation:"+e2eUser).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)

	raw, err := bot.Store.Export(ctx, e2eUser)
	require.NoError(t, err)
	require.NoError(t, memory.ValidateSnapshot(raw))

	state, err := memory.DecodeSnapshot(raw)
	require.NoError(t, err)
	assert.Len(t, state.History, 4)
	assert.Equal(t, models.RoleUser, state.History[0].Role)
	assert.Equal(t, []string{"wheat", "rice"}, state.UserProfile.Crops)

	summary, err := bot.Manager.Summary(ctx, e2eUser)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalMessages)

	// Archived turns become searchable after a refresh.
	es := svc.es.Client
	res, err := es.Indices.Refresh(es.Indices.Refresh.WithIndex(cfg.Archive.Index))
	require.NoError(t, err)
	res.Body.Close()

	res, err = es.Count(
		es.Count.WithContext(ctx),
		es.Count.WithIndex(cfg.Archive.Index),
		es.Count.WithQuery("conversation_id:"+e2eUser),
	)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.False(t, res.IsError(), res.String())

	require.NoError(t, bot.Manager.Clear(ctx, e2eUser))
	_, err = bot.Manager.Summary(ctx, e2eUser)
	assert.ErrorIs(t, err, dialogue.ErrConversationNotFound)

	t.Log("Chatbot conversation persisted and archived")
}

func testPricePredictionFromHistory(t *testing.T, ctx context.Context, cfg *config.Config, svc *services) {
	t.Log("Testing price prediction against PostgreSQL...")

	cfg.Advisory.PriceBackend = "postgres"
	wc := config.GetWorkerConfig(cfg, priceprediction.TaskType)
	pcfg := priceprediction.LoadConfig(wc, cfg.Advisory)

	handler := priceprediction.NewHandler(pcfg,
		priceprediction.NewPostgresHistory(svc.pg.DB, svc.redis.Client, pcfg),
		logger.NewZapAdapter(zapLog))

	out, err := handler.Execute(ctx, &priceprediction.Input{Crop: "wheat", District: "E2E Mandi", ArrivalQuantity: 1000})
	require.NoError(t, err)
	assert.Equal(t, priceprediction.SourceHistory, out.Source)
	assert.InDelta(t, 2200.0, out.PredictedPrice, 0.01)
	assert.Equal(t, 0.85, out.Confidence)
	assert.Equal(t, "Low", out.RiskLevel)

	// Second call is served from the Redis cache.
	keys, err := svc.redis.Client.Keys(ctx, "price:avg:wheat:*").Result()
	require.NoError(t, err)
	assert.NotEmpty(t, keys)

	again, err := handler.Execute(ctx, &priceprediction.Input{Crop: "wheat", District: "E2E Mandi"})
	require.NoError(t, err)
	assert.InDelta(t, out.PredictedPrice, again.PredictedPrice, 0.01)

	t.Log("Price prediction served from history")
}

func testCropRecommendation(t *testing.T, ctx context.Context, cfg *config.Config) {
	t.Log("Testing crop recommendation...")

	wc := config.GetWorkerConfig(cfg, croprecommendation.TaskType)
	handler := croprecommendation.NewHandler(croprecommendation.LoadConfig(wc), croprecommendation.ProfileScorer(), logger.NewZapAdapter(zapLog))

	out, err := handler.Execute(ctx, &croprecommendation.Input{SoilType: "loamy", Season: "rabi", Location: "Punjab"})
	require.NoError(t, err)
	require.NotEmpty(t, out.RecommendedCrops)
	assert.False(t, out.Fallback)
	assert.True(t, strings.HasPrefix(out.Reasoning, "Based on your conditions, "+out.RecommendedCrops[0].Crop))
}

func testHTTPBoundary(t *testing.T, ctx context.Context, cfg *config.Config, svc *services) {
	t.Log("Testing the HTTP boundary...")

	gin.SetMode(gin.TestMode)
	cfg.Chatbot.MemoryBackend = "redis"
	cfg.Archive.Enabled = false

	log := logger.NewZapAdapter(zapLog)
	bot, err := bootstrap.NewChatbot(ctx, cfg, bootstrap.Backends{Redis: svc.redis.Client}, log)
	require.NoError(t, err)
	defer bot.Close()

	wc := config.GetWorkerConfig(cfg, priceprediction.TaskType)
	pcfg := priceprediction.LoadConfig(wc, cfg.Advisory)
	router := internalhttp.NewRouter(internalhttp.Deps{
		Chat:     bot.Manager,
		Price:    priceprediction.NewHandler(pcfg, priceprediction.NewPostgresHistory(svc.pg.DB, svc.redis.Client, pcfg), log),
		Backends: []database.Pinger{svc.pg, svc.redis, svc.es},
		Logger:   log,
	})

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	const user = "e2e-http-farmer"
	do(http.MethodDelete, "/chat/"+user, nil)

	w := do(http.MethodPost, "/chat", map[string]interface{}{"message": "what is the price of onion in Nashik", "user_id": user})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var reply map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, user, reply["conversation_id"])
	assert.EqualValues(t, 1, reply["message_count"])

	w = do(http.MethodGet, "/chat/"+user+"/summary", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(http.MethodPost, "/price/predict", map[string]interface{}{"crop": "wheat", "district": "E2E Mandi"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"source":"history"`)

	w = do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/chat/"+user, nil).Code)
	t.Log("HTTP boundary serves chat, price and health")
}

func BenchmarkChatbot_ProcessMessage(b *testing.B) {
	cfg, err := config.Load()
	if err != nil {
		b.Fatal(err)
	}
	cfg.Chatbot.MemoryBackend = "memory"
	cfg.Chatbot.Responder = "static"
	cfg.Archive.Enabled = false

	bot, err := bootstrap.NewChatbot(context.Background(), cfg, bootstrap.Backends{}, logger.NewZapAdapter(zap.NewNop()))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bot.Manager.ProcessMessage(context.Background(), "what fertilizer for maize in Bihar", nil, fmt.Sprintf("bench-%d", i%64))
	}
}
