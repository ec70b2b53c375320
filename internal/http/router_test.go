package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisan-advisory/internal/chatbot/classifier"
	"kisan-advisory/internal/chatbot/dialogue"
	"kisan-advisory/internal/chatbot/entities"
	"kisan-advisory/internal/chatbot/knowledge"
	"kisan-advisory/internal/chatbot/memory"
	"kisan-advisory/internal/chatbot/response"
	"kisan-advisory/internal/common/database"
	"kisan-advisory/internal/common/logger"
	crop "kisan-advisory/internal/workers/advisory/crop-recommendation"
	disease "kisan-advisory/internal/workers/advisory/disease-detection"
	price "kisan-advisory/internal/workers/advisory/price-prediction"
)

// ==========================
// Test wiring
// ==========================

type classifierLogger struct{ logger.Logger }

func (l classifierLogger) With(f map[string]interface{}) classifier.Logger {
	return classifierLogger{l.Logger.With(f)}
}

type entityLogger struct{ logger.Logger }

func (l entityLogger) With(f map[string]interface{}) entities.Logger {
	return entityLogger{l.Logger.With(f)}
}

type memoryLogger struct{ logger.Logger }

func (l memoryLogger) With(f map[string]interface{}) memory.Logger {
	return memoryLogger{l.Logger.With(f)}
}

type dialogueLogger struct{ logger.Logger }

func (l dialogueLogger) With(f map[string]interface{}) dialogue.Logger {
	return dialogueLogger{l.Logger.With(f)}
}

type stubPinger struct {
	name string
	err  error
}

func (s stubPinger) Name() string                 { return s.name }
func (s stubPinger) Ping(_ context.Context) error { return s.err }

func buildTestRouter(t *testing.T, backends ...database.Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewTestLogger(t)

	catalog := knowledge.Default()
	engine := classifier.NewEngine(catalog, entities.NewExtractor(nil, entityLogger{log}), classifierLogger{log})
	store := memory.NewInMemoryStore(4, memoryLogger{log})
	sel := response.NewSelector(catalog, knowledge.LocaleEnglish, response.WithSource(rand.NewSource(3)))
	manager := dialogue.NewManager(engine, sel, store, catalog, dialogueLogger{log})

	return NewRouter(Deps{
		Chat:        manager,
		Crop:        crop.NewHandler(&crop.Config{Timeout: time.Second, TopN: 3}, crop.ProfileScorer(), log),
		Disease:     disease.NewHandler(&disease.Config{Timeout: time.Second, MaxImageSize: 1024, ModelVersion: "test"}, nil, log),
		Price:       price.NewHandler(&price.Config{Timeout: time.Second}, nil, log),
		Backends:    backends,
		Logger:      log,
		MetricsPath: "/metrics",
		AppVersion:  "test",
	})
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case []byte:
		buf.Write(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// ==========================
// Chat
// ==========================

func TestChat_Message(t *testing.T) {
	r := buildTestRouter(t)

	w := doRequest(r, http.MethodPost, "/chat", map[string]any{
		"message": "what crop should I grow",
		"user_id": "farmer-1",
		"context": map[string]any{"channel": "web"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "crop_recommendation", body["intent"])
	assert.Equal(t, "farmer-1", body["conversation_id"])
	assert.Equal(t, float64(2), body["message_count"])
	assert.Equal(t, true, body["needs_follow_up"])
	assert.Equal(t, "recognized", body["kind"])
}

func TestChat_Anonymous(t *testing.T) {
	r := buildTestRouter(t)

	w := doRequest(r, http.MethodPost, "/chat", map[string]any{"message": "hello there"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "anonymous", body["conversation_id"])
	assert.Equal(t, float64(1), body["message_count"])
	assert.Equal(t, false, body["needs_follow_up"])
}

func TestChat_InvalidRequests(t *testing.T) {
	r := buildTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"malformed json", http.MethodPost, "/chat", []byte(`{"message":`), http.StatusBadRequest},
		{"empty message", http.MethodPost, "/chat", map[string]any{"message": "  "}, http.StatusBadRequest},
		{"unknown history", http.MethodGet, "/chat/ghost/history", nil, http.StatusNotFound},
		{"unknown summary", http.MethodGet, "/chat/ghost/summary", nil, http.StatusNotFound},
		{"bad snapshot", http.MethodPut, "/chat/u/import", []byte(`{"version":9}`), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, decode(t, w), "error")
		})
	}
}

func TestChat_ConversationLifecycle(t *testing.T) {
	r := buildTestRouter(t)

	for _, msg := range []string{"I grow rice in Punjab", "my plant has spots on leaves"} {
		w := doRequest(r, http.MethodPost, "/chat", map[string]any{"message": msg, "user_id": "u1"})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doRequest(r, http.MethodGet, "/chat/u1/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["history"], 2)

	w = doRequest(r, http.MethodGet, "/chat/u1/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode(t, w)
	assert.Equal(t, float64(2), summary["total_messages"])
	assert.Equal(t, []interface{}{"rice"}, summary["main_topics"])

	w = doRequest(r, http.MethodGet, "/chat/u1/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	snapshot := w.Body.Bytes()

	w = doRequest(r, http.MethodPut, "/chat/u2/import", snapshot)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = doRequest(r, http.MethodGet, "/chat/u2/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["history"], 2)

	w = doRequest(r, http.MethodGet, "/chat/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)
	assert.Equal(t, float64(2), stats["total_users"])
	assert.Equal(t, float64(4), stats["total_messages"])

	w = doRequest(r, http.MethodDelete, "/chat/u1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(r, http.MethodGet, "/chat/suggestions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["suggestions"])
}

// ==========================
// Advisory
// ==========================

func TestAdvisoryRoutes(t *testing.T) {
	r := buildTestRouter(t)
	leaf := base64.StdEncoding.EncodeToString([]byte("leaf"))

	tests := []struct {
		name   string
		path   string
		body   interface{}
		status int
		check  func(t *testing.T, body map[string]interface{})
	}{
		{"crop", "/crop/recommend", map[string]any{"soil_type": "loamy", "season": "rabi"}, http.StatusOK,
			func(t *testing.T, body map[string]interface{}) {
				assert.Len(t, body["recommended_crops"], 3)
			}},
		{"crop missing season", "/crop/recommend", map[string]any{"soil_type": "loamy"}, http.StatusBadRequest, nil},
		{"disease without model", "/disease/detect", map[string]any{"image": leaf, "crop_type": "rice"}, http.StatusOK,
			func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, disease.DetectionFailed, body["disease"])
			}},
		{"disease bad image", "/disease/detect", map[string]any{"image": "%%"}, http.StatusBadRequest, nil},
		{"price", "/price/predict", map[string]any{"crop": "wheat", "district": "Karnal"}, http.StatusOK,
			func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, float64(2400), body["predicted_price"])
			}},
		{"price missing district", "/price/predict", map[string]any{"crop": "wheat"}, http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, tt.path, tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.check != nil {
				tt.check(t, decode(t, w))
			}
		})
	}
}

// ==========================
// Health / metrics / recovery
// ==========================

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		r := buildTestRouter(t, stubPinger{name: "redis"})
		w := doRequest(r, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", decode(t, w)["status"])
	})

	t.Run("degraded", func(t *testing.T) {
		r := buildTestRouter(t, stubPinger{name: "redis"}, stubPinger{name: "postgres", err: errors.New("refused")})
		w := doRequest(r, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		backends := decode(t, w)["backends"].(map[string]interface{})
		assert.Equal(t, "ok", backends["redis"])
		assert.Equal(t, "refused", backends["postgres"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	r := buildTestRouter(t)
	doRequest(r, http.MethodPost, "/chat", map[string]any{"message": "market price of wheat"})

	w := doRequest(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "chatbot_turns_total")
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(logger.NewTestLogger(t)))
	r.GET("/boom", func(*gin.Context) { panic(fmt.Sprintf("boom %d", 1)) })

	w := doRequest(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decode(t, w), "error")
}
