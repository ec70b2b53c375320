package archive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kisan-advisory/internal/common/config"
	"kisan-advisory/internal/common/database"
	"kisan-advisory/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestLogger struct {
	t *testing.T
}

func (l *TestLogger) Info(msg string, fields map[string]interface{}) {
	l.t.Logf("INFO: %s %v", msg, fields)
}

func (l *TestLogger) Warn(msg string, fields map[string]interface{}) {
	l.t.Logf("WARN: %s %v", msg, fields)
}

func (l *TestLogger) With(fields map[string]interface{}) Logger { return l }

func newArchive(t *testing.T, handler http.HandlerFunc) *ElasticsearchArchive {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := database.NewElasticsearch(config.ElasticsearchConfig{URL: srv.URL})
	require.NoError(t, err)
	return NewElasticsearchArchive(client, "", &TestLogger{t: t})
}

func sampleRecord() models.TurnRecord {
	return models.TurnRecord{
		TurnID:         "turn-1",
		ConversationID: "farmer-7",
		Message:        "I grow rice in Punjab",
		Response:       "Rice does well with standing water.",
		Intent:         models.IntentCropRecommendation,
		Confidence:     0.62,
		Entities:       models.Entities{Crops: []string{"rice"}, Locations: []string{"Punjab"}},
		Source:         "static",
		Timestamp:      time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestElasticsearchArchive_IndexTurn(t *testing.T) {
	var (
		gotPath string
		gotDoc  map[string]interface{}
	)
	a := newArchive(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotDoc)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	require.NoError(t, a.IndexTurn(context.Background(), sampleRecord()))
	assert.Equal(t, "/"+DefaultIndex+"/_doc/turn-1", gotPath)
	assert.Equal(t, "crop_recommendation", gotDoc["intent"])
	assert.Equal(t, "farmer-7", gotDoc["conversation_id"])
	assert.Equal(t, false, gotDoc["anonymous"])
}

func TestElasticsearchArchive_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		record func() models.TurnRecord
		want   error
	}{
		{"server rejects document", http.StatusBadRequest, sampleRecord, ErrIndexFailed},
		{"missing turn id", http.StatusCreated, func() models.TurnRecord {
			r := sampleRecord()
			r.TurnID = ""
			return r
		}, ErrNoTurnID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArchive(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{}`))
			})
			assert.ErrorIs(t, a.IndexTurn(context.Background(), tt.record()), tt.want)
		})
	}
}

func TestElasticsearchArchive_EnsureIndex(t *testing.T) {
	var mapping string
	a := newArchive(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			mapping = string(body)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"acknowledged":true}`))
		}
	})

	require.NoError(t, a.EnsureIndex(context.Background()))
	assert.True(t, strings.Contains(mapping, `"conversation_id"`))
	assert.True(t, json.Valid([]byte(Mapping)))
}
