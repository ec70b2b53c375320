package advisory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kisan-advisory/internal/common/config"
	"kisan-advisory/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemotePredictor_Predict(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"predictions":[{"label":"wheat","confidence":0.7},{"label":"rice","confidence":0.2}]}`))
	}))
	defer srv.Close()

	p := NewRemotePredictor(srv.URL, 0)
	preds, err := p.Predict(context.Background(), models.Features{"season": "rabi"})
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.Equal(t, "wheat", preds[0].Label)
	assert.Equal(t, map[string]interface{}{"season": "rabi"}, got["features"])
}

func TestRemotePredictor_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"empty ranking", http.StatusOK, `{"predictions":[]}`, ErrNoPredictions},
		{"server error", http.StatusInternalServerError, `{}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewRemotePredictor(srv.URL, 0).Predict(context.Background(), models.Features{})
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestPredictorFor(t *testing.T) {
	builtin := models.PredictorFunc(func(context.Context, models.Features) ([]models.Prediction, error) { return nil, nil })

	_, isRemote := PredictorFor(config.WorkerConfig{ModelURL: "http://model:9000/predict"}, builtin).(*RemotePredictor)
	assert.True(t, isRemote)
	_, isFunc := PredictorFor(config.WorkerConfig{}, builtin).(models.PredictorFunc)
	assert.True(t, isFunc)
}

func TestTimeout(t *testing.T) {
	assert.Equal(t, 5*time.Second, Timeout(config.WorkerConfig{}, 5*time.Second))
	assert.Equal(t, 250*time.Millisecond, Timeout(config.WorkerConfig{Timeout: 250}, time.Second))
}
