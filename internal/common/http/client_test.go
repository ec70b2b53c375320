package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PostJSON(t *testing.T) {
	t.Run("success with auth header", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var in map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
		}))
		defer server.Close()

		c := NewClient(0, WithHeader("Authorization", "Bearer k"))
		var out map[string]string
		require.NoError(t, c.PostJSON(context.Background(), server.URL, map[string]string{"msg": "hi"}, &out))
		assert.Equal(t, "hi", out["echo"])
	})

	t.Run("retries then succeeds with body resent", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var in map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "hi", in["msg"])
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"ok":"yes"}`))
		}))
		defer server.Close()

		c := NewClient(3, WithBaseDelay(time.Millisecond))
		var out map[string]string
		require.NoError(t, c.PostJSON(context.Background(), server.URL, map[string]string{"msg": "hi"}, &out))
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("exhausted retries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewClient(1, WithBaseDelay(time.Millisecond))
		err := c.PostJSON(context.Background(), server.URL, struct{}{}, &struct{}{})
		assert.True(t, errors.Is(err, ErrRequestFailed))
	})

	t.Run("context deadline", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := NewClient(2).PostJSON(ctx, server.URL, struct{}{}, &struct{}{})
		assert.True(t, errors.Is(err, ErrTimeout))
	})

	t.Run("attempt timeout", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		c := NewClient(1, WithTimeout(10*time.Millisecond), WithBaseDelay(time.Millisecond))
		err := c.PostJSON(context.Background(), server.URL, struct{}{}, &struct{}{})
		assert.True(t, errors.Is(err, ErrTimeout))
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})
}
