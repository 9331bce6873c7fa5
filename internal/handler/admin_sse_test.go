package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HatcheryOps_Go/internal/sse"
)

func TestAdminSSEHandler(t *testing.T) {
	InitValidator()
	hub := sse.NewHub()
	hub.Start()
	defer hub.Stop()

	client := hub.Register(sellerID.String(), nil)
	h := NewAdminSSEHandler(hub)

	t.Run("stats", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleStats(w, newRequest(http.MethodGet, "/", nil, identityPtr(adminIdentity)))

		require.Equal(t, http.StatusOK, w.Code)
		var resp SSEStatsResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, 1, resp.ClientCount)
	})

	t.Run("broadcast reaches clients", func(t *testing.T) {
		body := strings.NewReader(`{"type":"maintenance","payload":{"minutes":5}}`)
		w := httptest.NewRecorder()
		h.HandleBroadcast(w, newRequest(http.MethodPost, "/", body, identityPtr(adminIdentity)))
		require.Equal(t, http.StatusOK, w.Code)

		select {
		case evt := <-client.EventChannel:
			assert.Equal(t, "maintenance", evt.Type)
			assert.Equal(t, map[string]interface{}{"minutes": float64(5)}, evt.Payload)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	})

	t.Run("type required", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleBroadcast(w, newRequest(http.MethodPost, "/", strings.NewReader(`{"payload":1}`), identityPtr(adminIdentity)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
