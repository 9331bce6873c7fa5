package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sellerID = "6f1c9a52-3a55-4d7e-9a57-0d2f4c1b7e10"

type fakeAPI struct {
	srv      *httptest.Server
	images   []map[string]any
	deletes  atomic.Int32
	lastAuth atomic.Value
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/profile", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth.Store(r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"profile": map[string]any{
				"_id": sellerID, "name": "Asha Rao", "role": "seller", "seedsCount": 2,
				"location": map[string]float64{"latitude": 12.9716, "longitude": 77.5946},
			},
		})
	})
	mux.HandleFunc("GET /api/v1/hatcheries/user/{userId}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, sellerID, r.PathValue("userId"))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "hatchery": f.hatchery()})
	})
	mux.HandleFunc("DELETE /api/v1/hatcheries/delete-image/{hatcheryId}/{index}", func(w http.ResponseWriter, r *http.Request) {
		f.deletes.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "hatchery": map[string]any{"id": "h1", "images": []any{}}})
	})
	mux.HandleFunc("GET /api/v1/purchases/{txId}/invoice", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("txId") != "tx1" {
			writeJSON(w, http.StatusConflict, map[string]any{"success": false, "message": "Invoices are only available for approved purchases."})
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, "<html>INV-202503-123456</html>")
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) hatchery() map[string]any {
	images := f.images
	if images == nil {
		images = []map[string]any{}
	}
	return map[string]any{
		"id": "h1", "userId": sellerID, "images": images,
		"startDate": "2025-03-01T00:00:00Z", "endDate": "2025-03-31T00:00:00Z",
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// run executes hatchctl with a config file in a temp dir
func run(t *testing.T, cfgFile string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmdWith(newApp())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", cfgFile}, args...))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func writeConfig(t *testing.T, values map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	data, err := json.Marshal(values)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLogin_StoresToken(t *testing.T) {
	api := newFakeAPI(t)
	cfg := filepath.Join(t.TempDir(), "hatchctl", "config.json")

	out, err := run(t, cfg, "--api-url", api.srv.URL, "login", "--token", "tok-123")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Asha Rao (seller).")
	assert.Equal(t, "Bearer tok-123", api.lastAuth.Load())

	data, err := os.ReadFile(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tok-123")

	info, err := os.Stat(cfg)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLogin_RequiresToken(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "config.json"), "login")
	assert.EqualError(t, err, "--token is required")
}

func TestNotLoggedIn(t *testing.T) {
	t.Setenv("HATCHCTL_TOKEN", "")
	_, err := run(t, filepath.Join(t.TempDir(), "config.json"), "profile")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestProfile(t *testing.T) {
	api := newFakeAPI(t)
	cfg := writeConfig(t, map[string]any{"api_url": api.srv.URL, "token": "tok"})

	out, err := run(t, cfg, "profile")
	require.NoError(t, err)
	assert.Contains(t, out, "Asha Rao")
	assert.Contains(t, out, sellerID)
	assert.Contains(t, out, "Seeds:  2")
}

func TestHatcheryShow(t *testing.T) {
	api := newFakeAPI(t)
	api.images = []map[string]any{
		{"url": "https://cdn.example.com/1.jpg", "public_id": "p1", "uploadedAt": time.Now().Add(-90 * time.Second).UTC().Format(time.RFC3339)},
	}
	cfg := writeConfig(t, map[string]any{"api_url": api.srv.URL, "token": "tok"})

	out, err := run(t, cfg, "hatchery", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Hatchery h1")
	assert.Contains(t, out, "filled")
	assert.Contains(t, out, "unlocks in 04:")
	assert.Contains(t, out, "upload slot 2 first")
}

func TestHatcheryDelete_RefusedLocally(t *testing.T) {
	api := newFakeAPI(t)
	api.images = []map[string]any{
		{"url": "https://cdn.example.com/1.jpg", "public_id": "p1", "uploadedAt": time.Now().Add(-10 * time.Minute).UTC().Format(time.RFC3339)},
	}
	cfg := writeConfig(t, map[string]any{"api_url": api.srv.URL, "token": "tok"})

	_, err := run(t, cfg, "hatchery", "delete", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Images can only be deleted within 1 minute of upload.")
	assert.Zero(t, api.deletes.Load())
}

func TestHatcheryDelete_WithinWindow(t *testing.T) {
	api := newFakeAPI(t)
	api.images = []map[string]any{
		{"url": "https://cdn.example.com/1.jpg", "public_id": "p1", "uploadedAt": time.Now().Add(-10 * time.Second).UTC().Format(time.RFC3339)},
	}
	cfg := writeConfig(t, map[string]any{"api_url": api.srv.URL, "token": "tok"})

	out, err := run(t, cfg, "hatchery", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted the image in slot 1.")
	assert.Equal(t, int32(1), api.deletes.Load())
}

func TestHatcheryDelete_BadSlot(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "config.json"), "hatchery", "delete", "5")
	assert.EqualError(t, err, "slot must be a number from 1 to 4")
}

func TestHatcheryUpload_LocationNeedsPermission(t *testing.T) {
	api := newFakeAPI(t)
	cfg := writeConfig(t, map[string]any{"api_url": api.srv.URL, "token": "tok"})
	img := filepath.Join(t.TempDir(), "tray.jpg")
	require.NoError(t, os.WriteFile(img, []byte("jpegdata"), 0o600))

	_, err := run(t, cfg, "hatchery", "upload", img, "--lat", "12.97", "--lon", "77.59")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location permission denied")
}

func TestInvoice(t *testing.T) {
	api := newFakeAPI(t)
	cfg := writeConfig(t, map[string]any{"api_url": api.srv.URL, "token": "tok"})

	t.Run("writes file", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "invoice.html")
		out, err := run(t, cfg, "invoice", "tx1", "--out", dest)
		require.NoError(t, err)
		assert.Contains(t, out, "Invoice saved")

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Contains(t, string(data), "INV-202503-123456")
	})

	t.Run("server message surfaces", func(t *testing.T) {
		_, err := run(t, cfg, "invoice", "pending")
		require.Error(t, err)
		assert.Equal(t, "Invoices are only available for approved purchases.", err.Error())
	})
}

func TestDistance(t *testing.T) {
	api := newFakeAPI(t)
	api.images = []map[string]any{
		{"url": "u", "public_id": "p1", "uploadedAt": "2025-03-02T09:00:00Z", "location": map[string]float64{"latitude": 12.9716, "longitude": 77.5946}},
		{"url": "u", "public_id": "p2", "uploadedAt": "2025-03-03T09:00:00Z"},
	}
	cfg := writeConfig(t, map[string]any{"api_url": api.srv.URL, "token": "tok"})

	out, err := run(t, cfg, "distance")
	require.NoError(t, err)
	assert.Contains(t, out, "0.00 km")
	assert.Contains(t, out, "N/A")

	out, err = run(t, cfg, "distance", "--lat", "13.0827", "--lon", "80.2707")
	require.NoError(t, err)
	assert.Contains(t, out, "km from your site")
}
