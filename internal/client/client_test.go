package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

const testUserID = "6f1c9a52-3a55-4d7e-9a57-0d2f4c1b7e10"

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "tok", WithHTTPClient(srv.Client()))
}

func TestProfile_NormalizesIdentifier(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSeeds int
	}{
		{"id", `{"success":true,"profile":{"id":"` + testUserID + `","seedsCount":3}}`, 3},
		{"mongoId", `{"success":true,"profile":{"mongoId":"` + testUserID + `","seedsCount":1}}`, 1},
		{"legacy _id without seeds", `{"success":true,"profile":{"_id":"` + testUserID + `"}}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/profile", r.URL.Path)
				assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
				_, _ = io.WriteString(w, tt.body)
			})

			p, err := c.Profile(context.Background())
			require.NoError(t, err)

			id, err := p.UserID()
			require.NoError(t, err)
			assert.Equal(t, domain.UserID(testUserID), id)
			assert.Equal(t, tt.wantSeeds, p.Seeds())
		})
	}
}

func TestUserRef_Empty(t *testing.T) {
	_, err := UserRef{}.UserID()
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)
}

func TestDo_ErrorMapping(t *testing.T) {
	t.Run("server message surfaces verbatim", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = io.WriteString(w, `{"success":false,"message":"This slot is still locked. Unlocks in 04:30."}`)
		})

		_, err := c.CreateHatchery(context.Background())
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusConflict, apiErr.Status)
		assert.Equal(t, "This slot is still locked. Unlocks in 04:30.", Message(err))
	})

	t.Run("no message falls back to try again", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		})

		_, err := c.Purchases(context.Background())
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Contains(t, Message(err), MsgTryAgain)
	})

	t.Run("unreachable server is a network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c := NewClient(srv.URL, "tok")

		_, err := c.Profile(context.Background())
		var netErr *NetworkFailure
		require.ErrorAs(t, err, &netErr)
		assert.Contains(t, Message(err), MsgTryAgain)
	})
}

func TestUploadImage_Multipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/hatcheries/upload-image/h1", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}

		file, header, err := r.FormFile(uploadFileField)
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "tray.jpg", header.Filename)
		assert.Equal(t, "jpegdata", string(data))
		assert.Equal(t, "12.9716", r.FormValue(uploadLatitudeField))
		assert.Equal(t, "77.5946", r.FormValue(uploadLongitudeField))

		w.WriteHeader(http.StatusCreated)
		_, _ = fmt.Fprintf(w, `{"success":true,"hatchery":{"_id":"h1","images":[{"url":"u","public_id":"p","uploadedAt":"2025-03-14T09:30:00Z"}]}}`)
	})

	loc := &domain.GeoPoint{Latitude: 12.9716, Longitude: 77.5946}
	h, err := c.UploadImage(context.Background(), "h1", "tray.jpg", strings.NewReader("jpegdata"), loc)
	require.NoError(t, err)
	assert.Equal(t, "h1", h.Key())
	require.Len(t, h.Images, 1)
	assert.Equal(t, time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC), h.Images[0].UploadedAt)
}

func TestDeleteImage_Path(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/hatcheries/delete-image/h1/2", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":true,"hatchery":{"id":"h1","images":[]}}`)
	})

	h, err := c.DeleteImage(context.Background(), "h1", 2)
	require.NoError(t, err)
	assert.Empty(t, h.Images)
}

func TestInvoice_ReturnsHTML(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/purchases/tx1/invoice", r.URL.Path)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, "<html>INV-202503-123456</html>")
	})

	body, err := c.Invoice(context.Background(), "tx1")
	require.NoError(t, err)
	assert.Contains(t, string(body), "INV-202503-123456")
}

func TestNotifications_Limit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `{"success":true,"notifications":[{"id":"n1","kind":"notice","title":"Harvest week"}]}`)
	})

	list, err := c.Notifications(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Harvest week", list[0].Title)
}

func TestStreamEvents(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		assert.Equal(t, "notification", r.URL.Query().Get("types"))
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, ": comment\n\n")
		_, _ = io.WriteString(w, "id: c1\nevent: connected\ndata: {\"id\":\"c1\",\"type\":\"connected\",\"timestamp\":1,\"payload\":{}}\n\n")
		_, _ = io.WriteString(w, "event: notification\ndata: {\"type\":\"notification\",\"timestamp\":2,\"payload\":{\"title\":\"Harvest week\"}}\n\n")
	})

	var got []Event
	err := c.StreamEvents(context.Background(), []string{"notification"}, func(e Event) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "connected", got[0].Type)

	var payload struct {
		Title string `json:"title"`
	}
	require.NoError(t, got[1].Decode(&payload))
	assert.Equal(t, "Harvest week", payload.Title)
	assert.Equal(t, int64(2), got[1].Time().Unix())
}

func TestStreamEvents_CallbackStops(t *testing.T) {
	stop := errors.New("stop")
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "data: {\"type\":\"keepalive\"}\n\ndata: {\"type\":\"keepalive\"}\n\n")
	})

	calls := 0
	err := c.StreamEvents(context.Background(), nil, func(Event) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"locked with countdown", &PreconditionNotMet{Err: fmt.Errorf("%w: unlocks in 04:30", domain.ErrSlotLocked)}, "This slot is still locked. Unlocks in 04:30."},
		{"delete window", &PreconditionNotMet{Err: domain.ErrDeleteWindowExpired}, "Images can only be deleted within 1 minute of upload."},
		{"permission", &PermissionDenied{Permission: PermissionCamera}, "camera permission denied"},
		{"plain", errors.New("other"), "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}
