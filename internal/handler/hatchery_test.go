package handler

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HatcheryOps_Go/internal/auth"
	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/hatchery"
	"github.com/osse101/HatcheryOps_Go/internal/slots"
	"github.com/osse101/HatcheryOps_Go/mocks"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// uploadBody builds a multipart body; a nil file omits the images field
func uploadBody(t *testing.T, file []byte, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if file != nil {
		part, err := mw.CreateFormFile(uploadFileField, "tray.png")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleUploadImage(t *testing.T) {
	InitValidator()
	stored := &domain.Hatchery{ID: "h1", UserID: sellerID, Images: []domain.HatcheryImage{{URL: "http://media/h1/a.png"}}}

	tests := []struct {
		name       string
		file       []byte
		fields     map[string]string
		identity   *auth.Identity
		setupMock  func(*mocks.MockHatcheryService)
		wantStatus int
		wantBody   string
	}{
		{
			name:     "success with location",
			file:     pngHeader,
			fields:   map[string]string{"latitude": "12.97", "longitude": "77.59"},
			identity: identityPtr(sellerIdentity),
			setupMock: func(m *mocks.MockHatcheryService) {
				m.On("UploadImage", mock.Anything, sellerIdentity, "h1", mock.MatchedBy(func(u hatchery.Upload) bool {
					return u.File != nil && u.Location != nil && u.Location.Latitude == 12.97 && u.Location.Longitude == 77.59
				})).Return(stored, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"success":true`,
		},
		{
			name:     "success without location",
			file:     pngHeader,
			identity: identityPtr(sellerIdentity),
			setupMock: func(m *mocks.MockHatcheryService) {
				m.On("UploadImage", mock.Anything, sellerIdentity, "h1", mock.MatchedBy(func(u hatchery.Upload) bool {
					return u.Location == nil
				})).Return(stored, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"public_id"`,
		},
		{
			name:     "seeds not assigned keeps its wording",
			file:     pngHeader,
			identity: identityPtr(sellerIdentity),
			setupMock: func(m *mocks.MockHatcheryService) {
				m.On("UploadImage", mock.Anything, sellerIdentity, "h1", mock.Anything).Return(nil, domain.ErrSeedsNotAssigned)
			},
			wantStatus: http.StatusConflict,
			wantBody:   `"message":"Seeds have not been assigned to your account yet."`,
		},
		{
			name:     "locked slot shows countdown",
			file:     pngHeader,
			identity: identityPtr(sellerIdentity),
			setupMock: func(m *mocks.MockHatcheryService) {
				m.On("UploadImage", mock.Anything, sellerIdentity, "h1", mock.Anything).
					Return(nil, fmt.Errorf("%w: unlocks in 04:30", domain.ErrSlotLocked))
			},
			wantStatus: http.StatusConflict,
			wantBody:   `"message":"This slot is still locked. Unlocks in 04:30."`,
		},
		{
			name:     "unsupported media",
			file:     []byte("plain text"),
			identity: identityPtr(sellerIdentity),
			setupMock: func(m *mocks.MockHatcheryService) {
				m.On("UploadImage", mock.Anything, sellerIdentity, "h1", mock.Anything).
					Return(nil, fmt.Errorf("%w: text/plain", domain.ErrUnsupportedMedia))
			},
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:       "missing file",
			identity:   identityPtr(sellerIdentity),
			fields:     map[string]string{"latitude": "1"},
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrMsgMissingImageFile,
		},
		{
			name:       "half a coordinate",
			file:       pngHeader,
			fields:     map[string]string{"latitude": "12.97"},
			identity:   identityPtr(sellerIdentity),
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrMsgInvalidCoordinate,
		},
		{
			name:       "non-numeric coordinate",
			file:       pngHeader,
			fields:     map[string]string{"latitude": "north", "longitude": "77"},
			identity:   identityPtr(sellerIdentity),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no identity",
			file:       pngHeader,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockHatcheryService(t)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			body, contentType := uploadBody(t, tt.file, tt.fields)
			req := newRequest(http.MethodPost, "/api/v1/hatcheries/upload-image/h1", body, tt.identity, "hatcheryId", "h1")
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			HandleUploadImage(svc, 10<<20).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandleUploadImage_TooLarge(t *testing.T) {
	svc := mocks.NewMockHatcheryService(t)
	body, contentType := uploadBody(t, bytes.Repeat([]byte{0xff}, 2<<20), nil)
	req := newRequest(http.MethodPost, "/api/v1/hatcheries/upload-image/h1", body, identityPtr(sellerIdentity), "hatcheryId", "h1")
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	HandleUploadImage(svc, 1024).ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	svc.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleDeleteImage(t *testing.T) {
	tests := []struct {
		name       string
		index      string
		setupMock  func(*mocks.MockHatcheryService)
		wantStatus int
		wantBody   string
	}{
		{
			name:  "inside window",
			index: "1",
			setupMock: func(m *mocks.MockHatcheryService) {
				m.On("DeleteImage", mock.Anything, sellerIdentity, "h1", 1).Return(&domain.Hatchery{ID: "h1"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   MsgImageDeleted,
		},
		{
			name:  "window expired uses the exact message",
			index: "0",
			setupMock: func(m *mocks.MockHatcheryService) {
				m.On("DeleteImage", mock.Anything, sellerIdentity, "h1", 0).Return(nil, domain.ErrDeleteWindowExpired)
			},
			wantStatus: http.StatusConflict,
			wantBody:   `"message":"Images can only be deleted within 1 minute of upload."`,
		},
		{
			name:  "someone else's hatchery",
			index: "0",
			setupMock: func(m *mocks.MockHatcheryService) {
				m.On("DeleteImage", mock.Anything, sellerIdentity, "h1", 0).Return(nil, domain.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
		},
		{name: "index out of range", index: "4", wantStatus: http.StatusBadRequest, wantBody: ErrMsgInvalidSlotIndex},
		{name: "index not a number", index: "two", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockHatcheryService(t)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			req := newRequest(http.MethodDelete, "/", nil, identityPtr(sellerIdentity), "hatcheryId", "h1", "index", tt.index)
			w := httptest.NewRecorder()
			HandleDeleteImage(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandleGetUserHatchery(t *testing.T) {
	other := domain.NewUserID()

	t.Run("own hatchery is created on first visit", func(t *testing.T) {
		svc := mocks.NewMockHatcheryService(t)
		svc.On("GetOrCreate", mock.Anything, sellerID).Return(&domain.Hatchery{ID: "h1", UserID: sellerID}, nil)

		w := httptest.NewRecorder()
		HandleGetUserHatchery(svc).ServeHTTP(w, newRequest(http.MethodGet, "/", nil, identityPtr(sellerIdentity), "userId", sellerID.String()))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp HatcheryResponse
		decodeBody(t, w, &resp)
		assert.True(t, resp.Success)
		assert.Equal(t, "h1", resp.Hatchery.ID)
	})

	t.Run("seller cannot read another seller", func(t *testing.T) {
		svc := mocks.NewMockHatcheryService(t)
		w := httptest.NewRecorder()
		HandleGetUserHatchery(svc).ServeHTTP(w, newRequest(http.MethodGet, "/", nil, identityPtr(sellerIdentity), "userId", other.String()))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin reads without creating", func(t *testing.T) {
		svc := mocks.NewMockHatcheryService(t)
		svc.On("GetCurrent", mock.Anything, other).Return(nil, domain.ErrHatcheryNotFound)

		w := httptest.NewRecorder()
		HandleGetUserHatchery(svc).ServeHTTP(w, newRequest(http.MethodGet, "/", nil, identityPtr(adminIdentity), "userId", other.String()))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("mongo-style id is rejected", func(t *testing.T) {
		svc := mocks.NewMockHatcheryService(t)
		w := httptest.NewRecorder()
		HandleGetUserHatchery(svc).ServeHTTP(w, newRequest(http.MethodGet, "/", nil, identityPtr(adminIdentity), "userId", "64b7f0c2e1a3"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleCreateHatchery(t *testing.T) {
	tests := []struct {
		name       string
		created    bool
		wantStatus int
		wantMsg    string
	}{
		{"new cycle", true, http.StatusCreated, MsgHatcheryCreated},
		{"active cycle returned", false, http.StatusOK, MsgHatcheryExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockHatcheryService(t)
			svc.On("Create", mock.Anything, sellerID).Return(&domain.Hatchery{ID: "h1"}, tt.created, nil)

			w := httptest.NewRecorder()
			HandleCreateHatchery(svc).ServeHTTP(w, newRequest(http.MethodPost, "/", nil, identityPtr(sellerIdentity)))

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp HatcheryResponse
			decodeBody(t, w, &resp)
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}

func TestHandleGetBoard(t *testing.T) {
	svc := mocks.NewMockHatcheryService(t)
	view := &hatchery.BoardView{
		Hatchery:   &domain.Hatchery{ID: "h1"},
		Board:      slots.Board{NextIndex: 1},
		SeedsCount: 3,
	}
	svc.On("GetBoard", mock.Anything, sellerIdentity, "h1").Return(view, nil)

	w := httptest.NewRecorder()
	HandleGetBoard(svc).ServeHTTP(w, newRequest(http.MethodGet, "/", nil, identityPtr(sellerIdentity), "hatcheryId", "h1"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"seedsCount":3`)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestHandleReviewImage(t *testing.T) {
	InitValidator()

	t.Run("rejects unknown verdict", func(t *testing.T) {
		svc := mocks.NewMockHatcheryService(t)
		w := httptest.NewRecorder()
		req := newRequest(http.MethodPut, "/", jsonBody(t, ReviewImageRequest{Status: "maybe"}), identityPtr(adminIdentity),
			"hatcheryId", "h1", "index", "2")
		HandleReviewImage(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp ValidationErrorResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "Must be approved or rejected", resp.Fields["status"])
	})

	t.Run("records verdict", func(t *testing.T) {
		svc := mocks.NewMockHatcheryService(t)
		svc.On("ReviewImage", mock.Anything, "h1", 2, domain.ImageStatusRejected, "blurry").
			Return(&domain.Hatchery{ID: "h1"}, nil)

		w := httptest.NewRecorder()
		req := newRequest(http.MethodPut, "/", jsonBody(t, ReviewImageRequest{Status: "rejected", Feedback: "blurry"}),
			identityPtr(adminIdentity), "hatcheryId", "h1", "index", "2")
		HandleReviewImage(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHandleListHatcheries(t *testing.T) {
	svc := mocks.NewMockHatcheryService(t)
	svc.On("ListHatcheries", mock.Anything, "archived").
		Return(nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, "archived"))
	svc.On("ListHatcheries", mock.Anything, "").Return(nil, nil)

	w := httptest.NewRecorder()
	HandleListHatcheries(svc).ServeHTTP(w, newRequest(http.MethodGet, "/?status=archived", nil, identityPtr(adminIdentity)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	HandleListHatcheries(svc).ServeHTTP(w, newRequest(http.MethodGet, "/", nil, identityPtr(adminIdentity)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hatcheries":[]`)
}

func TestHandleCloseCycle(t *testing.T) {
	svc := mocks.NewMockHatcheryService(t)
	svc.On("CloseCycle", mock.Anything, "h1", false).Return(&domain.Hatchery{ID: "h1", Status: domain.HatcheryStatusClosed}, nil)

	w := httptest.NewRecorder()
	HandleCloseCycle(svc).ServeHTTP(w, newRequest(http.MethodPost, "/", nil, identityPtr(adminIdentity), "hatcheryId", "h1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"closed"`)
}
