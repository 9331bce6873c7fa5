package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HatcheryOps_Go/internal/auth"
	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

func newTestIssuer(t *testing.T) *auth.Issuer {
	t.Helper()
	issuer, err := auth.NewIssuer("test-secret", "hatchery-test", time.Hour)
	require.NoError(t, err)
	return issuer
}

func mintToken(t *testing.T, issuer *auth.Issuer, id domain.UserID, role string) string {
	t.Helper()
	token, err := issuer.Mint(id, role)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	issuer := newTestIssuer(t)
	other, err := auth.NewIssuer("other-secret", "hatchery-test", time.Hour)
	require.NoError(t, err)

	seller := domain.NewUserID()
	valid := mintToken(t, issuer, seller, domain.RoleSeller)
	forged := mintToken(t, other, seller, domain.RoleSeller)

	tests := []struct {
		name           string
		path           string
		header         string
		expectedStatus int
		wantIdentity   bool
	}{
		{"valid token", "/api/v1/profile", "Bearer " + valid, http.StatusOK, true},
		{"lowercase scheme", "/api/v1/profile", "bearer " + valid, http.StatusOK, true},
		{"wrong signing key", "/api/v1/profile", "Bearer " + forged, http.StatusUnauthorized, false},
		{"missing token", "/api/v1/profile", "", http.StatusUnauthorized, false},
		{"basic auth", "/api/v1/profile", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, false},
		{"event stream query token", "/api/v1/events?access_token=" + valid, "", http.StatusOK, true},
		{"query token only on event stream", "/api/v1/profile?access_token=" + valid, "", http.StatusUnauthorized, false},
		{"public healthz", "/healthz", "", http.StatusOK, false},
		{"public metrics", "/metrics", "", http.StatusOK, false},
		{"public media", "/media/h1/img.jpg", "", http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := NewSuspiciousActivityDetector()
			var gotIdentity bool
			h := AuthMiddleware(issuer, nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := auth.FromContext(r.Context())
				gotIdentity = ok
				if ok {
					assert.Equal(t, seller, id.UserID)
				}
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.wantIdentity, gotIdentity)
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"success":false,"message":"Unauthorized"}`, rec.Body.String())
				detector.mu.Lock()
				assert.Equal(t, 1, detector.failedAuthByIP["192.0.2.1"])
				detector.mu.Unlock()
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := RequireRole(domain.RoleAdmin)(ok)

	tests := []struct {
		name     string
		identity *auth.Identity
		want     int
	}{
		{"admin", &auth.Identity{UserID: domain.NewUserID(), Role: domain.RoleAdmin}, http.StatusOK},
		{"seller", &auth.Identity{UserID: domain.NewUserID(), Role: domain.RoleSeller}, http.StatusForbidden},
		{"anonymous", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/sellers", nil)
			if tt.identity != nil {
				req = req.WithContext(auth.WithIdentity(req.Context(), tt.identity))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		forwarded string
		trusted   []string
		want      string
	}{
		{"direct", "203.0.113.9:5000", "", nil, "203.0.113.9"},
		{"untrusted forwarded ignored", "203.0.113.9:5000", "198.51.100.1", nil, "203.0.113.9"},
		{"trusted proxy uses rightmost hop", "10.0.0.1:5000", "198.51.100.1, 198.51.100.2", []string{"10.0.0.1"}, "198.51.100.2"},
		{"unparseable remote", "garbage", "", nil, "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, extractIP(req, tt.trusted))
		})
	}
}
