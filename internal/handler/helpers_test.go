package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HatcheryOps_Go/internal/auth"
	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

var (
	sellerID = domain.UserID("3f2b8a4e-5c1d-4e8f-9a6b-7c0d1e2f3a4b")
	adminID  = domain.UserID("9d8c7b6a-5f4e-4d3c-8b2a-1f0e9d8c7b6a")

	sellerIdentity = auth.Identity{UserID: sellerID, Role: domain.RoleSeller}
	adminIdentity  = auth.Identity{UserID: adminID, Role: domain.RoleAdmin}
)

// newRequest builds a request carrying an identity and chi URL params given as key, value pairs
func newRequest(method, target string, body io.Reader, id *auth.Identity, params ...string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := req.Context()
	if id != nil {
		ctx = auth.WithIdentity(ctx, id)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for i := 0; i+1 < len(params); i += 2 {
			rctx.URLParams.Add(params[i], params[i+1])
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func identityPtr(id auth.Identity) *auth.Identity {
	return &id
}
