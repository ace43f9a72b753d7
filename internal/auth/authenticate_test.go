package auth_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"textlens/internal/auth"
	"textlens/internal/models"

	huma "github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAuthTestServer registers one open and one admin-only operation behind
// the auth middlewares.
func newAuthTestServer(t *testing.T, adminKey string) (string, func()) {
	options := models.Options{AdminKey: adminKey}

	config := huma.DefaultConfig("auth test", "0.0.1")
	config.Components.SecuritySchemes = auth.Config
	router := http.NewServeMux()
	api := humago.New(router, config)
	api.UseMiddleware(auth.AdminKeyAuth(api, &options))
	api.UseMiddleware(auth.AuthTermination(api))

	type emptyIn struct{}
	type msgOut struct {
		Body struct {
			Message string `json:"message"`
		}
	}

	huma.Register(api, huma.Operation{
		OperationID: "openOp",
		Method:      http.MethodGet,
		Path:        "/open",
	}, func(ctx context.Context, input *emptyIn) (*msgOut, error) {
		out := &msgOut{}
		out.Body.Message = "open"
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "adminOp",
		Method:      http.MethodGet,
		Path:        "/admin",
		Security:    []map[string][]string{{"adminAuth": {}}},
	}, func(ctx context.Context, input *emptyIn) (*msgOut, error) {
		out := &msgOut{}
		out.Body.Message = "admin"
		return out, nil
	})

	server := httptest.NewServer(router)
	return server.URL, server.Close
}

func doGet(t *testing.T, url, bearer string) (*http.Response, string) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestAdminKeyAuth(t *testing.T) {
	url, cleanup := newAuthTestServer(t, "Password123")
	defer cleanup()

	tests := []struct {
		name   string
		path   string
		bearer string
		want   int
	}{
		{name: "open operation without key", path: "/open", bearer: "", want: http.StatusOK},
		{name: "open operation ignores bad key", path: "/open", bearer: "nonsense", want: http.StatusOK},
		{name: "admin operation with valid key", path: "/admin", bearer: "Password123", want: http.StatusOK},
		{name: "admin operation without key", path: "/admin", bearer: "", want: http.StatusUnauthorized},
		{name: "admin operation with wrong key", path: "/admin", bearer: "Password124", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doGet(t, url+tt.path, tt.bearer)
			assert.Equal(t, tt.want, resp.StatusCode, "body: %s", body)
			if tt.want == http.StatusUnauthorized {
				assert.Contains(t, body, "Authentication failed")
			}
		})
	}
}

// An empty admin key must never authenticate anyone, not even with an empty
// bearer token.
func TestAdminKeyAuthUnsetKey(t *testing.T) {
	url, cleanup := newAuthTestServer(t, "")
	defer cleanup()

	resp, _ := doGet(t, url+"/admin", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doGet(t, url+"/admin", "anything")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
