// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/storefront-auth/internal/config"
	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, serverURL string) *httpAuthClient {
	t.Helper()
	c, err := NewHTTPAuthClient(config.ClientConfig{ServerURL: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return c.(*httpAuthClient)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

var alice = models.PrincipalView{ID: 7, Username: "alice", Email: "alice@example.com", Role: models.RoleCustomer}

// ── Login ───────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.LoginRequest{Username: "alice", Password: "secret"}, req)

		w.Header().Set("Authorization", "Bearer header.token.sig")
		writeJSON(t, w, http.StatusOK, models.LoginResponse{Token: "body.token.sig", User: alice})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.Login(context.Background(), "alice", "secret")

	require.NoError(t, err)
	assert.Equal(t, alice, got.User)
	assert.Equal(t, "body.token.sig", c.Token())
}

func TestLogin_TokenFromHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "bearer header.token.sig")
		writeJSON(t, w, http.StatusOK, models.LoginResponse{User: alice})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background(), "alice", "secret")

	require.NoError(t, err)
	assert.Equal(t, "header.token.sig", c.Token())
}

func TestLogin_NoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.LoginResponse{User: alice})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background(), "alice", "secret")

	require.Error(t, err)
	assert.Empty(t, c.Token())
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"invalid credentials", http.StatusUnauthorized, ErrUnauthorized},
		{"internal", http.StatusInternalServerError, ErrInternalServerError},
		{"unavailable", http.StatusServiceUnavailable, ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, models.ErrorResponse{Error: "nope"})
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			_, err := c.Login(context.Background(), "alice", "wrong")

			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "nope")
			assert.Empty(t, c.Token())
		})
	}
}

// ── Me ──────────────────────────────────────────────────────────────────────

func TestMe_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, alice)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken(" tok ")

	got, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, alice, got)
}

func TestMe_NoToken(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestMe_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, models.ErrorResponse{Error: "forbidden"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("tok")

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, ErrForbidden)
}

// ── Logout ──────────────────────────────────────────────────────────────────

func TestLogout_ClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("tok")

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.Token())
}

func TestLogout_KeepsTokenOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("tok")

	err := c.Logout(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 502")
	assert.Equal(t, "tok", c.Token())
}

// ── Version ─────────────────────────────────────────────────────────────────

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("1.4.2\n"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.4.2", got)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNewHTTPAuthClient_InvalidURL(t *testing.T) {
	_, err := NewHTTPAuthClient(config.ClientConfig{ServerURL: "  "}, logger.Nop())
	assert.Error(t, err)
}
