package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/storefront-auth/internal/config"
	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/internal/utils"
	"github.com/MKhiriev/storefront-auth/models"
	"github.com/go-resty/resty/v2"
)

type httpAuthClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAuthClient constructs the HTTP implementation of [AuthClient].
// It normalises cfg.ServerURL and configures the underlying resty client with
// the resolved base URL and request timeout.
//
// Returns an error if cfg.ServerURL is empty or cannot be parsed as a URL.
func NewHTTPAuthClient(cfg config.ClientConfig, logger *logger.Logger) (AuthClient, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	return &httpAuthClient{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAuthClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAuthClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login POSTs the credentials to /api/auth/login. The token is taken from the
// response body and, when the body has none, from the Authorization header.
func (h *httpAuthClient) Login(ctx context.Context, username, password string) (models.LoginResponse, error) {
	var result models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{Username: username, Password: password}).
		SetResult(&result).
		Post("/api/auth/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	if result.Token == "" {
		result.Token = parseBearerToken(resp.Header().Get("Authorization"))
	}
	if result.Token == "" {
		return models.LoginResponse{}, fmt.Errorf("login response carries no token")
	}

	h.SetToken(result.Token)
	h.logger.Debug().Str("func", "httpAuthClient.Login").Int64("principal_id", result.User.ID).Msg("logged in")
	return result, nil
}

// Me GETs /api/auth/me with the stored token.
func (h *httpAuthClient) Me(ctx context.Context) (models.PrincipalView, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.PrincipalView{}, err
	}

	var view models.PrincipalView
	resp, err := req.SetResult(&view).Get("/api/auth/me")
	if err != nil {
		return models.PrincipalView{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PrincipalView{}, err
	}

	return view, nil
}

// Logout POSTs to /api/auth/logout and clears the stored token once the
// server has accepted the request.
func (h *httpAuthClient) Logout(ctx context.Context) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpAuthClient) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpAuthClient) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}

func parseBearerToken(value string) string {
	value = strings.TrimSpace(value)
	if len(value) > len("Bearer ") && strings.EqualFold(value[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(value[len("Bearer "):])
	}
	return ""
}
