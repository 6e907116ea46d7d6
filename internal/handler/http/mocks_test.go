package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/storefront-auth/internal/config"
	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/internal/service"
	"github.com/MKhiriev/storefront-auth/internal/token"
	"github.com/MKhiriev/storefront-auth/models"
)

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case; unset fields panic.
type mockAuthService struct {
	loginFn       func(ctx context.Context, req models.LoginRequest) (models.Principal, error)
	createTokenFn func(ctx context.Context, p models.Principal) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string, roles ...models.Role) (models.Claims, error)
	revokeFn      func(ctx context.Context, claims models.Claims) error
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.Principal, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) CreateToken(ctx context.Context, p models.Principal) (models.Token, error) {
	return m.createTokenFn(ctx, p)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string, roles ...models.Role) (models.Claims, error) {
	return m.parseTokenFn(ctx, tokenString, roles...)
}

// Authorize uses the real role check so requireRole tests exercise it.
func (m *mockAuthService) Authorize(_ context.Context, claims models.Claims, roles ...models.Role) error {
	return token.CheckRole(claims, roles...)
}

func (m *mockAuthService) Revoke(ctx context.Context, claims models.Claims) error {
	return m.revokeFn(ctx, claims)
}

type mockPrincipalService struct {
	getPrincipalFn    func(ctx context.Context, id int64) (models.PrincipalView, error)
	createPrincipalFn func(ctx context.Context, p models.NewPrincipal) (models.PrincipalView, error)
}

func (m *mockPrincipalService) GetPrincipal(ctx context.Context, id int64) (models.PrincipalView, error) {
	return m.getPrincipalFn(ctx, id)
}

func (m *mockPrincipalService) CreatePrincipal(ctx context.Context, p models.NewPrincipal) (models.PrincipalView, error) {
	return m.createPrincipalFn(ctx, p)
}

func (m *mockPrincipalService) BootstrapAdmin(context.Context, config.Bootstrap) error {
	return nil
}

type mockAppInfoService struct {
	version string
	build   models.AppBuildInfo
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) GetBuildInfo(_ context.Context) models.AppBuildInfo {
	return m.build
}

// newTestHandler builds a Handler around the given services with a nop
// logger and default server settings.
func newTestHandler(svcs *service.Services) *Handler {
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test"}
	}
	return NewHandler(svcs, config.Server{}, logger.Nop())
}

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	return r.WithContext(nop.Logger.WithContext(r.Context()))
}

var (
	adminClaims = models.Claims{
		ID: 1, Username: "admin", Email: "admin@example.com", Role: models.RoleAdmin,
		TokenID: "jti-admin", Shape: models.TokenShapeSigned,
	}
	customerClaims = models.Claims{
		ID: 7, Username: "jane", Email: "jane@example.com", Role: models.RoleCustomer,
		TokenID: "jti-jane", Shape: models.TokenShapeSigned,
	}
)

// tokenTable resolves fixed token strings to claims.
func tokenTable(ctx context.Context, tokenString string, roles ...models.Role) (models.Claims, error) {
	switch tokenString {
	case "admin-token":
		return adminClaims, nil
	case "customer-token":
		return customerClaims, nil
	case "expired-token":
		return models.Claims{}, token.ErrExpired
	default:
		return models.Claims{}, token.ErrInvalidToken
	}
}
