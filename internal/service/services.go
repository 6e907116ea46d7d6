package service

import (
	"fmt"

	"github.com/MKhiriev/storefront-auth/internal/config"
	"github.com/MKhiriev/storefront-auth/internal/crypto"
	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/internal/store"
	"github.com/MKhiriev/storefront-auth/internal/token"
	"github.com/MKhiriev/storefront-auth/models"
)

type Services struct {
	AuthService      AuthService
	PrincipalService PrincipalService
	AppInfoService   AppInfoService
}

// NewServices builds the token codec, issuer and validator from cfg and wires
// them with the storages into the service layer.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	passwords, err := crypto.NewPasswordVerifier(cfg.App.PasswordCost)
	if err != nil {
		return nil, fmt.Errorf("error creating password verifier: %w", err)
	}

	codec, err := token.NewCodec(cfg.App.TokenSignKey, cfg.App.TokenIssuer, cfg.App.TokenAudience)
	if err != nil {
		return nil, fmt.Errorf("error creating token codec: %w", err)
	}

	legacyUntil, err := cfg.App.LegacyDeadline()
	if err != nil {
		return nil, fmt.Errorf("error parsing legacy token deadline: %w", err)
	}

	validatorOpts := []token.Option{token.WithLegacyUntil(legacyUntil)}
	if storages.DenyList != nil {
		validatorOpts = append(validatorOpts, token.WithRevocationChecker(storages.DenyList))
	}

	appInfo, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService: NewAuthService(
			storages.PrincipalRepository,
			storages.DenyList,
			passwords,
			token.NewIssuer(codec),
			token.NewValidator(codec, validatorOpts...),
			AuthSettings{TokenTTL: cfg.App.TokenDuration, LoginTimeout: cfg.Server.LoginTimeout},
			logger,
		),
		PrincipalService: NewPrincipalService(storages.PrincipalRepository, passwords, logger),
		AppInfoService:   appInfo,
	}, nil
}
