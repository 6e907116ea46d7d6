package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/storefront-auth/internal/config"
	"github.com/MKhiriev/storefront-auth/internal/crypto"
	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/internal/store"
	"github.com/MKhiriev/storefront-auth/models"
)

type principalService struct {
	principals store.PrincipalRepository
	passwords  crypto.PasswordVerifier

	logger *logger.Logger
}

func NewPrincipalService(principals store.PrincipalRepository, passwords crypto.PasswordVerifier, logger *logger.Logger) PrincipalService {
	return &principalService{
		principals: principals,
		passwords:  passwords,
		logger:     logger,
	}
}

func (p *principalService) GetPrincipal(ctx context.Context, id int64) (models.PrincipalView, error) {
	if id <= 0 {
		return models.PrincipalView{}, ErrInvalidDataProvided
	}

	principal, err := p.principals.FindPrincipalByID(ctx, id)
	if errors.Is(err, store.ErrPrincipalNotFound) {
		return models.PrincipalView{}, ErrPrincipalNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "principalService.GetPrincipal").Int64("id", id).Msg("principal lookup failed")
		return models.PrincipalView{}, storeError("principal lookup failed", err)
	}

	return principal.View(), nil
}

// CreatePrincipal hashes the password and stores the principal. An empty
// role defaults to customer.
func (p *principalService) CreatePrincipal(ctx context.Context, np models.NewPrincipal) (models.PrincipalView, error) {
	log := logger.FromContext(ctx)

	np.Username = strings.TrimSpace(np.Username)
	np.Email = strings.TrimSpace(np.Email)
	if np.Username == "" || np.Email == "" || np.Password == "" {
		return models.PrincipalView{}, ErrInvalidDataProvided
	}

	switch np.Role {
	case "":
		np.Role = models.RoleCustomer
	case models.RoleAdmin, models.RoleCustomer:
	default:
		return models.PrincipalView{}, fmt.Errorf("%w: %q", ErrInvalidRole, np.Role)
	}

	hash, err := p.passwords.Hash(np.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return models.PrincipalView{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		log.Err(err).Str("func", "principalService.CreatePrincipal").Msg("error hashing password")
		return models.PrincipalView{}, fmt.Errorf("error hashing password: %w", err)
	}

	created, err := p.principals.CreatePrincipal(ctx, models.Principal{
		Username:     np.Username,
		Email:        np.Email,
		PasswordHash: hash,
		Role:         np.Role,
	})
	if errors.Is(err, store.ErrPrincipalExists) {
		return models.PrincipalView{}, ErrPrincipalExists
	}
	if err != nil {
		log.Err(err).Str("func", "principalService.CreatePrincipal").Str("username", np.Username).Msg("principal creation failed")
		return models.PrincipalView{}, storeError("principal creation failed", err)
	}

	log.Info().Int64("id", created.ID).Str("username", created.Username).Str("role", created.Role.String()).Msg("principal created")
	return created.View(), nil
}

func (p *principalService) BootstrapAdmin(ctx context.Context, admin config.Bootstrap) error {
	if admin.Username == "" {
		return nil
	}

	_, err := p.principals.FindPrincipalByUsername(ctx, admin.Username)
	if err == nil {
		p.logger.Debug().Str("username", admin.Username).Msg("bootstrap admin already exists")
		return nil
	}
	if !errors.Is(err, store.ErrPrincipalNotFound) {
		return storeError("bootstrap admin lookup failed", err)
	}

	_, err = p.CreatePrincipal(ctx, models.NewPrincipal{
		Username: admin.Username,
		Email:    admin.Email,
		Password: admin.Password,
		Role:     models.RoleAdmin,
	})
	if errors.Is(err, ErrPrincipalExists) {
		// created concurrently, or the email belongs to another principal
		p.logger.Warn().Str("username", admin.Username).Msg("bootstrap admin conflicts with an existing principal")
		return nil
	}
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	return nil
}
