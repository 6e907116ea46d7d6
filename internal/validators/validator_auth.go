package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode"

	"github.com/MKhiriev/storefront-auth/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldEmail    = "email"
	FieldRole     = "role"
	FieldID       = "id"
)

const (
	// MaxUsernameLength matches the principals.username column.
	MaxUsernameLength = 64

	// MaxPasswordBytes is the longest input bcrypt takes into account.
	MaxPasswordBytes = 72
)

var allowedRoles = []models.Role{
	models.RoleAdmin,
	models.RoleCustomer,
}

// AuthValidator validates login and provisioning requests.
//
// Supported types:
//   - models.LoginRequest / *models.LoginRequest
//   - models.NewPrincipal / *models.NewPrincipal
//   - models.PrincipalView / *models.PrincipalView (id only)
type AuthValidator struct {
}

func NewAuthValidator() Validator {
	return &AuthValidator{}
}

func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.NewPrincipal:
		return v.validateNewPrincipal(ctx, value, fields...)
	case *models.NewPrincipal:
		return v.validateNewPrincipal(ctx, *value, fields...)

	case models.PrincipalView:
		return v.validatePrincipalID(value.ID, fields...)
	case *models.PrincipalView:
		return v.validatePrincipalID(value.ID, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateLoginRequest(ctx context.Context, req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := validateUsername(req.Username); err != nil {
				return err
			}
		case FieldPassword:
			if err := validatePassword(req.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateNewPrincipal(ctx context.Context, p models.NewPrincipal, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := validateUsername(p.Username); err != nil {
				return err
			}
		case FieldPassword:
			if err := validatePassword(p.Password); err != nil {
				return err
			}
		case FieldEmail:
			addr, err := mail.ParseAddress(p.Email)
			// reject display-name forms like "Jane <jane@example.com>"
			if err != nil || addr.Address != p.Email {
				return ErrInvalidEmail
			}
		case FieldRole:
			// empty role defaults to customer in the service layer
			if p.Role != "" && !isAllowedRole(p.Role) {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validatePrincipalID(id int64, fields ...string) error {
	for _, f := range fields {
		if f != FieldID {
			return ErrUnknownField
		}
	}
	if id <= 0 {
		return ErrInvalidPrincipal
	}
	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if len(username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	if strings.IndexFunc(username, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0 {
		return ErrInvalidUsername
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

func isAllowedRole(role models.Role) bool {
	for _, r := range allowedRoles {
		if role == r {
			return true
		}
	}
	return false
}
