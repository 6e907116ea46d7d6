package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/storefront-auth/models"
)

// principalColumns lists the columns scanned by scanPrincipal, in order.
var principalColumns = []string{
	"id",
	"username",
	"email",
	"password_hash",
	"role",
	"created_at",
}

// buildFindPrincipalQuery selects one principal matching where.
func buildFindPrincipalQuery(ph sq.PlaceholderFormat, where sq.Eq) (string, []any, error) {
	return sq.
		Select(principalColumns...).
		From(models.Principal{}.TableName()).
		Where(where).
		Limit(1).
		PlaceholderFormat(ph).
		ToSql()
}

// buildCreatePrincipalQuery inserts p and returns the generated id.
// created_at is bound from p so both dialects store the same instant.
func buildCreatePrincipalQuery(ph sq.PlaceholderFormat, p models.Principal) (string, []any, error) {
	return sq.
		Insert(models.Principal{}.TableName()).
		Columns("username", "email", "password_hash", "role", "created_at").
		Values(p.Username, p.Email, p.PasswordHash, string(p.Role), p.CreatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(ph).
		ToSql()
}
