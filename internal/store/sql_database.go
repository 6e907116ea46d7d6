package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/migrations"
)

// DB wraps a *sql.DB together with the dialect-specific pieces the
// repositories need: the goose dialect for migrations, the squirrel
// placeholder format and an error classifier.
type DB struct {
	*sql.DB
	dialect            string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations for this database's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Dialect returns the goose dialect name of the connection.
func (db *DB) Dialect() string {
	return db.dialect
}

// unavailable reports whether err means the store could not serve the
// request at all, as opposed to a definite answer such as "no rows".
func (db *DB) unavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable
}
