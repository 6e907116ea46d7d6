package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrPrincipalNotFound is returned when no principal matches the lookup.
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrPrincipalExists is returned when a principal with the same username
	// or email is already stored.
	ErrPrincipalExists = errors.New("principal already exists")

	// ErrStoreUnavailable is returned when the backing store cannot be
	// reached in time: connection failures, deadlines, cancellations and
	// other errors classified as retryable.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrUnsupportedDSN is returned by NewStorages for a DSN whose scheme
	// matches no backend.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails for a
	// reason that is neither "not found" nor "unavailable".
	ErrExecutingQuery = errors.New("error executing sql query")
)
