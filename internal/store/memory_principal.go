package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/models"
)

// memoryPrincipalRepository keeps principals in process memory. It backs the
// "memory" DSN and serves as a fixture in tests.
type memoryPrincipalRepository struct {
	mu     sync.RWMutex
	byID   map[int64]models.Principal
	nextID int64
	now    func() time.Time
}

// NewMemoryPrincipalRepository returns an in-memory [PrincipalRepository]
// seeded with principals. Seeds keep their IDs when set; zero IDs are
// assigned.
func NewMemoryPrincipalRepository(logger *logger.Logger, principals ...models.Principal) PrincipalRepository {
	logger.Debug().Int("seeded", len(principals)).Msg("creating in-memory principal repository")

	r := &memoryPrincipalRepository{
		byID: make(map[int64]models.Principal, len(principals)),
		now:  time.Now,
	}
	for _, p := range principals {
		if p.ID == 0 {
			r.nextID++
			p.ID = r.nextID
		} else if p.ID > r.nextID {
			r.nextID = p.ID
		}
		r.byID[p.ID] = p
	}
	return r
}

// FindPrincipalByUsername implements [PrincipalRepository].
func (r *memoryPrincipalRepository) FindPrincipalByUsername(ctx context.Context, username string) (models.Principal, error) {
	if err := ctx.Err(); err != nil {
		return models.Principal{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byID {
		if p.Username == username {
			return p, nil
		}
	}
	return models.Principal{}, ErrPrincipalNotFound
}

// FindPrincipalByID implements [PrincipalRepository].
func (r *memoryPrincipalRepository) FindPrincipalByID(ctx context.Context, id int64) (models.Principal, error) {
	if err := ctx.Err(); err != nil {
		return models.Principal{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return models.Principal{}, ErrPrincipalNotFound
	}
	return p, nil
}

// CreatePrincipal implements [PrincipalRepository].
func (r *memoryPrincipalRepository) CreatePrincipal(ctx context.Context, p models.Principal) (models.Principal, error) {
	if err := ctx.Err(); err != nil {
		return models.Principal{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Username == p.Username || existing.Email == p.Email {
			return models.Principal{}, ErrPrincipalExists
		}
	}

	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = r.now().UTC()
	r.byID[p.ID] = p

	return p, nil
}
