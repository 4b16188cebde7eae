package identity

import (
	"context"
	"scaffold-rental/internal/pkg/apperrors"
	"sync"
)

// MemoryRepository keeps profiles in a map. It backs the server when no
// database is configured.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[string]Profile)}
}

func (r *MemoryRepository) FindProfile(_ context.Context, principal string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[principal]
	if !ok {
		return Profile{}, apperrors.ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepository) SaveProfile(_ context.Context, principal string, profile Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[principal] = profile
	return nil
}

func (r *MemoryRepository) SetRole(_ context.Context, principal string, role Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.profiles[principal]
	p.Role = role
	r.profiles[principal] = p
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
