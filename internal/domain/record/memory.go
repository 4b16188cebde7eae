package record

import (
	"context"
	"scaffold-rental/internal/pkg/apperrors"
	"slices"
	"sync"
)

// MemoryRepository keeps records in insertion order. It backs the server when
// no database is configured and is handy in tests.
type MemoryRepository[T Entity] struct {
	mu   sync.RWMutex
	recs []T
}

func NewMemoryRepository[T Entity](seed ...T) *MemoryRepository[T] {
	return &MemoryRepository[T]{recs: slices.Clone(seed)}
}

func (r *MemoryRepository[T]) index(key string) int {
	return slices.IndexFunc(r.recs, func(rec T) bool { return rec.Key() == key })
}

func (r *MemoryRepository[T]) FindAll(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := slices.Clone(r.recs)
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r *MemoryRepository[T]) FindByKey(_ context.Context, key string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(key); i >= 0 {
		return r.recs[i], nil
	}
	var zero T
	return zero, apperrors.ErrNotFound
}

func (r *MemoryRepository[T]) Insert(_ context.Context, rec T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index(rec.Key()) >= 0 {
		return apperrors.ErrAlreadyExists
	}
	r.recs = append(r.recs, rec)
	return nil
}

func (r *MemoryRepository[T]) Update(_ context.Context, key string, rec T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(key)
	if i < 0 {
		return apperrors.ErrNotFound
	}
	r.recs[i] = rec
	return nil
}

func (r *MemoryRepository[T]) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(key)
	if i < 0 {
		return apperrors.ErrNotFound
	}
	r.recs = slices.Delete(r.recs, i, i+1)
	return nil
}
