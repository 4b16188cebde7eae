// Package record defines the contract shared by every managed collection
// (customers, vendors, inventory, rental orders) and a generic service that
// applies validation, reference checks and lifecycle events on top of a
// repository.
package record

import (
	"context"
	"scaffold-rental/internal/validation"
)

// Entity is a record with a stable natural key.
type Entity interface {
	Key() string
	Validate() validation.FieldErrors
}

type Repository[T Entity] interface {
	FindAll(ctx context.Context) ([]T, error)

	FindByKey(ctx context.Context, key string) (T, error)

	Insert(ctx context.Context, rec T) error

	Update(ctx context.Context, key string, rec T) error

	Delete(ctx context.Context, key string) error
}

// Checker runs cross-collection checks before a record is written. A failing
// check returns a validation error.
type Checker[T Entity] interface {
	Check(ctx context.Context, rec T) error
}
