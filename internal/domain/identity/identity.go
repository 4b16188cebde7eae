package identity

import (
	"context"
	"fmt"
	"scaffold-rental/internal/pkg/apperrors"
	"scaffold-rental/internal/validation"
)

type Role int

const (
	Guest Role = iota
	User
	Admin
	roleCount
)

var roleNames = [...]string{
	Guest: "guest",
	User:  "user",
	Admin: "admin",
}

var _ = [1]struct{}{}[len(roleNames)-int(roleCount)]

func (r Role) Valid() bool { return r >= 0 && r < roleCount }

func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// CanWrite reports whether the role may create, change or delete records.
func (r Role) CanWrite() bool { return r == User || r == Admin }

func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), nil
		}
	}
	return Guest, fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidArgument, s)
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: role %d", apperrors.ErrInvalidArgument, int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	v, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

const msgProfileIncomplete = "Mohon lengkapi semua field"

type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (p Profile) Validate() validation.FieldErrors {
	errs := validation.FieldErrors{}
	validation.Check(errs, "name", validation.Required(p.Name, msgProfileIncomplete))
	if validation.Check(errs, "email", validation.Required(p.Email, msgProfileIncomplete)) {
		validation.Check(errs, "email", validation.Email(p.Email))
	}
	return errs
}

type Repository interface {
	FindProfile(ctx context.Context, principal string) (Profile, error)

	// SaveProfile inserts or replaces the profile, role included.
	SaveProfile(ctx context.Context, principal string, profile Profile) error

	// SetRole changes only the role, creating an empty profile when needed.
	SetRole(ctx context.Context, principal string, role Role) error
}
