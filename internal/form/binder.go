package form

import (
	"math"
	"strconv"
	"strings"
)

// Binder applies a raw text edit to one field of a draft.
type Binder[T any] struct {
	// Numeric binders check the raw text with validation.PositiveNumber
	// and keep the message when it fails.
	Numeric bool
	Set     func(rec *T, value string) error
}

func Text[T any](field func(rec *T) *string) Binder[T] {
	return Binder[T]{
		Set: func(rec *T, value string) error {
			*field(rec) = value
			return nil
		},
	}
}

// Int binds a whole-number field. Unparseable or negative input stores 0.
func Int[T any](field func(rec *T) *int64) Binder[T] {
	return Binder[T]{
		Numeric: true,
		Set: func(rec *T, value string) error {
			*field(rec) = clampInt(value)
			return nil
		},
	}
}

func Parse[T any](set func(rec *T, value string) error) Binder[T] {
	return Binder[T]{Set: set}
}

// List binds a comma separated list. Blank entries and repeats are dropped.
func List[T any](field func(rec *T) *[]string) Binder[T] {
	return Binder[T]{
		Set: func(rec *T, value string) error {
			*field(rec) = SplitList(value)
			return nil
		},
	}
}

func SplitList(value string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}

func clampInt(value string) int64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Trunc(f))
}
