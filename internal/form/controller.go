// Package form implements the create/edit dialog shared by every record type:
// a draft, per-field messages, and a single submission to the store.
package form

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"scaffold-rental/internal/domain/record"
	"scaffold-rental/internal/pkg/apperrors"
	"scaffold-rental/internal/validation"
	"sync"
)

type State int

const (
	Idle State = iota
	Editing
	ShowingErrors
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Editing:
		return "Editing"
	case ShowingErrors:
		return "ShowingErrors"
	case Submitting:
		return "Submitting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Mode int

const (
	Create Mode = iota
	Edit
)

func (m Mode) String() string {
	if m == Edit {
		return "Edit"
	}
	return "Create"
}

var (
	ErrClosed     = errors.New("form is not open")
	ErrSubmitting = errors.New("submission already in progress")
)

// Store is the subset of the record store a form writes through.
type Store[T record.Entity] interface {
	Add(ctx context.Context, rec T) error
	Update(ctx context.Context, key string, rec T) error
}

type Schema[T record.Entity] struct {
	// New returns a draft with the defaults of a fresh record.
	New      func() T
	KeyField string
	Fields   map[string]Binder[T]
}

type Callbacks[T record.Entity] struct {
	OnComplete func(saved T)
	OnClose    func()
}

type Controller[T record.Entity] struct {
	mu     sync.Mutex
	store  Store[T]
	schema Schema[T]
	cb     Callbacks[T]

	state       State
	mode        Mode
	draft       T
	originalKey string
	errs        validation.FieldErrors
	inputErrs   validation.FieldErrors
	lastErr     error
	// generation changes on every open/close so a late submission result
	// never lands on a newer session.
	generation uint64
}

func NewController[T record.Entity](store Store[T], schema Schema[T], cb Callbacks[T]) *Controller[T] {
	if store == nil {
		panic("form store cannot be nil")
	}
	if schema.New == nil {
		panic("form schema must provide New")
	}
	return &Controller[T]{
		store:  store,
		schema: schema,
		cb:     cb,
	}
}

func (c *Controller[T]) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open(Create, c.schema.New(), "")
}

func (c *Controller[T]) OpenEdit(rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open(Edit, rec, rec.Key())
}

func (c *Controller[T]) open(mode Mode, draft T, key string) {
	c.generation++
	c.mode = mode
	c.draft = draft
	c.originalKey = key
	c.errs = validation.FieldErrors{}
	c.inputErrs = validation.FieldErrors{}
	c.lastErr = nil
	c.state = Editing
}

func (c *Controller[T]) Set(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Idle:
		return ErrClosed
	case Submitting:
		return ErrSubmitting
	}

	binder, ok := c.schema.Fields[field]
	if !ok {
		return fmt.Errorf("%w: unknown field %q", apperrors.ErrInvalidArgument, field)
	}
	if c.mode == Edit && field == c.schema.KeyField {
		return fmt.Errorf("%w: %s", apperrors.ErrImmutableField, field)
	}

	if err := binder.Set(&c.draft, value); err != nil {
		c.errs[field] = err.Error()
		c.inputErrs[field] = err.Error()
		c.state = ShowingErrors
		return err
	}

	delete(c.errs, field)
	delete(c.inputErrs, field)
	if binder.Numeric {
		if r := validation.PositiveNumber(value); !r.Valid {
			c.errs[field] = r.Message
			c.inputErrs[field] = r.Message
		}
	}

	if len(c.errs) == 0 {
		c.state = Editing
	}
	return nil
}

func (c *Controller[T]) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case Idle:
		c.mu.Unlock()
		return ErrClosed
	case Submitting:
		c.mu.Unlock()
		return ErrSubmitting
	}

	errs := c.draft.Validate()
	if errs == nil {
		errs = validation.FieldErrors{}
	}
	for f, msg := range c.inputErrs {
		if _, exists := errs[f]; !exists {
			errs[f] = msg
		}
	}
	if len(errs) > 0 {
		c.errs = errs
		c.state = ShowingErrors
		c.mu.Unlock()
		return errs.Err()
	}

	c.state = Submitting
	c.lastErr = nil
	draft, mode, key, gen := c.draft, c.mode, c.originalKey, c.generation
	c.mu.Unlock()

	var err error
	if mode == Create {
		err = c.store.Add(ctx, draft)
	} else {
		err = c.store.Update(ctx, key, draft)
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return err
	}
	if err != nil {
		c.state = Editing
		c.lastErr = err
		if fields, ok := apperrors.Fields(err); ok {
			maps.Copy(c.errs, fields)
		}
		c.mu.Unlock()
		return err
	}
	c.close()
	onComplete, onClose := c.cb.OnComplete, c.cb.OnClose
	c.mu.Unlock()

	if onComplete != nil {
		onComplete(draft)
	}
	if onClose != nil {
		onClose()
	}
	return nil
}

func (c *Controller[T]) Cancel() {
	c.mu.Lock()
	if c.state == Idle {
		c.mu.Unlock()
		return
	}
	c.close()
	onClose := c.cb.OnClose
	c.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}

func (c *Controller[T]) close() {
	var zero T
	c.generation++
	c.state = Idle
	c.draft = zero
	c.originalKey = ""
	c.errs = nil
	c.inputErrs = nil
	c.lastErr = nil
}

func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller[T]) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller[T]) Draft() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Errors returns a copy of the messages currently shown next to fields.
func (c *Controller[T]) Errors() validation.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.errs)
}

func (c *Controller[T]) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
