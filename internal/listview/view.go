// Package listview renders a searchable table over one record collection and
// drives its edit and delete actions.
package listview

import (
	"context"
	"fmt"
	"io"
	"scaffold-rental/internal/pkg/apperrors"
	"slices"
	"strings"
	"sync"
	"text/tabwriter"
)

type Column[T any] struct {
	Header string
	Render func(rec T) string
}

type Schema[T any] struct {
	Columns []Column[T]
	Key     func(rec T) string
}

func (s Schema[T]) Headers() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Header
	}
	return out
}

func (s Schema[T]) Cells(rec T) []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Render(rec)
	}
	return out
}

type Source[T any] interface {
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, key string) error
}

// Editor opens a record for editing. *form.Controller satisfies it.
type Editor[T any] interface {
	OpenEdit(rec T)
}

type View[T any] struct {
	mu      sync.Mutex
	source  Source[T]
	schema  Schema[T]
	editor  Editor[T]
	items   []T
	mounted bool
	loaded  bool

	pendingKey string
	pending    bool
}

func NewView[T any](source Source[T], schema Schema[T], editor Editor[T]) *View[T] {
	if source == nil {
		panic("list view source cannot be nil")
	}
	return &View[T]{
		source:  source,
		schema:  schema,
		editor:  editor,
		mounted: true,
	}
}

// Unmount detaches the view. Fetches that complete afterwards are dropped.
func (v *View[T]) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mounted = false
}

func (v *View[T]) Refresh(ctx context.Context) error {
	items, err := v.source.List(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return nil
	}
	v.items = items
	v.loaded = true
	return nil
}

func (v *View[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.items)
}

func (v *View[T]) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

func (v *View[T]) IsEmpty() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.items) == 0
}

// Filter keeps records with any rendered cell containing query, ignoring case.
func (v *View[T]) Filter(query string) []T {
	items := v.Items()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, rec := range items {
		for _, cell := range v.schema.Cells(rec) {
			if strings.Contains(strings.ToLower(cell), q) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

func (v *View[T]) Rows(query string) [][]string {
	filtered := v.Filter(query)
	rows := make([][]string, len(filtered))
	for i, rec := range filtered {
		rows[i] = v.schema.Cells(rec)
	}
	return rows
}

func (v *View[T]) find(key string) (T, bool) {
	for _, rec := range v.items {
		if v.schema.Key(rec) == key {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

func (v *View[T]) Edit(key string) error {
	v.mu.Lock()
	rec, ok := v.find(key)
	editor := v.editor
	v.mu.Unlock()

	if !ok {
		return apperrors.ErrNotFound
	}
	if editor == nil {
		return fmt.Errorf("%w: view has no editor", apperrors.ErrInvalidArgument)
	}
	editor.OpenEdit(rec)
	return nil
}

func (v *View[T]) RequestDelete(key string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pendingKey = key
	v.pending = true
}

func (v *View[T]) PendingDelete() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pendingKey, v.pending
}

func (v *View[T]) CancelDelete() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pendingKey = ""
	v.pending = false
}

// ConfirmDelete deletes the pending record and reloads the list. On failure
// the confirmation stays pending.
func (v *View[T]) ConfirmDelete(ctx context.Context) error {
	key, ok := v.PendingDelete()
	if !ok {
		return fmt.Errorf("%w: no delete pending", apperrors.ErrInvalidArgument)
	}

	if err := v.source.Delete(ctx, key); err != nil {
		return err
	}

	v.mu.Lock()
	if v.pending && v.pendingKey == key {
		v.pendingKey = ""
		v.pending = false
	}
	v.mu.Unlock()

	return v.Refresh(ctx)
}

// cellReplacer folds tabs and line breaks so one record stays on one row.
var cellReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func tableLine(cells []string) string {
	clean := make([]string, len(cells))
	for i, c := range cells {
		clean[i] = cellReplacer.Replace(c)
	}
	return strings.Join(clean, "\t")
}

// Render writes the filtered rows as an aligned text table.
func (v *View[T]) Render(w io.Writer, query string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, tableLine(v.schema.Headers()))
	for _, row := range v.Rows(query) {
		fmt.Fprintln(tw, tableLine(row))
	}
	return tw.Flush()
}
