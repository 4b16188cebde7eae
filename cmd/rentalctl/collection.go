package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"scaffold-rental/internal/domain/record"
	"scaffold-rental/internal/form"
	"scaffold-rental/internal/listview"
	"scaffold-rental/internal/pkg/apperrors"
	"scaffold-rental/internal/storeclient"
	"slices"
	"strings"
)

const (
	msgEmptyCollection = "Belum ada data"
	msgDeleteCancelled = "Dibatalkan"
)

type commands interface {
	list(ctx context.Context, w io.Writer, query string) error
	add(ctx context.Context, w io.Writer, assignments []string) error
	edit(ctx context.Context, w io.Writer, key string, assignments []string) error
	remove(ctx context.Context, w io.Writer, key string, confirm func(key string) bool) error
}

// collection drives one record type through the store client, the list view
// and the form controller.
type collection[T record.Entity] struct {
	client *storeclient.Client[T]
	form   form.Schema[T]
	table  listview.Schema[T]
}

func newCollection[T record.Entity](s *storeclient.Session, name string, fs form.Schema[T], ls listview.Schema[T]) *collection[T] {
	return &collection[T]{
		client: storeclient.NewClient[T](s, name, nil),
		form:   fs,
		table:  ls,
	}
}

func (c *collection[T]) view(ctx context.Context, editor listview.Editor[T]) (*listview.View[T], error) {
	v := listview.NewView[T](c.client, c.table, editor)
	if err := v.Refresh(ctx); err != nil {
		return nil, err
	}
	return v, nil
}

func (c *collection[T]) controller(w io.Writer) *form.Controller[T] {
	return form.NewController[T](c.client, c.form, form.Callbacks[T]{
		OnComplete: func(saved T) { fmt.Fprintf(w, "Tersimpan: %s\n", saved.Key()) },
	})
}

func (c *collection[T]) list(ctx context.Context, w io.Writer, query string) error {
	v, err := c.view(ctx, nil)
	if err != nil {
		return err
	}
	if v.IsEmpty() {
		_, err := fmt.Fprintln(w, msgEmptyCollection)
		return err
	}
	return v.Render(w, query)
}

func (c *collection[T]) add(ctx context.Context, w io.Writer, assignments []string) error {
	ctrl := c.controller(w)
	ctrl.OpenCreate()
	return submit(ctx, w, ctrl, assignments)
}

func (c *collection[T]) edit(ctx context.Context, w io.Writer, key string, assignments []string) error {
	ctrl := c.controller(w)
	v, err := c.view(ctx, ctrl)
	if err != nil {
		return err
	}
	if err := v.Edit(key); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return submit(ctx, w, ctrl, assignments)
}

// remove asks confirm before deleting. A declined confirmation leaves the
// record in place.
func (c *collection[T]) remove(ctx context.Context, w io.Writer, key string, confirm func(key string) bool) error {
	v, err := c.view(ctx, nil)
	if err != nil {
		return err
	}
	v.RequestDelete(key)
	if !confirm(key) {
		v.CancelDelete()
		_, err := fmt.Fprintln(w, msgDeleteCancelled)
		return err
	}
	if err := v.ConfirmDelete(ctx); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	_, err = fmt.Fprintf(w, "Terhapus: %s\n", key)
	return err
}

func submit[T record.Entity](ctx context.Context, w io.Writer, ctrl *form.Controller[T], assignments []string) error {
	defer ctrl.Cancel()

	for _, a := range assignments {
		field, value, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("%w: expected field=value, got %q", apperrors.ErrInvalidArgument, a)
		}
		if err := ctrl.Set(field, value); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
	}

	if err := ctrl.Submit(ctx); err != nil {
		errs := ctrl.Errors()
		for _, field := range slices.Sorted(maps.Keys(errs)) {
			fmt.Fprintf(w, "  %s: %s\n", field, errs[field])
		}
		return err
	}
	return nil
}
