package record

import (
	"context"
	"scaffold-rental/internal/validation"

	"github.com/stretchr/testify/mock"
)

// Widget is a minimal entity for exercising the generic service.
type Widget struct {
	Code string
	Name string
}

func (w Widget) Key() string { return w.Code }

func (w Widget) KeyField() string { return "code" }

func (w Widget) Validate() validation.FieldErrors {
	errs := validation.FieldErrors{}
	validation.Check(errs, "code", validation.Required(w.Code, "Kode tidak boleh kosong"))
	validation.Check(errs, "name", validation.Required(w.Name, "Nama tidak boleh kosong"))
	return errs
}

type MockRepository[T Entity] struct {
	mock.Mock
}

func (_m *MockRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	ret := _m.Called(ctx)

	var r0 []T
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]T)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository[T]) FindByKey(ctx context.Context, key string) (T, error) {
	ret := _m.Called(ctx, key)

	var r0 T
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(T)
	}

	return r0, ret.Error(1)
}

func (_m *MockRepository[T]) Insert(ctx context.Context, rec T) error {
	ret := _m.Called(ctx, rec)
	return ret.Error(0)
}

func (_m *MockRepository[T]) Update(ctx context.Context, key string, rec T) error {
	ret := _m.Called(ctx, key, rec)
	return ret.Error(0)
}

func (_m *MockRepository[T]) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

var _ Repository[Widget] = (*MockRepository[Widget])(nil)

type MockChecker[T Entity] struct {
	mock.Mock
}

func (_m *MockChecker[T]) Check(ctx context.Context, rec T) error {
	ret := _m.Called(ctx, rec)
	return ret.Error(0)
}
