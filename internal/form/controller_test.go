package form

import (
	"context"
	"errors"
	"scaffold-rental/internal/pkg/apperrors"
	"scaffold-rental/internal/validation"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type part struct {
	Code  string
	Name  string
	Stock int64
	Tags  []string
}

func (p part) Key() string { return p.Code }

func (p part) Validate() validation.FieldErrors {
	errs := validation.FieldErrors{}
	validation.Check(errs, "code", validation.Required(p.Code, "Kode tidak boleh kosong"))
	validation.Check(errs, "name", validation.Required(p.Name, "Nama tidak boleh kosong"))
	validation.Check(errs, "stock", validation.NonNegative(p.Stock))
	return errs
}

var partSchema = Schema[part]{
	New:      func() part { return part{Stock: 1} },
	KeyField: "code",
	Fields: map[string]Binder[part]{
		"code":  Text(func(p *part) *string { return &p.Code }),
		"name":  Text(func(p *part) *string { return &p.Name }),
		"stock": Int(func(p *part) *int64 { return &p.Stock }),
		"tags":  List(func(p *part) *[]string { return &p.Tags }),
	},
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Add(ctx context.Context, rec part) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockStore) Update(ctx context.Context, key string, rec part) error {
	return m.Called(ctx, key, rec).Error(0)
}

func setupController() (*mockStore, *Controller[part], *[]part, *int) {
	store := new(mockStore)
	var completed []part
	closed := 0
	c := NewController[part](store, partSchema, Callbacks[part]{
		OnComplete: func(saved part) { completed = append(completed, saved) },
		OnClose:    func() { closed++ },
	})
	return store, c, &completed, &closed
}

func TestController_OpenCreate(t *testing.T) {
	_, c, _, _ := setupController()
	assert.Equal(t, Idle, c.State())

	c.OpenCreate()

	assert.Equal(t, Editing, c.State())
	assert.Equal(t, Create, c.Mode())
	assert.Equal(t, part{Stock: 1}, c.Draft())
	assert.Empty(t, c.Errors())
}

func TestController_SubmitCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success calls OnComplete and resets", func(t *testing.T) {
		store, c, completed, closed := setupController()
		c.OpenCreate()
		require.NoError(t, c.Set("code", "P-1"))
		require.NoError(t, c.Set("name", "Pipa 6m"))
		require.NoError(t, c.Set("stock", "12"))
		store.On("Add", ctx, part{Code: "P-1", Name: "Pipa 6m", Stock: 12}).Return(nil).Once()

		require.NoError(t, c.Submit(ctx))

		assert.Equal(t, Idle, c.State())
		assert.Equal(t, []part{{Code: "P-1", Name: "Pipa 6m", Stock: 12}}, *completed)
		assert.Equal(t, 1, *closed)
		assert.Equal(t, part{}, c.Draft())
		store.AssertExpectations(t)
	})

	t.Run("Validation failure makes no store call", func(t *testing.T) {
		store, c, completed, _ := setupController()
		c.OpenCreate()

		err := c.Submit(ctx)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, ShowingErrors, c.State())
		assert.Equal(t, "Kode tidak boleh kosong", c.Errors()["code"])
		assert.Equal(t, "Nama tidak boleh kosong", c.Errors()["name"])
		assert.Empty(t, *completed)
		store.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("Remote conflict retains the draft", func(t *testing.T) {
		store, c, completed, closed := setupController()
		c.OpenCreate()
		require.NoError(t, c.Set("code", "P-1"))
		require.NoError(t, c.Set("name", "Pipa"))
		store.On("Add", ctx, mock.Anything).Return(apperrors.ErrAlreadyExists).Once()

		err := c.Submit(ctx)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
		assert.Equal(t, Editing, c.State())
		assert.Equal(t, "P-1", c.Draft().Code)
		assert.ErrorIs(t, c.LastError(), apperrors.ErrAlreadyExists)
		assert.Empty(t, *completed)
		assert.Zero(t, *closed)
	})

	t.Run("Remote field errors are shown", func(t *testing.T) {
		store, c, _, _ := setupController()
		c.OpenCreate()
		require.NoError(t, c.Set("code", "P-1"))
		require.NoError(t, c.Set("name", "Pipa"))
		store.On("Add", ctx, mock.Anything).Return(apperrors.NewValidationError("name", "Nama sudah dipakai")).Once()

		err := c.Submit(ctx)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, "Nama sudah dipakai", c.Errors()["name"])
	})
}

func TestController_SubmitEdit(t *testing.T) {
	ctx := context.Background()
	store, c, completed, _ := setupController()
	original := part{Code: "P-9", Name: "Papan", Stock: 4}
	c.OpenEdit(original)
	require.NoError(t, c.Set("name", "Papan kayu"))
	store.On("Update", ctx, "P-9", part{Code: "P-9", Name: "Papan kayu", Stock: 4}).Return(nil).Once()

	require.NoError(t, c.Submit(ctx))

	assert.Len(t, *completed, 1)
	store.AssertExpectations(t)
}

func TestController_Set(t *testing.T) {
	t.Run("Key is immutable in edit mode", func(t *testing.T) {
		_, c, _, _ := setupController()
		c.OpenEdit(part{Code: "P-9", Name: "Papan"})

		err := c.Set("code", "P-10")

		assert.ErrorIs(t, err, apperrors.ErrImmutableField)
		assert.Equal(t, "P-9", c.Draft().Code)
	})

	t.Run("Unknown field", func(t *testing.T) {
		_, c, _, _ := setupController()
		c.OpenCreate()

		assert.ErrorIs(t, c.Set("colour", "red"), apperrors.ErrInvalidArgument)
	})

	t.Run("Closed form", func(t *testing.T) {
		_, c, _, _ := setupController()

		assert.ErrorIs(t, c.Set("name", "x"), ErrClosed)
		assert.ErrorIs(t, c.Submit(context.Background()), ErrClosed)
	})

	t.Run("Numeric input keeps its message until corrected", func(t *testing.T) {
		store, c, _, _ := setupController()
		c.OpenCreate()
		require.NoError(t, c.Set("code", "P-1"))
		require.NoError(t, c.Set("name", "Pipa"))

		require.NoError(t, c.Set("stock", "-5"))
		assert.Equal(t, "Nilai tidak boleh negatif", c.Errors()["stock"])
		assert.Equal(t, int64(0), c.Draft().Stock)

		err := c.Submit(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		store.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)

		require.NoError(t, c.Set("stock", "abc"))
		assert.Equal(t, "Nilai harus berupa angka", c.Errors()["stock"])

		require.NoError(t, c.Set("stock", "7.9"))
		assert.NotContains(t, c.Errors(), "stock")
		assert.Equal(t, int64(7), c.Draft().Stock)
		assert.Equal(t, Editing, c.State())
	})

	t.Run("Editing a field clears its message", func(t *testing.T) {
		_, c, _, _ := setupController()
		c.OpenCreate()
		_ = c.Submit(context.Background())
		require.Contains(t, c.Errors(), "name")

		require.NoError(t, c.Set("name", "Klem"))

		assert.NotContains(t, c.Errors(), "name")
		assert.Contains(t, c.Errors(), "code")
		assert.Equal(t, ShowingErrors, c.State())
	})

	t.Run("List binder splits and dedupes", func(t *testing.T) {
		_, c, _, _ := setupController()
		c.OpenCreate()

		require.NoError(t, c.Set("tags", " a, b ,,a"))

		assert.Equal(t, []string{"a", "b"}, c.Draft().Tags)
	})
}

func TestController_CancelAndReopen(t *testing.T) {
	_, c, completed, closed := setupController()
	c.OpenEdit(part{Code: "P-9", Name: "Papan"})
	require.NoError(t, c.Set("name", "changed"))

	c.Cancel()

	assert.Equal(t, Idle, c.State())
	assert.Equal(t, 1, *closed)
	assert.Empty(t, *completed)

	c.OpenCreate()
	assert.Equal(t, part{Stock: 1}, c.Draft())
	assert.Equal(t, Create, c.Mode())

	c.Cancel()
	c.Cancel()
	assert.Equal(t, 2, *closed)
}

func TestController_CancelDuringSubmit(t *testing.T) {
	ctx := context.Background()
	store, c, completed, _ := setupController()
	c.OpenCreate()
	require.NoError(t, c.Set("code", "P-1"))
	require.NoError(t, c.Set("name", "Pipa"))

	started := make(chan struct{})
	release := make(chan struct{})
	store.On("Add", ctx, mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(errors.New("late failure")).Once()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.Submit(ctx)
	}()

	<-started
	assert.Equal(t, Submitting, c.State())
	assert.ErrorIs(t, c.Set("name", "x"), ErrSubmitting)
	c.Cancel()
	close(release)
	wg.Wait()

	assert.Equal(t, Idle, c.State())
	assert.Nil(t, c.LastError())
	assert.Empty(t, *completed)
}
