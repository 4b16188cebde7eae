package record

import (
	"context"
	"scaffold-rental/internal/pkg/apperrors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(Widget{Code: "A", Name: "first"})

	require.NoError(t, repo.Insert(ctx, Widget{Code: "B", Name: "second"}))
	assert.ErrorIs(t, repo.Insert(ctx, Widget{Code: "A", Name: "dup"}), apperrors.ErrAlreadyExists)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Widget{{Code: "A", Name: "first"}, {Code: "B", Name: "second"}}, all)

	require.NoError(t, repo.Update(ctx, "A", Widget{Code: "A", Name: "renamed"}))
	got, err := repo.FindByKey(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)

	require.NoError(t, repo.Delete(ctx, "A"))
	assert.ErrorIs(t, repo.Delete(ctx, "A"), apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, "A", Widget{Code: "A"}), apperrors.ErrNotFound)

	_, err = repo.FindByKey(ctx, "A")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	empty, err := NewMemoryRepository[Widget]().FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
}
