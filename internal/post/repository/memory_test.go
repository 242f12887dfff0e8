package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/folio/folio/server/internal/post"
)

func TestMemoryRepo_CreateAssignsIdentityAndTimestamps(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, &post.Post{Title: "Hello", Content: "World"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Hello", got.Title)
	require.Equal(t, "World", got.Content)
}

func TestMemoryRepo_GetUnknownID(t *testing.T) {
	repo := NewMemoryRepo()
	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_ListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		_, err := repo.Create(ctx, &post.Post{Title: title, Content: "c"})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "third", list[0].Title)
	require.Equal(t, "second", list[1].Title)
	require.Equal(t, "first", list[2].Title)
}

func TestMemoryRepo_UpdateReplacesFieldsAndAdvancesUpdatedAt(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, &post.Post{Title: "old", Content: "old", Category: "a", Tags: []string{"x"}})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	updated, err := repo.Update(ctx, created.ID, post.Fields{Title: "new", Content: "new"})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "new", updated.Title)
	require.Empty(t, updated.Category, "update is a full replacement")
	require.Empty(t, updated.Tags)
	require.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestMemoryRepo_UpdateUnknownID(t *testing.T) {
	repo := NewMemoryRepo()
	_, err := repo.Update(context.Background(), "missing", post.Fields{Title: "t", Content: "c"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_Delete(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, &post.Post{Title: "t", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, created.ID), ErrNotFound)
}
