package repository

import (
	"testing"
	"time"

	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func TestContentRepositoryUpsert(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	repo := NewContentRepository()

	createdAt := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, &entity.Content{
		ID:        "r1",
		Type:      entity.RecipeCreated,
		CreatedAt: createdAt,
		AuthorID:  testutil.User1.ID,
		Title:     "Pot-au-feu",
		Body:      "Simmer for three hours.",
	}))

	first, err := repo.MarkPublished(ctx, entity.RecipeCreated, "r1")
	require.NoError(t, err)
	require.True(t, first)

	// A later upsert refreshes the mutable fields but keeps both the
	// publish flag and the original creation time.
	require.NoError(t, repo.Upsert(ctx, &entity.Content{
		ID:        "r1",
		Type:      entity.RecipeCreated,
		CreatedAt: createdAt.Add(time.Hour),
		AuthorID:  testutil.User1.ID,
		Title:     "Pot-au-feu Maison",
		Body:      "Simmer for four hours.",
	}))

	got, err := repo.Get(ctx, entity.RecipeCreated, "r1")
	require.NoError(t, err)
	require.Equal(t, "Pot-au-feu Maison", got.Title)
	require.True(t, got.Published)
	require.True(t, got.CreatedAt.Equal(createdAt))
}

func TestContentRepositoryMarkPublishedOnce(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	repo := NewContentRepository()

	require.NoError(t, repo.Upsert(ctx, &entity.Content{
		ID:        "r1",
		Type:      entity.RecipeCreated,
		CreatedAt: time.Now(),
		AuthorID:  testutil.User1.ID,
		Title:     "Cassoulet",
	}))

	first, err := repo.MarkPublished(ctx, entity.RecipeCreated, "r1")
	require.NoError(t, err)
	require.True(t, first)

	first, err = repo.MarkPublished(ctx, entity.RecipeCreated, "r1")
	require.NoError(t, err)
	require.False(t, first)
}

func TestContentRepositoryListPublishedByAuthor(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	repo := NewContentRepository()

	base := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"r2", "r1", "r3"} {
		require.NoError(t, repo.Upsert(ctx, &entity.Content{
			ID:        id,
			Type:      entity.RecipeCreated,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			AuthorID:  testutil.User1.ID,
			Title:     "Recipe " + id,
		}))
	}

	for _, id := range []string{"r1", "r2"} {
		_, err := repo.MarkPublished(ctx, entity.RecipeCreated, id)
		require.NoError(t, err)
	}

	// Only published entities, oldest first.
	got, err := repo.ListPublishedByAuthor(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "r2", got[0].ID)
	require.Equal(t, "r1", got[1].ID)
}

func TestContentRepositoryDelete(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	repo := NewContentRepository()

	require.NoError(t, repo.Upsert(ctx, &entity.Content{
		ID:        "r1",
		Type:      entity.RecipeCreated,
		CreatedAt: time.Now(),
		AuthorID:  testutil.User1.ID,
		Title:     "Quiche",
	}))

	require.NoError(t, repo.Delete(ctx, entity.RecipeCreated, "r1"))

	_, err := repo.Get(ctx, entity.RecipeCreated, "r1")
	require.Error(t, err)
}
