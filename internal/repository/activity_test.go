package repository

import (
	"testing"
	"time"

	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestActivityRepository(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	repo := NewActivityRepository()

	activity := &entity.Activity{
		Base: entity.Base{
			ID:        "a1",
			CreatedAt: time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC),
		},
		AuthorID:       testutil.User1.ID,
		AuthorUsername: testutil.User1.Username,
		Type:           entity.RecipeCreated,
		EntityID:       "r1",
		EntityTitle:    "Blanquette de veau",
		EntitySlug:     "blanquette-de-veau-r1",
	}
	require.NoError(t, repo.Create(ctx, activity))

	got, err := repo.GetByEntity(ctx, testutil.User1.ID, entity.RecipeCreated, "r1")
	require.NoError(t, err)
	require.Equal(t, "a1", got.ID)

	// One activity per entity.
	require.Error(t, repo.Create(ctx, &entity.Activity{
		Base:        entity.Base{ID: "a2"},
		AuthorID:    testutil.User1.ID,
		Type:        entity.RecipeCreated,
		EntityID:    "r1",
		EntityTitle: "Blanquette de veau",
	}))

	// Deletion frees the entity for a new activity, as after a
	// delete-then-republish.
	require.NoError(t, repo.DeleteByID(ctx, "a1"))

	_, err = repo.GetByEntity(ctx, testutil.User1.ID, entity.RecipeCreated, "r1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Create(ctx, &entity.Activity{
		Base:        entity.Base{ID: "a2"},
		AuthorID:    testutil.User1.ID,
		Type:        entity.RecipeCreated,
		EntityID:    "r1",
		EntityTitle: "Blanquette de veau",
	}))
}
