package repository

import (
	"testing"
	"time"

	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func testFeedEntry(userID, entryID string, createdAt time.Time) entity.FeedEntry {
	return entity.FeedEntry{
		UserID:         userID,
		EntryID:        entryID,
		AuthorID:       testutil.User1.ID,
		AuthorUsername: testutil.User1.Username,
		Type:           entity.RecipeCreated,
		EntityID:       "r-" + entryID,
		EntityTitle:    "Ratatouille",
		EntitySlug:     "ratatouille-r-" + entryID,
		Preview:        "Slice the vegetables thin.",
		CreatedAt:      createdAt,
	}
}

func TestFeedRepositoryUpsertBatch(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	repo := NewFeedRepository()

	base := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	entries := []entity.FeedEntry{
		testFeedEntry(testutil.User2.ID, "e1", base),
		testFeedEntry(testutil.User2.ID, "e2", base.Add(time.Hour)),
	}
	require.NoError(t, repo.UpsertBatch(ctx, entries))

	// Rewriting the same keys overwrites instead of duplicating.
	entries[0].EntityTitle = "Ratatouille Confit"
	require.NoError(t, repo.UpsertBatch(ctx, entries))

	got, err := repo.GetByUserID(ctx, testutil.User2.ID, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "e2", got[0].EntryID)
	require.Equal(t, "e1", got[1].EntryID)
	require.Equal(t, "Ratatouille Confit", got[1].EntityTitle)
}

func TestFeedRepositoryGetByUserIDLimit(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	repo := NewFeedRepository()

	base := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	var entries []entity.FeedEntry
	for i := 0; i < 5; i++ {
		entries = append(entries, testFeedEntry(
			testutil.User2.ID, string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour)))
	}
	require.NoError(t, repo.UpsertBatch(ctx, entries))

	got, err := repo.GetByUserID(ctx, testutil.User2.ID, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "e", got[0].EntryID)
}

func TestFeedRepositoryDeleteBatch(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	repo := NewFeedRepository()

	base := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpsertBatch(ctx, []entity.FeedEntry{
		testFeedEntry(testutil.User2.ID, "canonical-id", base),
		testFeedEntry(testutil.User3.ID, "recipe_created:r1", base),
		testFeedEntry(testutil.User4.ID, "keep", base),
	}))

	// Both key forms of the same activity go in one call.
	deleted, err := repo.DeleteBatch(
		ctx,
		[]string{testutil.User2.ID, testutil.User3.ID, testutil.User4.ID},
		[]string{"canonical-id", "recipe_created:r1"},
	)
	require.NoError(t, err)
	require.EqualValues(t, 2, deleted)

	got, err := repo.GetByUserID(ctx, testutil.User4.ID, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestFeedRepositoryDeleteByUserAndAuthor(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	repo := NewFeedRepository()

	base := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	other := testFeedEntry(testutil.User2.ID, "other-author", base)
	other.AuthorID = testutil.User3.ID
	require.NoError(t, repo.UpsertBatch(ctx, []entity.FeedEntry{
		testFeedEntry(testutil.User2.ID, "e1", base),
		testFeedEntry(testutil.User2.ID, "e2", base.Add(time.Hour)),
		other,
	}))

	deleted, err := repo.DeleteByUserAndAuthor(ctx, testutil.User2.ID, testutil.User1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, deleted)

	got, err := repo.GetByUserID(ctx, testutil.User2.ID, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "other-author", got[0].EntryID)
}
