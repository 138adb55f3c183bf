package feed

import (
	"context"
	"testing"
	"time"

	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/internal/repository"
	"github.com/mealfeed/backend/pkg/testutil"
	"github.com/mealfeed/backend/pkg/xcontext"
	"github.com/mealfeed/backend/pkg/xredis"

	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, ctx context.Context) *Engine {
	redisClient, err := xredis.NewClient(ctx)
	require.NoError(t, err)

	return NewEngine(
		repository.NewUserRepository(redisClient),
		repository.NewFollowRepository(),
		repository.NewContentRepository(),
		repository.NewActivityRepository(),
		repository.NewFeedRepository(),
	)
}

func follow(t *testing.T, ctx context.Context, followerID, followeeID string) {
	_, err := repository.NewFollowRepository().Create(ctx, &entity.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	})
	require.NoError(t, err)
}

func testActivity(id, entityID string) *entity.Activity {
	return &entity.Activity{
		Base: entity.Base{
			ID:        id,
			CreatedAt: time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC),
		},
		AuthorID:       testutil.User1.ID,
		AuthorUsername: testutil.User1.Username,
		Type:           entity.RecipeCreated,
		EntityID:       entityID,
		EntityTitle:    "Bouillabaisse",
		EntitySlug:     "bouillabaisse-" + entityID,
		Preview:        "Start with a good fish stock.",
	}
}

func TestFanOut(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	engine := newTestEngine(t, ctx)

	// Three followers with a batch size of two spans two chunks.
	follow(t, ctx, testutil.User2.ID, testutil.User1.ID)
	follow(t, ctx, testutil.User3.ID, testutil.User1.ID)
	follow(t, ctx, testutil.User4.ID, testutil.User1.ID)

	activity := testActivity("a1", "r1")
	require.NoError(t, engine.FanOut(ctx, activity))

	feedRepo := repository.NewFeedRepository()
	for _, userID := range []string{testutil.User2.ID, testutil.User3.ID, testutil.User4.ID} {
		entries, err := feedRepo.GetByUserID(ctx, userID, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "a1", entries[0].EntryID)
		require.Equal(t, testutil.User1.Username, entries[0].AuthorUsername)
		require.Equal(t, "bouillabaisse-r1", entries[0].EntitySlug)
	}

	// The author does not see their own activity.
	entries, err := feedRepo.GetByUserID(ctx, testutil.User1.ID, 10)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestFanOutWithoutFollowers(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	engine := newTestEngine(t, ctx)

	// The canonical record is written even when nobody receives a copy.
	require.NoError(t, engine.FanOut(ctx, testActivity("a1", "r1")))

	got, err := repository.NewActivityRepository().GetByID(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "r1", got.EntityID)
}

func TestBackfill(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	engine := newTestEngine(t, ctx)

	contentRepo := repository.NewContentRepository()
	base := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, contentRepo.Upsert(ctx, &entity.Content{
			ID:        id,
			Type:      entity.RecipeCreated,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			AuthorID:  testutil.User1.ID,
			Title:     "Recipe " + id,
			Body:      "Body of " + id,
		}))
	}

	// r3 stays a draft and must not be backfilled.
	for _, id := range []string{"r1", "r2"} {
		_, err := contentRepo.MarkPublished(ctx, entity.RecipeCreated, id)
		require.NoError(t, err)
	}

	// A legacy row without a creation time is skipped, not defaulted.
	require.NoError(t, xcontext.DB(ctx).Create(&entity.Content{
		ID:        "legacy",
		Type:      entity.RecipeCreated,
		AuthorID:  testutil.User1.ID,
		Title:     "Legacy recipe",
		Published: true,
	}).Error)

	require.NoError(t, engine.Backfill(ctx, testutil.User2.ID, testutil.User1.ID))

	feedRepo := repository.NewFeedRepository()
	entries, err := feedRepo.GetByUserID(ctx, testutil.User2.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, BackfillKey(entity.RecipeCreated, "r2"), entries[0].EntryID)
	require.Equal(t, BackfillKey(entity.RecipeCreated, "r1"), entries[1].EntryID)
	require.Equal(t, "Body of r1", entries[1].Preview)

	// Re-running overwrites the same keys.
	require.NoError(t, engine.Backfill(ctx, testutil.User2.ID, testutil.User1.ID))

	entries, err = feedRepo.GetByUserID(ctx, testutil.User2.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestRemoveFromAllFollowers(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	engine := newTestEngine(t, ctx)

	follow(t, ctx, testutil.User2.ID, testutil.User1.ID)
	follow(t, ctx, testutil.User3.ID, testutil.User1.ID)

	activity := testActivity("a1", "r1")
	require.NoError(t, engine.FanOut(ctx, activity))

	// user3 also holds a backfilled copy of the same entity.
	feedRepo := repository.NewFeedRepository()
	require.NoError(t, feedRepo.UpsertBatch(ctx, []entity.FeedEntry{{
		UserID:         testutil.User3.ID,
		EntryID:        BackfillKey(entity.RecipeCreated, "r1"),
		AuthorID:       testutil.User1.ID,
		AuthorUsername: testutil.User1.Username,
		Type:           entity.RecipeCreated,
		EntityID:       "r1",
		CreatedAt:      activity.CreatedAt,
	}}))

	require.NoError(t, engine.RemoveFromAllFollowers(
		ctx, testutil.User1.ID, entity.RecipeCreated, "r1"))

	for _, userID := range []string{testutil.User2.ID, testutil.User3.ID} {
		entries, err := feedRepo.GetByUserID(ctx, userID, 10)
		require.NoError(t, err)
		require.Empty(t, entries)
	}

	_, err := repository.NewActivityRepository().GetByID(ctx, "a1")
	require.Error(t, err)

	// Without a canonical record the cleanup is a no-op.
	require.NoError(t, engine.RemoveFromAllFollowers(
		ctx, testutil.User1.ID, entity.RecipeCreated, "r1"))
}

func TestRemoveAuthorFromFeed(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	engine := newTestEngine(t, ctx)

	follow(t, ctx, testutil.User3.ID, testutil.User1.ID)
	follow(t, ctx, testutil.User3.ID, testutil.User2.ID)

	require.NoError(t, engine.FanOut(ctx, testActivity("a1", "r1")))

	other := testActivity("a2", "r2")
	other.AuthorID = testutil.User2.ID
	other.AuthorUsername = testutil.User2.Username
	require.NoError(t, engine.FanOut(ctx, other))

	require.NoError(t, engine.RemoveAuthorFromFeed(ctx, testutil.User3.ID, testutil.User1.ID))

	entries, err := repository.NewFeedRepository().GetByUserID(ctx, testutil.User3.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "a2", entries[0].EntryID)
}
