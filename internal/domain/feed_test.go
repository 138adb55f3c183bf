package domain

import (
	"testing"
	"time"

	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/internal/model"
	"github.com/mealfeed/backend/pkg/errorx"
	"github.com/mealfeed/backend/pkg/testutil"
	"github.com/mealfeed/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func TestGetFeed(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	deps := newTestDeps(t, ctx)
	feedDomain := NewFeedDomain(deps.feedRepo)

	base := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	var entries []entity.FeedEntry
	for i, id := range []string{"a1", "a2", "a3"} {
		entries = append(entries, entity.FeedEntry{
			UserID:         testutil.User2.ID,
			EntryID:        id,
			AuthorID:       testutil.User1.ID,
			AuthorUsername: testutil.User1.Username,
			Type:           entity.RecipeCreated,
			EntityID:       "r-" + id,
			EntityTitle:    "Recipe " + id,
			CreatedAt:      base.Add(time.Duration(i) * time.Hour),
		})
	}
	require.NoError(t, deps.feedRepo.UpsertBatch(ctx, entries))

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)

	// Newest first, default limit applies.
	resp, err := feedDomain.GetFeed(userCtx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Activities, 3)
	require.Equal(t, "a3", resp.Activities[0].ID)
	require.Equal(t, "a1", resp.Activities[2].ID)

	resp, err = feedDomain.GetFeed(userCtx, &model.GetFeedRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Activities, 2)

	_, err = feedDomain.GetFeed(userCtx, &model.GetFeedRequest{Limit: 51})
	require.Equal(t, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (50)"), err)

	_, err = feedDomain.GetFeed(userCtx, &model.GetFeedRequest{Limit: -1})
	require.Equal(t, errorx.New(errorx.BadRequest, "Limit must be positive"), err)

	// Another user's partition stays empty.
	resp, err = feedDomain.GetFeed(
		xcontext.WithRequestUserID(ctx, testutil.User3.ID), &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Activities)
}
