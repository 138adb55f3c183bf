package repository

import (
	"testing"

	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func TestFollowRepository(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureUsers(t, ctx)
	repo := NewFollowRepository()

	inserted, err := repo.Create(ctx, &entity.Follow{
		FollowerID: testutil.User1.ID,
		FolloweeID: testutil.User2.ID,
	})
	require.NoError(t, err)
	require.True(t, inserted)

	// A duplicate edge is reported, not rejected.
	inserted, err = repo.Create(ctx, &entity.Follow{
		FollowerID: testutil.User1.ID,
		FolloweeID: testutil.User2.ID,
	})
	require.NoError(t, err)
	require.False(t, inserted)

	// One row serves both projections.
	followingIDs, err := repo.GetFollowingIDs(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.User2.ID}, followingIDs)

	followerIDs, err := repo.GetFollowerIDs(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.User1.ID}, followerIDs)

	existed, err := repo.Delete(ctx, testutil.User1.ID, testutil.User2.ID)
	require.NoError(t, err)
	require.True(t, existed)

	existed, err = repo.Delete(ctx, testutil.User1.ID, testutil.User2.ID)
	require.NoError(t, err)
	require.False(t, existed)

	// A removed edge can be recreated.
	inserted, err = repo.Create(ctx, &entity.Follow{
		FollowerID: testutil.User1.ID,
		FolloweeID: testutil.User2.ID,
	})
	require.NoError(t, err)
	require.True(t, inserted)
}
