package testutil

import (
	"context"
	"testing"

	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

var (
	User1 = &entity.User{Base: entity.Base{ID: "user1"}, Username: "jacques", Searchable: true}
	User2 = &entity.User{Base: entity.Base{ID: "user2"}, Username: "elise", Searchable: true}
	User3 = &entity.User{Base: entity.Base{ID: "user3"}, Username: "marcel", Searchable: true}
	User4 = &entity.User{Base: entity.Base{ID: "user4"}, Username: "odette", Searchable: true}
)

// CreateFixtureUsers inserts the four well-known users. Counters start at
// zero; tests create follows through the domain to keep them consistent.
func CreateFixtureUsers(t *testing.T, ctx context.Context) {
	for _, user := range []*entity.User{User1, User2, User3, User4} {
		record := *user
		require.NoError(t, xcontext.DB(ctx).Create(&record).Error)
	}
}
