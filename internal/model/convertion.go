package model

import (
	"github.com/mealfeed/backend/internal/entity"
)

const DefaultTimeLayout = "2006-01-02T15:04:05-0700"

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:             user.ID,
		Username:       user.Username,
		FollowingCount: user.FollowingCount,
		FollowersCount: user.FollowersCount,
		Searchable:     user.Searchable,
		CreatedAt:      user.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertShortUser(user *entity.User) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{
		ID:       user.ID,
		Username: user.Username,
	}
}

func ConvertActivity(activity *entity.Activity) Activity {
	if activity == nil {
		return Activity{}
	}

	return Activity{
		ID:             activity.ID,
		AuthorID:       activity.AuthorID,
		AuthorUsername: activity.AuthorUsername,
		Type:           string(activity.Type),
		EntityID:       activity.EntityID,
		EntityTitle:    activity.EntityTitle,
		EntitySlug:     activity.EntitySlug,
		Preview:        activity.Preview,
		CreatedAt:      activity.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertFeedEntry(entry *entity.FeedEntry) Activity {
	if entry == nil {
		return Activity{}
	}

	return Activity{
		ID:             entry.EntryID,
		AuthorID:       entry.AuthorID,
		AuthorUsername: entry.AuthorUsername,
		Type:           string(entry.Type),
		EntityID:       entry.EntityID,
		EntityTitle:    entry.EntityTitle,
		EntitySlug:     entry.EntitySlug,
		Preview:        entry.Preview,
		CreatedAt:      entry.CreatedAt.Format(DefaultTimeLayout),
	}
}
