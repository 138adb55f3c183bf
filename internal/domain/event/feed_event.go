package event

import "github.com/mealfeed/backend/internal/model"

type ActivityCreatedEvent struct {
	Activity model.Activity `json:"activity"`
}

func (ActivityCreatedEvent) Op() string {
	return "activity_created"
}

type ActivityDeletedEvent struct {
	ActivityID string `json:"activity_id"`
	AuthorID   string `json:"author_id"`
}

func (ActivityDeletedEvent) Op() string {
	return "activity_deleted"
}

type FollowedEvent struct {
	FollowerID string `json:"follower_id"`
	FolloweeID string `json:"followee_id"`
}

func (FollowedEvent) Op() string {
	return "followed"
}

type UnfollowedEvent struct {
	FollowerID string `json:"follower_id"`
	FolloweeID string `json:"followee_id"`
}

func (UnfollowedEvent) Op() string {
	return "unfollowed"
}

// Content events consumed from the content layer.

type ContentPublishedEvent struct {
	AuthorID  string `json:"author_id"`
	Type      string `json:"type"`
	EntityID  string `json:"entity_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

func (ContentPublishedEvent) Op() string {
	return "content_published"
}

type ContentDeletedEvent struct {
	AuthorID string `json:"author_id"`
	Type     string `json:"type"`
	EntityID string `json:"entity_id"`
}

func (ContentDeletedEvent) Op() string {
	return "content_deleted"
}
