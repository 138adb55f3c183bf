package model

type Activity struct {
	ID             string `json:"id"`
	AuthorID       string `json:"author_id"`
	AuthorUsername string `json:"author_username"`
	Type           string `json:"type"`
	EntityID       string `json:"entity_id"`
	EntityTitle    string `json:"entity_title"`
	EntitySlug     string `json:"entity_slug"`
	Preview        string `json:"preview"`
	CreatedAt      string `json:"created_at"`
}

type PublishContentRequest struct {
	AuthorID string `json:"author_id"`
	Type     string `json:"type"`
	EntityID string `json:"entity_id"`
	Title    string `json:"title"`
	Body     string `json:"body"`

	// CreatedAt is the entity's own creation time (RFC3339). It becomes the
	// activity timestamp so feeds stay in chronological order no matter when
	// the activity is recorded.
	CreatedAt string `json:"created_at"`
}

type PublishContentResponse struct {
	// ActivityID is empty when the publish gate rejected the event
	// (placeholder title or already published).
	ActivityID string `json:"activity_id,omitempty"`
}

type DeleteContentRequest struct {
	AuthorID string `json:"author_id"`
	Type     string `json:"type"`
	EntityID string `json:"entity_id"`
}

type DeleteContentResponse struct{}

type GetFeedRequest struct {
	Limit int `form:"limit" json:"limit"`
}

type GetFeedResponse struct {
	Activities []Activity `json:"activities"`
}
