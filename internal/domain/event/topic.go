package event

const (
	// FeedTopic carries events this service emits for downstream consumers.
	FeedTopic = "feed-events"

	// ContentTopic carries publish/delete events from the content layer.
	ContentTopic = "content-events"
)
