package entity

import "time"

// FeedEntry is the denormalized copy of an Activity stored under one
// recipient's feed partition. EntryID equals the canonical activity id for
// fan-out copies, or the deterministic "type:entityId" key for backfill
// copies, which makes both paths idempotent.
type FeedEntry struct {
	UserID string `gorm:"primaryKey;index:idx_feed_user_created,priority:1;index:idx_feed_user_author,priority:1"`
	User   User   `gorm:"foreignKey:UserID"`

	EntryID string `gorm:"primaryKey"`

	AuthorID string `gorm:"index:idx_feed_user_author,priority:2"`

	AuthorUsername string
	Type           ActivityType
	EntityID       string
	EntityTitle    string
	EntitySlug     string
	Preview        string

	// CreatedAt is copied from the activity, so it carries the entity's
	// original creation time regardless of when the entry was written.
	CreatedAt time.Time `gorm:"autoCreateTime:false;index:idx_feed_user_created,priority:2"`
}
