package entity

import "time"

// Content mirrors the part of a source entity (recipe, collection, menu) that
// the feed subsystem needs: the publish flag checked-and-set by the activity
// gate, and the fields backfill projects into a new follower's feed. The
// content layer owns the entity itself.
type Content struct {
	ID   string       `gorm:"primaryKey"`
	Type ActivityType `gorm:"primaryKey"`

	// CreatedAt is the entity's own creation time as reported by the
	// content layer. It may be zero for legacy rows; backfill skips those.
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time

	AuthorID string `gorm:"index"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	Title     string
	Body      string `gorm:"type:text"`
	Published bool
}
