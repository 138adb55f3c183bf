package entity

import "time"

// Follow is one edge of the follow graph. A user's following set and follower
// set are the two projections of this table, so the relationship is two-sided
// by construction.
type Follow struct {
	CreatedAt time.Time

	FollowerID string `gorm:"primaryKey"`
	Follower   User   `gorm:"foreignKey:FollowerID"`

	FolloweeID string `gorm:"primaryKey;index"`
	Followee   User   `gorm:"foreignKey:FolloweeID"`
}
