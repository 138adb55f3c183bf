package entity

type ActivityType string

const (
	RecipeCreated     = ActivityType("recipe_created")
	CollectionCreated = ActivityType("collection_created")
	MenuCreated       = ActivityType("menu_created")
)

var ActivityTypes = []ActivityType{RecipeCreated, CollectionCreated, MenuCreated}

// Activity is the canonical record of one published entity. CreatedAt holds
// the entity's own creation time, not the time the record was written.
type Activity struct {
	Base

	AuthorID string `gorm:"index;uniqueIndex:idx_activities_entity"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	AuthorUsername string

	Type     ActivityType `gorm:"uniqueIndex:idx_activities_entity"`
	EntityID string       `gorm:"uniqueIndex:idx_activities_entity"`

	EntityTitle string
	EntitySlug  string
	Preview     string
}
