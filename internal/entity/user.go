package entity

type User struct {
	Base
	Username string `gorm:"unique"`

	// Denormalized cardinalities of the follow graph. Only mutated inside
	// the same transaction as the follows row they describe.
	FollowingCount uint64
	FollowersCount uint64

	Searchable bool `gorm:"default:true"`
}
