package model

type User struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	FollowingCount uint64 `json:"following_count"`
	FollowersCount uint64 `json:"followers_count"`
	Searchable     bool   `json:"searchable"`
	CreatedAt      string `json:"created_at"`
}

// ShortUser is the profile summary projected into connection lists.
type ShortUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type GetUserRequest struct {
	ID string `form:"id" json:"id"`
}

type GetUserResponse User
