package model

type FollowRequest struct {
	FolloweeID string `json:"followee_id"`
}

type FollowResponse struct {
	// AlreadyFollowing reports an idempotent no-op, not an error.
	AlreadyFollowing bool `json:"already_following,omitempty"`
}

type UnfollowRequest struct {
	FolloweeID string `json:"followee_id"`
}

type UnfollowResponse struct {
	NotFollowing bool `json:"not_following,omitempty"`
}

type GetConnectionsRequest struct {
	UserID string `form:"user_id" json:"user_id"`
}

type GetConnectionsResponse struct {
	Following []ShortUser `json:"following"`
	Followers []ShortUser `json:"followers"`
}
