package model

// AccessToken is the object embedded in a signed access token.
type AccessToken struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
