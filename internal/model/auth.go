package model

// AccessToken is the object carried inside the JWT access token.
type AccessToken struct {
	Address string `json:"address"`
}

type LoginRequest struct {
	Address string `json:"address" form:"address"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
