package dto

// AuthResponse is returned on successful register/login.
type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresIn   int64        `json:"expiresIn"` // seconds
	User        UserResponse `json:"user"`
}
