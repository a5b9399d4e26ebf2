package dto

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserOutput represents user data in API responses
type UserOutput struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Cash     string `json:"cash"`
}

// AuthResponse is returned by both register and login; registration logs
// the new user in immediately.
type AuthResponse struct {
	Token string      `json:"token"`
	User  *UserOutput `json:"user"`
}
