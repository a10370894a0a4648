package dto

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned alongside the session cookie.
type LoginResponse struct {
	Success bool `json:"success"`
}

// MeResponse describes the cookie session.
type MeResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}
