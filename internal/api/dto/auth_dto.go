package dto

// LoginRequest payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse mirrors the original console contract: token plus the
// identity fields the dashboards key off.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ID          int64  `json:"id"`
	Usertype    string `json:"usertype"`
}

// ChangePasswordRequest payload for PATCH /users/:id/change-password.
type ChangePasswordRequest struct {
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
