package dto

import "github.com/enpl/fieldops-console/internal/domain"

// RegisterUserRequest payload for POST /users/register.
type RegisterUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Usertype  string `json:"usertype"`
	ManagerID *int64 `json:"managerId,omitempty"`
	AdminID   *int64 `json:"adminId,omitempty"`
}

// UpdateUserRequest payload for PATCH /users/:id. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty"`
	Password  *string `json:"password,omitempty"`
	Usertype  *string `json:"usertype,omitempty"`
	ManagerID *int64  `json:"managerId,omitempty"`
	AdminID   *int64  `json:"adminId,omitempty"`
}

// UserResponse is the public shape of an account; the password hash never
// leaves the service.
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Usertype  string `json:"usertype"`
	ManagerID *int64 `json:"managerId,omitempty"`
	AdminID   *int64 `json:"adminId,omitempty"`
}

// NewUserResponse maps a domain account to its public shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Usertype:  string(user.Role),
		ManagerID: user.ManagerID,
		AdminID:   user.AdminID,
	}
}

// NewUserResponses maps a slice of accounts.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
