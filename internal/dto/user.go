package dto

import (
	"time"

	"github.com/rsinghcodes/banking_system/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a user.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the credential payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued JWT.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userID"`
}

// UpdateUserStatusRequest defines the payload for activating/deactivating a user.
type UpdateUserStatusRequest struct {
	Status domain.UserStatus `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`
}

// UserResponse defines the data returned for a user. The password hash is
// never included.
type UserResponse struct {
	UserID    string            `json:"userID"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Status    domain.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
}
