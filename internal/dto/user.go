package dto

import (
	"github.com/playware/game_lounge_app/internal/core/domain"
)

// LoginRequest defines the operator login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest defines the data needed to register an operator account.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=USER ADMIN"`
}

// UserResponse defines the data returned for an operator account.
type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse carries the issued token together with the operator details.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Role:     string(u.Role),
	}
}
