package dto

import (
	"time"

	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/user"
)

// LoginRequest carries the login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
}

// LoginResponse is the reply for a successful login
type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// NewLoginResponse builds a LoginResponse from a user and its issued token
func NewLoginResponse(u *user.User, token string, expiresAt time.Time) LoginResponse {
	return LoginResponse{
		User: UserResponse{
			ID:           u.ID,
			RestaurantID: u.RestaurantID,
			Email:        u.Email,
			Name:         u.Name,
			Role:         string(u.Role),
		},
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}
}
