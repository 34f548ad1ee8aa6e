package dto

import (
	"time"

	"github.com/yukikurage/taskbot-api/internal/models"
)

// UserSimple is the compact user shape used in listings and embedded in tasks
type UserSimple struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// UserResponse is the full user record, without credentials
type UserResponse struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserSimple converts a User model to UserSimple
func ToUserSimple(user models.User) UserSimple {
	return UserSimple{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
	}
}

// ToUserSimpleList converts a slice of users, never returning nil
func ToUserSimpleList(users []models.User) []UserSimple {
	items := make([]UserSimple, len(users))
	for i, user := range users {
		items[i] = ToUserSimple(user)
	}
	return items
}

// ToUserResponse converts a User model to UserResponse
func ToUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
