package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account holder. The profile fields (name, description, avatar)
// are mirrored into the user search document on every change.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:150"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name" gorm:"size:150"`
	LastName     string    `json:"last_name" gorm:"size:150"`
	PasswordHash string    `json:"-"`
	Description  string    `json:"description" gorm:"size:200"`
	AvatarURL    string    `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// Name returns the display name shown in search results and feed cards.
func (u *User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserCompact is the embedded author view returned alongside photos and comments.
type UserCompact struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name(),
		AvatarURL: u.AvatarURL,
	}
}

// CreateUserRequest defines the request body for account creation
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=150"`
	Password    string `json:"password" validate:"required,min=8"`
	Email       string `json:"email" validate:"omitempty,email"`
	FirstName   string `json:"first_name" validate:"required,max=150"`
	LastName    string `json:"last_name" validate:"required,max=150"`
	Description string `json:"description" validate:"max=200"`
}

// LoginRequest defines the request body for password login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile updates
type UpdateProfileRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=150"`
	LastName    string `json:"last_name" validate:"required,max=150"`
	Description string `json:"description" validate:"max=200"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
