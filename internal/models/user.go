package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name"`
	Email         string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	AvatarURL     string    `json:"avatar_url,omitempty"`
	ContactNumber string    `json:"contact_number,omitempty"`
	Role          string    `json:"role" gorm:"size:10;default:user"`
	Password      string    `json:"-"`                                         // Store hashed password, ignore for JSON serialization
	FirebaseUID   string    `json:"firebase_uid,omitempty" gorm:"index"` // Link to Firebase User UID (Google sign-in); empty for local accounts
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserCompact is the reduced user shape embedded in enriched responses.
type UserCompact struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}

type SignupRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=50"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	ContactNumber string `json:"contact_number,omitempty" validate:"omitempty,min=7,max=20"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name          string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	AvatarURL     string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	ContactNumber string `json:"contact_number,omitempty" validate:"omitempty,min=7,max=20"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
