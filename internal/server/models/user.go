package models

import (
	"time"

	"github.com/Shubham-musmade/interview-tracker/internal/common"
)

// User is an account owning emails, documents and applications.
type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"user_name"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// DisplayName is the full name, or the username when no full name is set.
func (u User) DisplayName() string {
	return common.DisplayName(u.FullName, u.UserName)
}

// UserEmail is a named sender alias. At most one per user is primary.
type UserEmail struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Type      EmailType `json:"type"`
	Label     string    `json:"label"`
	IsPrimary bool      `json:"is_primary"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
