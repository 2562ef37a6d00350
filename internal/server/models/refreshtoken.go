package models

import "time"

type RefreshToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	Expires   time.Time `json:"expires"`
	CreatedAt time.Time `json:"created_at"`
}
