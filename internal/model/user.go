package model

import "time"

// User is an operator account for the admin dashboard.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	GoogleID     string    `json:"-"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
