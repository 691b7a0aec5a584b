package models

import (
	"time"
)

// User defines the account model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Username  string    `json:"username" db:"username" example:"alice"`                   // Unique login name
	Email     string    `json:"email" db:"email" example:"alice@example.com"`             // Unique email address
	Password  string    `json:"-" db:"password"`                                          // Hashed password (excluded from JSON)
	IsAdmin   bool      `json:"isAdmin" db:"is_admin" example:"false"`                    // Whether the user has administrative rights
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}
