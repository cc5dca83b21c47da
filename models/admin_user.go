package models

import (
	"strings"
	"time"
)

// AdminUser is an account allowed into the admin pages
type AdminUser struct {
	ID           int64      `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Active       bool       `json:"active" db:"active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
}

// LoginForm represents admin login form data
type LoginForm struct {
	Username string
	Password string
}

// Validate validates the login form data
func (f *LoginForm) Validate() []string {
	var errors []string

	if strings.TrimSpace(f.Username) == "" {
		errors = append(errors, "Username is required")
	}
	if f.Password == "" {
		errors = append(errors, "Password is required")
	}

	return errors
}
