// ABOUTME: User domain model shared by all trends microservices
// ABOUTME: Mirrors the payload returned by the external user service

package domain

import "time"

// User represents an account as reported by the user service. The trends
// services never own user records; they receive them from the auth endpoints.
type User struct {
	// ID is the unique identifier assigned by the user service
	ID int64 `json:"id"`

	// Email is the account email address
	Email string `json:"email" validate:"required,email"`

	// Username is the unique handle chosen by the user
	Username string `json:"username" validate:"required"`

	// FirstName and LastName are the user's display name parts
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// PhoneNumber is the contact number on file
	PhoneNumber string `json:"phone_number"`

	// IsActive reports whether the account email has been verified
	IsActive bool `json:"is_active"`

	// IsAdmin reports whether the account has admin privileges
	IsAdmin bool `json:"is_admin"`

	// DateCreated is when the account was registered
	DateCreated time.Time `json:"date_created"`
}

// Validate checks the user fields, including the email format.
func (u *User) Validate() error {
	return validateStruct(u)
}
