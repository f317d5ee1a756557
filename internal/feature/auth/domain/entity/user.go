// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account.
// Profile fields are collected at registration and never change in-app.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`

	// Email is the user's contact address. It is not used for login.
	Email string `gorm:"size:255;not null"`

	Phone string `gorm:"size:50"`

	// Username is the login identifier. It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:100;not null"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored.
	PasswordHash string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
