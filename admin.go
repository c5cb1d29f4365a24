package sitekit

import (
	"context"
	"time"
)

// MinPasswordLength is the shortest admin password accepted.
const MinPasswordLength = 8

// Admin is a user allowed to sign in to the site's admin area.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Validate returns an error if the admin contains invalid fields.
func (a *Admin) Validate() error {
	if a.Username == "" {
		return Errorf(EINVALID, "admin username required")
	}
	return nil
}

// AdminService represents a service for managing admin credentials.
type AdminService interface {
	// CreateAdmin stores a new admin with the given plain-text password.
	// Returns ECONFLICT if the username is taken.
	CreateAdmin(ctx context.Context, admin *Admin, password string) error

	// FindAdminByUsername retrieves an admin by username.
	// Returns ENOTFOUND if the admin does not exist.
	FindAdminByUsername(ctx context.Context, username string) (*Admin, error)

	// FindAdmins returns all admins ordered by username.
	FindAdmins(ctx context.Context) ([]*Admin, error)

	// UpdatePassword replaces an admin's password.
	// Returns ENOTFOUND if the admin does not exist.
	UpdatePassword(ctx context.Context, username, password string) error

	// Authenticate checks a username/password pair.
	// Returns EUNAUTHORIZED when either is wrong.
	Authenticate(ctx context.Context, username, password string) (*Admin, error)

	// DeleteAdmin permanently removes an admin.
	// Returns ENOTFOUND if the admin does not exist.
	DeleteAdmin(ctx context.Context, username string) error
}
