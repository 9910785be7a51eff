package user

import "context"

// Repository defines the persistence operations for users
type Repository interface {
	// FindByEmail looks a user up by email, or returns nil when none exists
	FindByEmail(ctx context.Context, email string) (*User, error)

	// UpdateLastLogin stamps the user's last successful login
	UpdateLastLogin(ctx context.Context, id string) error
}
