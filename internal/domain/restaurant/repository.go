package restaurant

import "context"

// Repository defines the persistence operations for restaurants
type Repository interface {
	// FindByID returns a restaurant, or nil when it does not exist
	FindByID(ctx context.Context, id string) (*Restaurant, error)
}
