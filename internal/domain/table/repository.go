package table

import "context"

// Repository defines the persistence operations for restaurant tables
type Repository interface {
	// ListByRestaurant returns the active tables of a restaurant, ordered by
	// section and name
	ListByRestaurant(ctx context.Context, restaurantID string) ([]Table, error)
}
