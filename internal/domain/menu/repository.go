package menu

import "context"

// Repository defines the persistence operations for the menu aggregate
type Repository interface {
	// ListCategories returns the active categories of a restaurant
	ListCategories(ctx context.Context, restaurantID string) ([]Category, error)

	// ListItems returns the active items of a restaurant, optionally filtered
	// by category id
	ListItems(ctx context.Context, restaurantID, categoryID string) ([]Item, error)

	// FindItemsByCategoryNameOrIDs returns active items whose name, or whose
	// category name, loosely matches the given target (case-insensitive
	// substring)
	FindItemsByCategoryNameOrIDs(ctx context.Context, restaurantID, target string) ([]Item, error)

	// FindItemsByNameSubstrings returns active items whose name matches any of
	// the given free-text names (case-insensitive substring)
	FindItemsByNameSubstrings(ctx context.Context, restaurantID string, names []string) ([]Item, error)

	// ApplyPriceUpdates applies absolute price assignments in a single
	// transaction and returns the number of items updated
	ApplyPriceUpdates(ctx context.Context, restaurantID string, updates []PriceUpdate) (int, error)

	// SetAvailability flips availability on the given items and returns the
	// updated rows
	SetAvailability(ctx context.Context, restaurantID string, itemIDs []string, available bool) ([]Item, error)
}
