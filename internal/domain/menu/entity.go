package menu

import "time"

// Category groups menu items for a restaurant
type Category struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Item is a sellable menu item
type Item struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ShortCode    string    `json:"short_code,omitempty"`
	BasePrice    float64   `json:"base_price"`
	IsAvailable  bool      `json:"is_available"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PriceUpdate is a single absolute price assignment for an item
type PriceUpdate struct {
	ItemID   string  `json:"item_id"`
	NewPrice float64 `json:"new_price"`
}
