package table

import "time"

// Status of a restaurant table
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusOccupied  Status = "OCCUPIED"
	StatusReserved  Status = "RESERVED"
	StatusBlocked   Status = "BLOCKED"
)

// Table is a physical table/seating in a restaurant
type Table struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Capacity     int       `json:"capacity"`
	Section      string    `json:"section,omitempty"`
	Status       Status    `json:"status"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
