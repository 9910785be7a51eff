package dto

// UpdatePriceRequest sets a new absolute price for a menu item
type UpdatePriceRequest struct {
	NewPrice float64 `json:"new_price" binding:"required,gt=0"`
}

// SetAvailabilityRequest turns a menu item on or off
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}
