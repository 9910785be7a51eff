package audit

import "time"

// Record is one audit entry for a mutation performed through the assistant
type Record struct {
	ID            string      `json:"id"`
	RestaurantID  string      `json:"restaurant_id"`
	UserID        string      `json:"user_id"`
	ActionType    string      `json:"action_type"`
	TargetEntity  string      `json:"target_entity"`
	PreviousValue interface{} `json:"previous_value,omitempty"`
	NewValue      interface{} `json:"new_value,omitempty"`
	IsConfirmed   bool        `json:"is_confirmed"`
	CreatedAt     time.Time   `json:"created_at"`
}
