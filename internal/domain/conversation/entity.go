package conversation

import "time"

// Message roles
const (
	RoleUser      = "USER"
	RoleAssistant = "ASSISTANT"
)

// Conversation groups assistant messages for one user+restaurant session
type Conversation struct {
	ID           string     `json:"id"`
	RestaurantID string     `json:"restaurant_id"`
	UserID       string     `json:"user_id"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
}

// Message is a single turn in a conversation. Intent, confidence and entities
// are only populated for turns that went through the classifier.
type Message struct {
	ID             string                 `json:"id"`
	ConversationID string                 `json:"conversation_id"`
	Role           string                 `json:"role"`
	Content        string                 `json:"content"`
	Intent         string                 `json:"intent,omitempty"`
	Confidence     float64                `json:"confidence"`
	Entities       map[string]interface{} `json:"entities,omitempty"`
	ProcessingMs   int                    `json:"processing_ms"`
	CreatedAt      time.Time              `json:"created_at"`
}
