package conversation

import "context"

// Repository defines the persistence operations for the conversation log.
// The assistant core only ever appends; reads exist for the UI history view.
type Repository interface {
	// Create persists a new conversation
	Create(ctx context.Context, conv *Conversation) error

	// FindByID returns a conversation scoped to a restaurant, or nil when it
	// does not exist
	FindByID(ctx context.Context, restaurantID, id string) (*Conversation, error)

	// AppendMessage appends a message to a conversation
	AppendMessage(ctx context.Context, msg *Message) error

	// ListMessages returns the messages of a conversation in chronological
	// order
	ListMessages(ctx context.Context, conversationID string, limit int) ([]Message, error)
}
