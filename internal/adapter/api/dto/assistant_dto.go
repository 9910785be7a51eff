package dto

// AssistantMessageRequest carries one natural language command
type AssistantMessageRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversationId"`
}

// AssistantActionRequest references a pending action by its ID
type AssistantActionRequest struct {
	ActionID string `json:"actionId" binding:"required"`
}

// AssistantActionResponse is the outcome of confirming or cancelling an action
type AssistantActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
