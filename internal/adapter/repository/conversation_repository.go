package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/conversation"
)

// ConversationRepository is the pgx implementation of conversation.Repository
type ConversationRepository struct {
	db *pgxpool.Pool
}

// NewConversationRepository creates a ConversationRepository
func NewConversationRepository(db *pgxpool.Pool) conversation.Repository {
	return &ConversationRepository{db: db}
}

func (r *ConversationRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO ai_conversations (id, restaurant_id, user_id, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING created_at
	`, conv.ID, conv.RestaurantID, conv.UserID).Scan(&conv.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating conversation: %w", err)
	}
	conv.IsActive = true
	return nil
}

func (r *ConversationRepository) FindByID(ctx context.Context, restaurantID, id string) (*conversation.Conversation, error) {
	var conv conversation.Conversation
	err := r.db.QueryRow(ctx, `
		SELECT id, restaurant_id, user_id, is_active, created_at, ended_at
		FROM ai_conversations
		WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, id).Scan(&conv.ID, &conv.RestaurantID, &conv.UserID, &conv.IsActive, &conv.CreatedAt, &conv.EndedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding conversation: %w", err)
	}
	return &conv, nil
}

func (r *ConversationRepository) AppendMessage(ctx context.Context, msg *conversation.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}

	var entitiesJSON []byte
	if len(msg.Entities) > 0 {
		var err error
		entitiesJSON, err = json.Marshal(msg.Entities)
		if err != nil {
			return fmt.Errorf("error serializing message entities: %w", err)
		}
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO ai_messages (id, conversation_id, role, content, intent, confidence, entities, processing_ms)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
		RETURNING created_at
	`, msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.Intent, msg.Confidence, entitiesJSON, msg.ProcessingMs).Scan(&msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("error appending message: %w", err)
	}
	return nil
}

func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID string, limit int) ([]conversation.Message, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, conversation_id, role, content, COALESCE(intent, ''), confidence, entities, processing_ms, created_at
		FROM ai_messages
		WHERE conversation_id = $1
		ORDER BY created_at
		LIMIT $2
	`, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	var messages []conversation.Message
	for rows.Next() {
		var msg conversation.Message
		var entitiesJSON []byte
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.Intent, &msg.Confidence, &entitiesJSON, &msg.ProcessingMs, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("error reading message: %w", err)
		}
		if len(entitiesJSON) > 0 {
			if err := json.Unmarshal(entitiesJSON, &msg.Entities); err != nil {
				return nil, fmt.Errorf("error deserializing message entities: %w", err)
			}
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
