package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/audit"
)

// AuditRepository is the pgx implementation of audit.Repository
type AuditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository creates an AuditRepository
func NewAuditRepository(db *pgxpool.Pool) audit.Repository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Save(ctx context.Context, rec *audit.Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	previousJSON, err := marshalValue(rec.PreviousValue)
	if err != nil {
		return fmt.Errorf("error serializing previous value: %w", err)
	}
	newJSON, err := marshalValue(rec.NewValue)
	if err != nil {
		return fmt.Errorf("error serializing new value: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO ai_actions (id, restaurant_id, user_id, action_type, target_entity, previous_value, new_value, is_confirmed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, rec.ID, rec.RestaurantID, rec.UserID, rec.ActionType, rec.TargetEntity, previousJSON, newJSON, rec.IsConfirmed).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("error saving audit record: %w", err)
	}
	return nil
}

func marshalValue(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
