package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/restaurant"
)

// RestaurantRepository is the pgx implementation of restaurant.Repository
type RestaurantRepository struct {
	db *pgxpool.Pool
}

// NewRestaurantRepository creates a RestaurantRepository
func NewRestaurantRepository(db *pgxpool.Pool) restaurant.Repository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	var rest restaurant.Restaurant
	err := r.db.QueryRow(ctx, `
		SELECT id, name, COALESCE(address, ''), COALESCE(phone, ''), is_active, created_at, updated_at
		FROM restaurants
		WHERE id = $1
	`, id).Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Phone, &rest.IsActive, &rest.CreatedAt, &rest.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding restaurant: %w", err)
	}
	return &rest, nil
}
