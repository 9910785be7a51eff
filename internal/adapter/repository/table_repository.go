package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/table"
)

// TableRepository is the pgx implementation of table.Repository
type TableRepository struct {
	db *pgxpool.Pool
}

// NewTableRepository creates a TableRepository
func NewTableRepository(db *pgxpool.Pool) table.Repository {
	return &TableRepository{db: db}
}

func (r *TableRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]table.Table, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, restaurant_id, name, capacity, COALESCE(section, ''), status, is_active, created_at, updated_at
		FROM restaurant_tables
		WHERE restaurant_id = $1 AND is_active
		ORDER BY section, name
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("error listing tables: %w", err)
	}
	defer rows.Close()

	var tables []table.Table
	for rows.Next() {
		var t table.Table
		if err := rows.Scan(&t.ID, &t.RestaurantID, &t.Name, &t.Capacity, &t.Section, &t.Status, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error reading table: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}
