package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/sales"
)

// SalesRepository is the pgx implementation of sales.Repository. Revenue comes
// from paid invoices, order and cover counts from completed orders.
type SalesRepository struct {
	db *pgxpool.Pool
}

// NewSalesRepository creates a SalesRepository
func NewSalesRepository(db *pgxpool.Pool) sales.Repository {
	return &SalesRepository{db: db}
}

func (r *SalesRepository) TodaySummary(ctx context.Context, restaurantID string) (*sales.DailySummary, error) {
	summary := &sales.DailySummary{}

	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM invoices
		WHERE restaurant_id = $1 AND status = 'PAID' AND generated_at::date = CURRENT_DATE
	`, restaurantID).Scan(&summary.Revenue)
	if err != nil {
		return nil, fmt.Errorf("error reading today's revenue: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(covers), 0)
		FROM orders
		WHERE restaurant_id = $1 AND status IN ('COMPLETED', 'SERVED') AND created_at::date = CURRENT_DATE
	`, restaurantID).Scan(&summary.Orders, &summary.Covers)
	if err != nil {
		return nil, fmt.Errorf("error reading today's orders: %w", err)
	}

	return summary, nil
}

func (r *SalesRepository) TopSellers(ctx context.Context, restaurantID string, limit int) ([]sales.ItemSales, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := r.db.Query(ctx, `
		SELECT oi.item_name, SUM(oi.quantity)::int, COALESCE(SUM(oi.quantity * oi.unit_price), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.restaurant_id = $1
		  AND o.status IN ('COMPLETED', 'SERVED')
		  AND o.created_at::date = CURRENT_DATE
		GROUP BY oi.item_name
		ORDER BY SUM(oi.quantity) DESC, oi.item_name
		LIMIT $2
	`, restaurantID, limit)
	if err != nil {
		return nil, fmt.Errorf("error reading top sellers: %w", err)
	}
	defer rows.Close()

	var items []sales.ItemSales
	for rows.Next() {
		var item sales.ItemSales
		if err := rows.Scan(&item.Name, &item.Quantity, &item.Revenue); err != nil {
			return nil, fmt.Errorf("error reading top seller row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
