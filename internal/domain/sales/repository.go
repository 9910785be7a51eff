package sales

import "context"

// Repository defines the read-only aggregation queries used by the assistant
type Repository interface {
	// TodaySummary returns today's paid revenue, order count and covers
	TodaySummary(ctx context.Context, restaurantID string) (*DailySummary, error)

	// TopSellers returns today's best selling items by quantity, limited to
	// the given number of rows
	TopSellers(ctx context.Context, restaurantID string, limit int) ([]ItemSales, error)
}
