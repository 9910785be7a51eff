package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/menu"
)

const itemColumns = `i.id, i.restaurant_id, i.category_id, COALESCE(c.name, ''), i.name,
	COALESCE(i.description, ''), COALESCE(i.short_code, ''), i.base_price,
	i.is_available, i.is_active, i.display_order, i.created_at, i.updated_at`

// MenuRepository is the pgx implementation of menu.Repository
type MenuRepository struct {
	db *pgxpool.Pool
}

// NewMenuRepository creates a MenuRepository
func NewMenuRepository(db *pgxpool.Pool) menu.Repository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) ListCategories(ctx context.Context, restaurantID string) ([]menu.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, restaurant_id, name, COALESCE(description, ''), display_order, is_active, created_at, updated_at
		FROM categories
		WHERE restaurant_id = $1 AND is_active
		ORDER BY display_order, name
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	defer rows.Close()

	var categories []menu.Category
	for rows.Next() {
		var c menu.Category
		if err := rows.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.Description, &c.DisplayOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error reading category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *MenuRepository) ListItems(ctx context.Context, restaurantID, categoryID string) ([]menu.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM menu_items i
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE i.restaurant_id = $1 AND i.is_active
	`, itemColumns)
	args := []interface{}{restaurantID}

	if categoryID != "" {
		query += " AND i.category_id = $2"
		args = append(args, categoryID)
	}
	query += " ORDER BY i.display_order, i.name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing menu items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *MenuRepository) FindItemsByCategoryNameOrIDs(ctx context.Context, restaurantID, target string) ([]menu.Item, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM menu_items i
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE i.restaurant_id = $1 AND i.is_active
		  AND (i.name ILIKE '%%' || $2 || '%%' OR c.name ILIKE '%%' || $2 || '%%')
		ORDER BY i.display_order, i.name
	`, itemColumns), restaurantID, target)
	if err != nil {
		return nil, fmt.Errorf("error finding menu items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *MenuRepository) FindItemsByNameSubstrings(ctx context.Context, restaurantID string, names []string) ([]menu.Item, error) {
	if len(names) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(names))
	args := []interface{}{restaurantID}
	for _, name := range names {
		args = append(args, name)
		conditions = append(conditions, fmt.Sprintf("i.name ILIKE '%%' || $%d || '%%'", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM menu_items i
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE i.restaurant_id = $1 AND i.is_active AND (%s)
		ORDER BY i.display_order, i.name
	`, itemColumns, strings.Join(conditions, " OR "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error finding menu items by name: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *MenuRepository) ApplyPriceUpdates(ctx context.Context, restaurantID string, updates []menu.PriceUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	count := 0
	for _, update := range updates {
		tag, err := tx.Exec(ctx, `
			UPDATE menu_items
			SET base_price = $1, updated_at = NOW()
			WHERE id = $2 AND restaurant_id = $3
		`, update.NewPrice, update.ItemID, restaurantID)
		if err != nil {
			return 0, fmt.Errorf("error updating price of item %s: %w", update.ItemID, err)
		}
		count += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing price updates: %w", err)
	}
	return count, nil
}

func (r *MenuRepository) SetAvailability(ctx context.Context, restaurantID string, itemIDs []string, available bool) ([]menu.Item, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		WITH updated AS (
			UPDATE menu_items
			SET is_available = $1, updated_at = NOW()
			WHERE restaurant_id = $2 AND id = ANY($3)
			RETURNING *
		)
		SELECT %s
		FROM updated i
		LEFT JOIN categories c ON c.id = i.category_id
		ORDER BY i.name
	`, itemColumns), available, restaurantID, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("error updating availability: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]menu.Item, error) {
	var items []menu.Item
	for rows.Next() {
		var item menu.Item
		if err := rows.Scan(
			&item.ID,
			&item.RestaurantID,
			&item.CategoryID,
			&item.CategoryName,
			&item.Name,
			&item.Description,
			&item.ShortCode,
			&item.BasePrice,
			&item.IsAvailable,
			&item.IsActive,
			&item.DisplayOrder,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error reading menu item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
