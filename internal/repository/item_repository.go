package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/digimonhq/digimon-service/internal/domain"
	"github.com/digimonhq/digimon-service/pkg/database"
)

// itemRepository implements ItemRepository interface
type itemRepository struct {
	db *database.Postgres
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *database.Postgres) ItemRepository {
	return &itemRepository{db: db}
}

// Create creates a new item and fills in its generated ID
func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (name, description, price, tax, merchant_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.DB.QueryRowContext(ctx, query,
		item.Name,
		item.Description,
		item.Price,
		item.Tax,
		item.MerchantID,
		item.UserID,
	).Scan(&item.ID)

	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// GetByID retrieves an item by ID
func (r *itemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	query := `
		SELECT id, name, description, price, tax, merchant_id, user_id
		FROM items
		WHERE id = $1
	`

	item := &domain.Item{}
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Tax,
		&item.MerchantID,
		&item.UserID,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %d not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// Update replaces the mutable fields of an existing item
func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	query := `
		UPDATE items
		SET name = $2, description = $3, price = $4, tax = $5, merchant_id = $6
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Price,
		item.Tax,
		item.MerchantID,
	)

	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	return checkAffected(result, item.ID)
}

// Delete removes an item
func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return checkAffected(result, id)
}

// List returns one page of items plus the total row count
func (r *itemRepository) List(ctx context.Context, page, pageSize int) ([]*domain.Item, int, error) {
	query := `
		SELECT id, name, description, price, tax, merchant_id, user_id
		FROM items
		ORDER BY id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.DB.QueryContext(ctx, query, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.Item, 0, pageSize)
	for rows.Next() {
		item := &domain.Item{}
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.Tax,
			&item.MerchantID,
			&item.UserID,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate items: %w", err)
	}

	var total int
	if err := r.db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	return items, total, nil
}
