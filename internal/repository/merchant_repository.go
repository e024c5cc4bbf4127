package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/digimonhq/digimon-service/internal/domain"
	"github.com/digimonhq/digimon-service/pkg/database"
)

// merchantRepository implements MerchantRepository interface
type merchantRepository struct {
	db *database.Postgres
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *database.Postgres) MerchantRepository {
	return &merchantRepository{db: db}
}

// Create creates a new merchant and fills in its generated ID
func (r *merchantRepository) Create(ctx context.Context, merchant *domain.Merchant) error {
	query := `
		INSERT INTO merchants (name, description, tax_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.DB.QueryRowContext(ctx, query,
		merchant.Name,
		merchant.Description,
		merchant.TaxID,
		merchant.UserID,
	).Scan(&merchant.ID)

	if err != nil {
		return fmt.Errorf("failed to create merchant: %w", err)
	}

	return nil
}

// GetByID retrieves a merchant by ID
func (r *merchantRepository) GetByID(ctx context.Context, id int64) (*domain.Merchant, error) {
	query := `
		SELECT id, name, description, tax_id, user_id
		FROM merchants
		WHERE id = $1
	`

	merchant := &domain.Merchant{}
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&merchant.ID,
		&merchant.Name,
		&merchant.Description,
		&merchant.TaxID,
		&merchant.UserID,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("merchant %d not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get merchant: %w", err)
	}

	return merchant, nil
}

// Update replaces the mutable fields of an existing merchant
func (r *merchantRepository) Update(ctx context.Context, merchant *domain.Merchant) error {
	query := `
		UPDATE merchants
		SET name = $2, description = $3, tax_id = $4
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		merchant.ID,
		merchant.Name,
		merchant.Description,
		merchant.TaxID,
	)

	if err != nil {
		return fmt.Errorf("failed to update merchant: %w", err)
	}

	return checkAffected(result, merchant.ID)
}

// Delete removes a merchant
func (r *merchantRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM merchants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete merchant: %w", err)
	}

	return checkAffected(result, id)
}

// List returns one page of merchants plus the total row count
func (r *merchantRepository) List(ctx context.Context, page, pageSize int) ([]*domain.Merchant, int, error) {
	query := `
		SELECT id, name, description, tax_id, user_id
		FROM merchants
		ORDER BY id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.DB.QueryContext(ctx, query, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list merchants: %w", err)
	}
	defer rows.Close()

	merchants := make([]*domain.Merchant, 0, pageSize)
	for rows.Next() {
		merchant := &domain.Merchant{}
		if err := rows.Scan(
			&merchant.ID,
			&merchant.Name,
			&merchant.Description,
			&merchant.TaxID,
			&merchant.UserID,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan merchant: %w", err)
		}
		merchants = append(merchants, merchant)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate merchants: %w", err)
	}

	var total int
	if err := r.db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM merchants`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count merchants: %w", err)
	}

	return merchants, total, nil
}
