package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/digimonhq/digimon-service/internal/domain"
	"github.com/digimonhq/digimon-service/pkg/database"
)

// walletRepository implements WalletRepository interface
type walletRepository struct {
	db *database.Postgres
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *database.Postgres) WalletRepository {
	return &walletRepository{db: db}
}

// Create creates a new wallet and fills in its generated ID
func (r *walletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		INSERT INTO wallets (owner, balance)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.DB.QueryRowContext(ctx, query, wallet.Owner, wallet.Balance).Scan(&wallet.ID)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}

	return nil
}

// GetByID retrieves a wallet by ID
func (r *walletRepository) GetByID(ctx context.Context, id int64) (*domain.Wallet, error) {
	query := `
		SELECT id, owner, balance
		FROM wallets
		WHERE id = $1
	`

	wallet := &domain.Wallet{}
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&wallet.ID,
		&wallet.Owner,
		&wallet.Balance,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("wallet %d not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	return wallet, nil
}

// Update replaces the mutable fields of an existing wallet
func (r *walletRepository) Update(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		UPDATE wallets
		SET owner = $2, balance = $3
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query, wallet.ID, wallet.Owner, wallet.Balance)
	if err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}

	return checkAffected(result, wallet.ID)
}

// Delete removes a wallet
func (r *walletRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM wallets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}

	return checkAffected(result, id)
}

// List returns one page of wallets plus the total row count
func (r *walletRepository) List(ctx context.Context, page, pageSize int) ([]*domain.Wallet, int, error) {
	query := `
		SELECT id, owner, balance
		FROM wallets
		ORDER BY id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.DB.QueryContext(ctx, query, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer rows.Close()

	wallets := make([]*domain.Wallet, 0, pageSize)
	for rows.Next() {
		wallet := &domain.Wallet{}
		if err := rows.Scan(&wallet.ID, &wallet.Owner, &wallet.Balance); err != nil {
			return nil, 0, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets = append(wallets, wallet)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate wallets: %w", err)
	}

	var total int
	if err := r.db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM wallets`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count wallets: %w", err)
	}

	return wallets, total, nil
}
