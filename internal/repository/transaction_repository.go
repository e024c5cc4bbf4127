package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/digimonhq/digimon-service/internal/domain"
	"github.com/digimonhq/digimon-service/pkg/database"
)

// transactionRepository implements TransactionRepository interface
type transactionRepository struct {
	db *database.Postgres
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.Postgres) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create creates a new transaction and fills in its generated ID
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (sender, receiver, amount)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.DB.QueryRowContext(ctx, query, tx.Sender, tx.Receiver, tx.Amount).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `
		SELECT id, sender, receiver, amount
		FROM transactions
		WHERE id = $1
	`

	tx := &domain.Transaction{}
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&tx.ID,
		&tx.Sender,
		&tx.Receiver,
		&tx.Amount,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %d not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return tx, nil
}

// Update replaces the mutable fields of an existing transaction
func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET sender = $2, receiver = $3, amount = $4
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query, tx.ID, tx.Sender, tx.Receiver, tx.Amount)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return checkAffected(result, tx.ID)
}

// Delete removes a transaction
func (r *transactionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return checkAffected(result, id)
}

// List returns one page of transactions plus the total row count
func (r *transactionRepository) List(ctx context.Context, page, pageSize int) ([]*domain.Transaction, int, error) {
	query := `
		SELECT id, sender, receiver, amount
		FROM transactions
		ORDER BY id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.DB.QueryContext(ctx, query, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]*domain.Transaction, 0, pageSize)
	for rows.Next() {
		tx := &domain.Transaction{}
		if err := rows.Scan(&tx.ID, &tx.Sender, &tx.Receiver, &tx.Amount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	var total int
	if err := r.db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return txs, total, nil
}
