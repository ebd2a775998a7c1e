package store

import (
	"context"
	"fmt"

	"legacy_m/pkg/core/statement"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionsRepo stores parsed bank statement transactions.
type TransactionsRepo struct {
	pool *pgxpool.Pool
}

func NewTransactionsRepo(pool *pgxpool.Pool) *TransactionsRepo {
	return &TransactionsRepo{pool: pool}
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Category string
	Bank     string
}

// SaveAll inserts one upload's transactions inside a single database
// transaction: a failure mid-file leaves no rows behind (all-or-nothing per
// file).
func (r *TransactionsRepo) SaveAll(ctx context.Context, txns []statement.Transaction) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO transactions (date, description, amount, category, bank, source_file)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, t := range txns {
		if _, err := tx.Exec(ctx, query,
			t.Date, t.Description, t.Amount, t.Category, t.Bank, t.SourceFile,
		); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ListAll returns every stored transaction ordered by date then id. The
// aggregator works over this set.
func (r *TransactionsRepo) ListAll(ctx context.Context) ([]statement.Transaction, error) {
	return r.List(ctx, ListFilter{})
}

// List returns matching transactions ordered by date then id.
func (r *TransactionsRepo) List(ctx context.Context, filter ListFilter) ([]statement.Transaction, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `SELECT id, date, description, amount, category, bank, source_file FROM transactions WHERE 1=1`
	args := []interface{}{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Bank != "" {
		args = append(args, filter.Bank)
		query += fmt.Sprintf(" AND bank = $%d", len(args))
	}
	query += " ORDER BY date, id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var out []statement.Transaction
	for rows.Next() {
		var t statement.Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Description, &t.Amount, &t.Category, &t.Bank, &t.SourceFile); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateCategory reassigns one transaction's category (manual correction
// from the UI).
func (r *TransactionsRepo) UpdateCategory(ctx context.Context, id int64, category string) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE transactions SET category = $1 WHERE id = $2`, category, id)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %d not found", id)
	}
	return nil
}

// Reset deletes all stored transactions. Explicit data-reset only; normal
// operation never deletes rows.
func (r *TransactionsRepo) Reset(ctx context.Context) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM transactions`)
	if err != nil {
		return fmt.Errorf("failed to reset transactions: %w", err)
	}
	return nil
}
