package store

import (
	"context"
	"fmt"

	"legacy_m/pkg/core/corpus"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PassagesRepo stores the scripture passage corpus.
type PassagesRepo struct {
	pool *pgxpool.Pool
}

func NewPassagesRepo(pool *pgxpool.Pool) *PassagesRepo {
	return &PassagesRepo{pool: pool}
}

// GetPassages returns a confession's passages ordered by id, i.e. corpus
// insertion order — the retrieval tie-breaker depends on it.
func (r *PassagesRepo) GetPassages(ctx context.Context, confession string) ([]corpus.Passage, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT confession, reference, text FROM passages WHERE confession = $1 ORDER BY id`,
		confession,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query passages: %w", err)
	}
	defer rows.Close()

	var out []corpus.Passage
	for rows.Next() {
		var p corpus.Passage
		if err := rows.Scan(&p.Confession, &p.Reference, &p.Text); err != nil {
			return nil, fmt.Errorf("failed to scan passage row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetAllPassages loads the entire corpus, ordered by id.
func (r *PassagesRepo) GetAllPassages(ctx context.Context) ([]corpus.Passage, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT confession, reference, text FROM passages ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query passages: %w", err)
	}
	defer rows.Close()

	var out []corpus.Passage
	for rows.Next() {
		var p corpus.Passage
		if err := rows.Scan(&p.Confession, &p.Reference, &p.Text); err != nil {
			return nil, fmt.Errorf("failed to scan passage row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SavePassages appends passages in order. Used by cmd/loadcorpus.
func (r *PassagesRepo) SavePassages(ctx context.Context, passages []corpus.Passage) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range passages {
		if _, err := tx.Exec(ctx,
			`INSERT INTO passages (confession, reference, text) VALUES ($1, $2, $3)`,
			p.Confession, p.Reference, p.Text,
		); err != nil {
			return fmt.Errorf("failed to insert passage %s: %w", p.Reference, err)
		}
	}

	return tx.Commit(ctx)
}
