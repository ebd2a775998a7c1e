package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatMessage is one completed chat turn. Append-only.
type ChatMessage struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"user_id"`
	Confession string    `json:"confession"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChatRepo stores the chat history.
type ChatRepo struct {
	pool *pgxpool.Pool
}

func NewChatRepo(pool *pgxpool.Pool) *ChatRepo {
	return &ChatRepo{pool: pool}
}

// Append records a completed turn.
func (r *ChatRepo) Append(ctx context.Context, msg ChatMessage) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO chat_messages (id, user_id, confession, question, answer) VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.UserID, msg.Confession, msg.Question, msg.Answer,
	)
	if err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// RecentHistory returns the user's latest n turns within one confession,
// oldest first, ready to feed into the provider request as history.
func (r *ChatRepo) RecentHistory(ctx context.Context, userID, confession string, n int) ([]ChatMessage, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, confession, question, answer, created_at
		FROM chat_messages
		WHERE user_id = $1 AND confession = $2
		ORDER BY created_at DESC
		LIMIT $3
	`, userID, confession, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	var out []ChatMessage
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.Confession, &m.Question, &m.Answer, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// reverse newest-first to oldest-first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
