package repository

import (
	"context"

	"github.com/atelierware/folio/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConversationRepository logs assistant exchanges for later review.
type ConversationRepository struct {
	db dbtx
}

func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{db: pool}
}

func (r *ConversationRepository) Create(ctx context.Context, c *domain.Conversation) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO conversations (id, query, reply, retrieval_method, chunks_used, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Query, c.Reply, c.RetrievalMethod, c.ChunksUsed, c.CreatedAt,
	)
	return err
}

func (r *ConversationRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, query, reply, retrieval_method, chunks_used, created_at
		 FROM conversations ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []*domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.Query, &c.Reply, &c.RetrievalMethod, &c.ChunksUsed, &c.CreatedAt); err != nil {
			return nil, err
		}
		conversations = append(conversations, &c)
	}
	return conversations, rows.Err()
}
