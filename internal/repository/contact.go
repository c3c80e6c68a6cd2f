package repository

import (
	"context"

	"github.com/atelierware/folio/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContactRepository struct {
	db dbtx
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{db: pool}
}

func (r *ContactRepository) Create(ctx context.Context, m *domain.ContactMessage) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO contact_messages (id, name, email, body, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.Name, m.Email, m.Body, m.Read, m.CreatedAt,
	)
	return err
}

func (r *ContactRepository) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, body, read, created_at
		 FROM contact_messages ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

func (r *ContactRepository) MarkRead(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE contact_messages SET read = TRUE WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM contact_messages WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}
