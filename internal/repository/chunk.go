package repository

import (
	"context"
	"errors"

	"github.com/atelierware/folio/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// ChunkRepository handles persistence of knowledge chunks and their
// embeddings.
type ChunkRepository struct {
	db dbtx
}

func NewChunkRepository(pool *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{db: pool}
}

func NewChunkRepositoryWithTx(tx pgx.Tx) *ChunkRepository {
	return &ChunkRepository{db: tx}
}

func (r *ChunkRepository) GetByID(ctx context.Context, id string) (*domain.KnowledgeChunk, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, title, content, category, embedding, created_at, updated_at
		 FROM knowledge_chunks WHERE id = $1`,
		id,
	)
	chunk, err := scanChunk(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChunkNotFound
		}
		return nil, err
	}
	return chunk, nil
}

func (r *ChunkRepository) FindAll(ctx context.Context) ([]*domain.KnowledgeChunk, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, content, category, embedding, created_at, updated_at
		 FROM knowledge_chunks ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*domain.KnowledgeChunk
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

func (r *ChunkRepository) Insert(ctx context.Context, c *domain.KnowledgeChunk) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO knowledge_chunks (id, title, content, category, embedding, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Title, c.Content, c.Category, nullableVector(c.Embedding), c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *ChunkRepository) InsertMany(ctx context.Context, chunks []*domain.KnowledgeChunk) error {
	for _, c := range chunks {
		if err := r.Insert(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *ChunkRepository) Update(ctx context.Context, c *domain.KnowledgeChunk) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE knowledge_chunks SET title = $1, content = $2, category = $3, embedding = $4, updated_at = $5
		 WHERE id = $6`,
		c.Title, c.Content, c.Category, nullableVector(c.Embedding), c.UpdatedAt, c.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrChunkNotFound
	}
	return nil
}

func (r *ChunkRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM knowledge_chunks WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrChunkNotFound
	}
	return nil
}

func (r *ChunkRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM knowledge_chunks`)
	return err
}

func scanChunk(row pgx.Row) (*domain.KnowledgeChunk, error) {
	var c domain.KnowledgeChunk
	var category string
	var vec *pgvector.Vector
	if err := row.Scan(&c.ID, &c.Title, &c.Content, &category, &vec, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Category = domain.ChunkCategory(category)
	if vec != nil {
		c.Embedding = domain.NewEmbedding(vec.Slice())
	} else {
		c.Embedding = domain.NoEmbedding()
	}
	return &c, nil
}

// nullableVector maps an absent embedding to SQL NULL so the column can
// distinguish "never embedded" from a zero vector.
func nullableVector(e domain.Embedding) *pgvector.Vector {
	if !e.Present() {
		return nil
	}
	v := pgvector.NewVector(e.Values())
	return &v
}
