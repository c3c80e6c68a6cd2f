package repository

import (
	"context"
	"errors"

	"github.com/atelierware/folio/internal/domain"
	"github.com/atelierware/folio/internal/pagination"
	"github.com/atelierware/folio/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	db dbtx
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO projects (id, title, slug, summary, description, tags, image_key, repo_url, live_url, featured, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.Title, p.Slug, p.Summary, p.Description, p.Tags, nullableString(p.ImageKey), nullableString(p.RepoURL), nullableString(p.LiveURL), p.Featured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrProjectAlreadyExists
	}
	return err
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, title, slug, summary, description, tags, image_key, repo_url, live_url, featured, created_at, updated_at
		 FROM projects WHERE id = $1`,
		id,
	)
	return scanProject(row)
}

func (r *ProjectRepository) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, title, slug, summary, description, tags, image_key, repo_url, live_url, featured, created_at, updated_at
		 FROM projects WHERE slug = $1`,
		slug,
	)
	return scanProject(row)
}

func (r *ProjectRepository) ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) (*service.ProjectPageResult, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows pgx.Rows
	var err error

	if cursor != nil {
		rows, err = r.db.Query(ctx,
			`SELECT id, title, slug, summary, description, tags, image_key, repo_url, live_url, featured, created_at, updated_at
			 FROM projects
			 WHERE (updated_at, id) < ($1, $2)
			 ORDER BY updated_at DESC, id DESC
			 LIMIT $3`,
			cursor.Timestamp, cursor.LastID, limit+1,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, title, slug, summary, description, tags, image_key, repo_url, live_url, featured, created_at, updated_at
			 FROM projects
			 ORDER BY updated_at DESC, id DESC
			 LIMIT $1`,
			limit+1,
		)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Project
	for rows.Next() {
		p, err := scanProjectValues(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	var nextCursor string
	if hasMore && len(items) > 0 {
		lastItem := items[len(items)-1]
		nextCursor = pagination.EncodeCursor(lastItem.ID, lastItem.UpdatedAt)
	}

	return &service.ProjectPageResult{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE projects SET title = $1, slug = $2, summary = $3, description = $4, tags = $5, image_key = $6, repo_url = $7, live_url = $8, featured = $9, updated_at = $10
		 WHERE id = $11`,
		p.Title, p.Slug, p.Summary, p.Description, p.Tags, nullableString(p.ImageKey), nullableString(p.RepoURL), nullableString(p.LiveURL), p.Featured, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM projects WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	p, err := scanProjectValues(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanProjectValues(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	var imageKey, repoURL, liveURL *string
	if err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Description, &p.Tags, &imageKey, &repoURL, &liveURL, &p.Featured, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if imageKey != nil {
		p.ImageKey = *imageKey
	}
	if repoURL != nil {
		p.RepoURL = *repoURL
	}
	if liveURL != nil {
		p.LiveURL = *liveURL
	}
	return &p, nil
}
