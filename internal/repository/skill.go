package repository

import (
	"context"
	"errors"

	"github.com/atelierware/folio/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SkillRepository struct {
	db dbtx
}

func NewSkillRepository(pool *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{db: pool}
}

func (r *SkillRepository) Create(ctx context.Context, s *domain.Skill) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, category, level, display_order, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.Name, s.Category, s.Level, s.DisplayOrder, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *SkillRepository) GetByID(ctx context.Context, id string) (*domain.Skill, error) {
	var s domain.Skill
	var level string
	err := r.db.QueryRow(ctx,
		`SELECT id, name, category, level, display_order, created_at, updated_at
		 FROM skills WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Name, &s.Category, &level, &s.DisplayOrder, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSkillNotFound
		}
		return nil, err
	}
	s.Level = domain.SkillLevel(level)
	return &s, nil
}

func (r *SkillRepository) List(ctx context.Context) ([]*domain.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, level, display_order, created_at, updated_at
		 FROM skills ORDER BY display_order, name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []*domain.Skill
	for rows.Next() {
		var s domain.Skill
		var level string
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &level, &s.DisplayOrder, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.Level = domain.SkillLevel(level)
		skills = append(skills, &s)
	}
	return skills, rows.Err()
}

func (r *SkillRepository) Update(ctx context.Context, s *domain.Skill) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE skills SET name = $1, category = $2, level = $3, display_order = $4, updated_at = $5
		 WHERE id = $6`,
		s.Name, s.Category, s.Level, s.DisplayOrder, s.UpdatedAt, s.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrSkillNotFound
	}
	return nil
}

func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM skills WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrSkillNotFound
	}
	return nil
}
