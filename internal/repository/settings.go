package repository

import (
	"context"
	"errors"
	"time"

	"github.com/atelierware/folio/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepository persists the single site settings row. The table
// carries a fixed primary key so there is never more than one row.
type SettingsRepository struct {
	db dbtx
}

const settingsRowID = 1

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: pool}
}

// GetOrCreate returns the settings row, inserting the defaults when the
// table is empty. The insert uses ON CONFLICT DO NOTHING so concurrent
// first reads both succeed.
func (r *SettingsRepository) GetOrCreate(ctx context.Context) (*domain.SiteSettings, error) {
	settings, err := r.get(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	defaults := domain.DefaultSiteSettings()
	defaults.UpdatedAt = time.Now().UTC()
	_, err = r.db.Exec(ctx,
		`INSERT INTO site_settings (id, site_title, tagline, owner_name, assistant_persona, profile_document, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO NOTHING`,
		settingsRowID, defaults.SiteTitle, defaults.Tagline, defaults.OwnerName, defaults.AssistantPersona, defaults.ProfileDocument, defaults.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return r.get(ctx)
}

func (r *SettingsRepository) Update(ctx context.Context, s *domain.SiteSettings) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO site_settings (id, site_title, tagline, owner_name, assistant_persona, profile_document, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
			site_title = EXCLUDED.site_title,
			tagline = EXCLUDED.tagline,
			owner_name = EXCLUDED.owner_name,
			assistant_persona = EXCLUDED.assistant_persona,
			profile_document = EXCLUDED.profile_document,
			updated_at = EXCLUDED.updated_at`,
		settingsRowID, s.SiteTitle, s.Tagline, s.OwnerName, s.AssistantPersona, s.ProfileDocument, s.UpdatedAt,
	)
	return err
}

func (r *SettingsRepository) get(ctx context.Context) (*domain.SiteSettings, error) {
	var s domain.SiteSettings
	err := r.db.QueryRow(ctx,
		`SELECT site_title, tagline, owner_name, assistant_persona, profile_document, updated_at
		 FROM site_settings WHERE id = $1`,
		settingsRowID,
	).Scan(&s.SiteTitle, &s.Tagline, &s.OwnerName, &s.AssistantPersona, &s.ProfileDocument, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
