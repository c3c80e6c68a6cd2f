package service

import (
	"context"
	"strings"
	"time"

	"github.com/atelierware/folio/internal/domain"
)

// SettingsRepositoryInterface defines the repository interface for site settings
type SettingsRepositoryInterface interface {
	GetOrCreate(ctx context.Context) (*domain.SiteSettings, error)
	Update(ctx context.Context, s *domain.SiteSettings) error
}

// SettingsService manages the single-row site configuration. Settings
// are fetched through an idempotent get-or-create, so a fresh database
// always yields usable defaults without any separate seeding step.
type SettingsService struct {
	repo SettingsRepositoryInterface
}

// NewSettingsService creates a new SettingsService instance
func NewSettingsService(repo SettingsRepositoryInterface) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the current settings, creating defaults when none exist.
func (s *SettingsService) Get(ctx context.Context) (*domain.SiteSettings, error) {
	return s.repo.GetOrCreate(ctx)
}

// UpdateSettingsInput represents the input for updating site settings
type UpdateSettingsInput struct {
	SiteTitle        string
	Tagline          string
	OwnerName        string
	AssistantPersona string
	ProfileDocument  string
}

// Update replaces the settings row.
func (s *SettingsService) Update(ctx context.Context, input UpdateSettingsInput) (*domain.SiteSettings, error) {
	if strings.TrimSpace(input.SiteTitle) == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "site title is required")
	}

	settings := &domain.SiteSettings{
		SiteTitle:        input.SiteTitle,
		Tagline:          input.Tagline,
		OwnerName:        input.OwnerName,
		AssistantPersona: input.AssistantPersona,
		ProfileDocument:  input.ProfileDocument,
		UpdatedAt:        time.Now().UTC(),
	}

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// ProfileDocument implements the ingestion source: bulk ingestion reads
// the maintained profile text out of site settings.
func (s *SettingsService) ProfileDocument(ctx context.Context) (string, error) {
	settings, err := s.repo.GetOrCreate(ctx)
	if err != nil {
		return "", err
	}
	return settings.ProfileDocument, nil
}
