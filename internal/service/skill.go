package service

import (
	"context"
	"time"

	"github.com/atelierware/folio/internal/domain"
)

// SkillRepositoryInterface defines the repository interface for skill persistence
type SkillRepositoryInterface interface {
	Create(ctx context.Context, s *domain.Skill) error
	GetByID(ctx context.Context, id string) (*domain.Skill, error)
	List(ctx context.Context) ([]*domain.Skill, error)
	Update(ctx context.Context, s *domain.Skill) error
	Delete(ctx context.Context, id string) error
}

// SkillService handles business logic for skills
type SkillService struct {
	repo    SkillRepositoryInterface
	uuidGen UUIDGenerator
}

// NewSkillService creates a new SkillService instance
func NewSkillService(repo SkillRepositoryInterface) *SkillService {
	return &SkillService{repo: repo, uuidGen: &DefaultUUIDGenerator{}}
}

// SkillInput represents the input for creating or updating a skill
type SkillInput struct {
	Name         string
	Category     string
	Level        domain.SkillLevel
	DisplayOrder int
}

// Create creates a new skill
func (s *SkillService) Create(ctx context.Context, input SkillInput) (*domain.Skill, error) {
	now := time.Now().UTC()
	skill := &domain.Skill{
		ID:           s.uuidGen.NewString(),
		Name:         input.Name,
		Category:     input.Category,
		Level:        input.Level,
		DisplayOrder: input.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := domain.ValidateSkill(skill); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid skill", err)
	}

	if err := s.repo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// List returns all skills in display order
func (s *SkillService) List(ctx context.Context) ([]*domain.Skill, error) {
	return s.repo.List(ctx)
}

// Update edits an existing skill
func (s *SkillService) Update(ctx context.Context, id string, input SkillInput) (*domain.Skill, error) {
	skill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	skill.Name = input.Name
	skill.Category = input.Category
	skill.Level = input.Level
	skill.DisplayOrder = input.DisplayOrder
	skill.UpdatedAt = time.Now().UTC()

	if err := domain.ValidateSkill(skill); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid skill", err)
	}

	if err := s.repo.Update(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// Delete removes a skill
func (s *SkillService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
