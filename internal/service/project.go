package service

import (
	"context"
	"time"

	"github.com/atelierware/folio/internal/domain"
	"github.com/atelierware/folio/internal/pagination"
	"github.com/atelierware/folio/internal/telemetry"
)

// ProjectRepositoryInterface defines the repository interface for project persistence
type ProjectRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Project, error)
	ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) (*ProjectPageResult, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// ProjectPageResult is one page of projects.
type ProjectPageResult struct {
	Items      []*domain.Project
	NextCursor string
	HasMore    bool
}

// ProjectService handles business logic for portfolio projects
type ProjectService struct {
	repo    ProjectRepositoryInterface
	uuidGen UUIDGenerator
}

// NewProjectService creates a new ProjectService instance
func NewProjectService(repo ProjectRepositoryInterface) *ProjectService {
	return NewProjectServiceWithUUIDGen(repo, &DefaultUUIDGenerator{})
}

// NewProjectServiceWithUUIDGen creates a new ProjectService with custom UUID generator (for testing)
func NewProjectServiceWithUUIDGen(repo ProjectRepositoryInterface, uuidGen UUIDGenerator) *ProjectService {
	return &ProjectService{repo: repo, uuidGen: uuidGen}
}

// ProjectInput represents the input for creating or updating a project
type ProjectInput struct {
	Title       string
	Slug        string
	Summary     string
	Description string
	Tags        []string
	ImageKey    string
	RepoURL     string
	LiveURL     string
	Featured    bool
}

// ListProjectsInput represents the input for listing projects
type ListProjectsInput struct {
	Cursor string
	Limit  int
}

// ListProjectsOutput represents one page of listed projects
type ListProjectsOutput struct {
	Items   []*domain.Project
	Cursor  string
	HasMore bool
}

// Create creates a new project
func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*domain.Project, error) {
	ctx, span := telemetry.StartSpan(ctx, "ProjectService.Create", telemetry.SpanAttributes{
		Operation: "create_project",
	})
	defer span.End()

	now := time.Now().UTC()
	project := &domain.Project{
		ID:          s.uuidGen.NewString(),
		Title:       input.Title,
		Slug:        input.Slug,
		Summary:     input.Summary,
		Description: input.Description,
		Tags:        input.Tags,
		ImageKey:    input.ImageKey,
		RepoURL:     input.RepoURL,
		LiveURL:     input.LiveURL,
		Featured:    input.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := domain.ValidateProject(project); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid project", err)
	}

	if err := s.repo.Create(ctx, project); err != nil {
		span.SetError(err)
		return nil, err
	}

	return project, nil
}

// GetByID retrieves a project by ID
func (s *ProjectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug retrieves a project by its public slug
func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// List retrieves a page of projects, newest first
func (s *ProjectService) List(ctx context.Context, input ListProjectsInput) (*ListProjectsOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "ProjectService.List", telemetry.SpanAttributes{
		Operation: "list_projects",
	})
	defer span.End()

	cursor, _ := pagination.DecodeCursor(input.Cursor)
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	result, err := s.repo.ListWithCursor(ctx, cursor, limit)
	if err != nil {
		return nil, err
	}

	return &ListProjectsOutput{
		Items:   result.Items,
		Cursor:  result.NextCursor,
		HasMore: result.HasMore,
	}, nil
}

// Update edits an existing project
func (s *ProjectService) Update(ctx context.Context, id string, input ProjectInput) (*domain.Project, error) {
	ctx, span := telemetry.StartSpan(ctx, "ProjectService.Update", telemetry.SpanAttributes{
		Operation: "update_project",
	})
	defer span.End()

	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Title = input.Title
	project.Slug = input.Slug
	project.Summary = input.Summary
	project.Description = input.Description
	project.Tags = input.Tags
	project.ImageKey = input.ImageKey
	project.RepoURL = input.RepoURL
	project.LiveURL = input.LiveURL
	project.Featured = input.Featured
	project.UpdatedAt = time.Now().UTC()

	if err := domain.ValidateProject(project); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid project", err)
	}

	if err := s.repo.Update(ctx, project); err != nil {
		span.SetError(err)
		return nil, err
	}

	return project, nil
}

// Delete removes a project
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "ProjectService.Delete", telemetry.SpanAttributes{
		Operation: "delete_project",
	})
	defer span.End()

	return s.repo.Delete(ctx, id)
}
