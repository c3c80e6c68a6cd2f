package service

import (
	"context"
	"time"

	"github.com/atelierware/folio/internal/domain"
)

// ContactRepositoryInterface defines the repository interface for contact messages
type ContactRepositoryInterface interface {
	Create(ctx context.Context, m *domain.ContactMessage) error
	List(ctx context.Context) ([]*domain.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ContactService handles contact form submissions and their admin view
type ContactService struct {
	repo    ContactRepositoryInterface
	uuidGen UUIDGenerator
}

// NewContactService creates a new ContactService instance
func NewContactService(repo ContactRepositoryInterface) *ContactService {
	return &ContactService{repo: repo, uuidGen: &DefaultUUIDGenerator{}}
}

// SubmitInput represents one contact form submission
type SubmitInput struct {
	Name  string
	Email string
	Body  string
}

// Submit stores a visitor message
func (s *ContactService) Submit(ctx context.Context, input SubmitInput) (*domain.ContactMessage, error) {
	msg := &domain.ContactMessage{
		ID:        s.uuidGen.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Body:      input.Body,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	if err := domain.ValidateContactMessage(msg); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid contact message", err)
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// List returns all messages, newest first
func (s *ContactService) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	return s.repo.List(ctx)
}

// MarkRead flags a message as read
func (s *ContactService) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

// Delete removes a message
func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
