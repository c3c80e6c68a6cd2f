package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Project represents a portfolio project shown on the public site.
type Project struct {
	ID          string
	Title       string
	Slug        string
	Summary     string
	Description string
	Tags        []string
	ImageKey    string // S3 object key, empty when no image uploaded
	RepoURL     string
	LiveURL     string
	Featured    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateProject validates a Project instance.
func ValidateProject(p *Project) error {
	if p == nil {
		return fmt.Errorf("project cannot be nil")
	}

	if p.ID == "" {
		return fmt.Errorf("project ID is required")
	}

	if p.Title == "" {
		return fmt.Errorf("project Title is required")
	}

	if p.Slug == "" {
		return fmt.Errorf("project Slug is required")
	}

	if !slugPattern.MatchString(p.Slug) {
		return fmt.Errorf("project Slug is invalid: %s", p.Slug)
	}

	return nil
}
