package domain

import (
	"fmt"
	"time"
)

// ChunkCategory classifies a knowledge chunk by the kind of profile
// information it carries.
type ChunkCategory string

const (
	CategoryIdentity  ChunkCategory = "identity"
	CategorySkills    ChunkCategory = "skills"
	CategoryProjects  ChunkCategory = "projects"
	CategoryEducation ChunkCategory = "education"
	CategoryContact   ChunkCategory = "contact"
	CategoryOther     ChunkCategory = "other"
)

// KnowledgeChunk is the atomic unit of retrieval: a titled, categorized
// piece of profile text with an optional embedding vector.
type KnowledgeChunk struct {
	ID        string
	Title     string
	Content   string
	Category  ChunkCategory
	Embedding Embedding
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewKnowledgeChunk creates a new KnowledgeChunk instance.
func NewKnowledgeChunk(id, title, content string, category ChunkCategory, embedding Embedding, createdAt time.Time) *KnowledgeChunk {
	return &KnowledgeChunk{
		ID:        id,
		Title:     title,
		Content:   content,
		Category:  category,
		Embedding: embedding,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// ValidateChunk validates a KnowledgeChunk instance.
func ValidateChunk(c *KnowledgeChunk) error {
	if c == nil {
		return fmt.Errorf("chunk cannot be nil")
	}

	if c.ID == "" {
		return fmt.Errorf("chunk ID is required")
	}

	if c.Title == "" {
		return fmt.Errorf("chunk Title is required")
	}

	if c.Content == "" {
		return fmt.Errorf("chunk Content is required")
	}

	if !isValidChunkCategory(c.Category) {
		return fmt.Errorf("chunk Category is invalid: %s", c.Category)
	}

	return nil
}

// isValidChunkCategory checks if a ChunkCategory is valid.
func isValidChunkCategory(c ChunkCategory) bool {
	switch c {
	case CategoryIdentity, CategorySkills, CategoryProjects,
		CategoryEducation, CategoryContact, CategoryOther:
		return true
	}
	return false
}
