package service

import (
	"testing"

	"github.com/atelierware/folio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitProfileDocument(t *testing.T) {
	t.Run("splits sections on heading markers", func(t *testing.T) {
		doc := "# About Me\nI build backend systems.\n\n# My Skills\nGo, PostgreSQL, Docker."

		sections := splitProfileDocument(doc)

		require.Len(t, sections, 2)
		assert.Equal(t, "About Me", sections[0].Title)
		assert.Equal(t, "I build backend systems.", sections[0].Content)
		assert.Equal(t, "My Skills", sections[1].Title)
		assert.Equal(t, "Go, PostgreSQL, Docker.", sections[1].Content)
	})

	t.Run("drops sections with empty bodies", func(t *testing.T) {
		doc := "# Title With No Body\n\n# Skills\nPython, Go"

		sections := splitProfileDocument(doc)

		require.Len(t, sections, 1)
		assert.Equal(t, "Skills", sections[0].Title)
		assert.Equal(t, "Python, Go", sections[0].Content)
	})

	t.Run("drops whitespace-only bodies", func(t *testing.T) {
		doc := "# Whitespace Section\n   \n\t\n# Education Background\nBSc Computer Science"

		sections := splitProfileDocument(doc)

		require.Len(t, sections, 1)
		assert.Equal(t, "Education Background", sections[0].Title)
	})

	t.Run("discards boundaries shorter than the noise threshold", func(t *testing.T) {
		doc := "# A\n\n# Project Work\nBuilt a search engine."

		sections := splitProfileDocument(doc)

		require.Len(t, sections, 1)
		assert.Equal(t, "Project Work", sections[0].Title)
	})

	t.Run("strips emphasis markers from titles", func(t *testing.T) {
		tests := []struct {
			heading string
			want    string
		}{
			{"## **My Skills**", "My Skills"},
			{"### _Contact Info_", "Contact Info"},
			{"#`Education`", "Education"},
		}

		for _, tt := range tests {
			sections := splitProfileDocument(tt.heading + "\nEnough body text here.")

			require.Len(t, sections, 1)
			assert.Equal(t, tt.want, sections[0].Title)
		}
	})

	t.Run("handles nested heading levels", func(t *testing.T) {
		doc := "### Contact Details\nemail@example.com"

		sections := splitProfileDocument(doc)

		require.Len(t, sections, 1)
		assert.Equal(t, "Contact Details", sections[0].Title)
		assert.Equal(t, domain.CategoryContact, sections[0].Category)
	})

	t.Run("empty document yields no sections", func(t *testing.T) {
		assert.Empty(t, splitProfileDocument(""))
		assert.Empty(t, splitProfileDocument("   \n\n  "))
	})

	t.Run("multi-line bodies are kept intact", func(t *testing.T) {
		doc := "# Projects Overview\nFirst project line.\nSecond project line."

		sections := splitProfileDocument(doc)

		require.Len(t, sections, 1)
		assert.Equal(t, "First project line.\nSecond project line.", sections[0].Content)
	})
}

func TestClassifyTitle(t *testing.T) {
	tests := []struct {
		title string
		want  domain.ChunkCategory
	}{
		{"My Skills Overview", domain.CategorySkills},
		{"SKILLS", domain.CategorySkills},
		{"Who I Am", domain.CategoryIdentity},
		{"Identity", domain.CategoryIdentity},
		{"Side Projects", domain.CategoryProjects},
		{"Education Background", domain.CategoryEducation},
		{"Contact Details", domain.CategoryContact},
		{"Favourite Books", domain.CategoryOther},
		{"", domain.CategoryOther},
	}

	for _, tc := range tests {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyTitle(tc.title))
		})
	}

	t.Run("first matching rule wins for ambiguous titles", func(t *testing.T) {
		// "who" is ranked above "project", so an identity-flavored
		// title that also mentions projects stays identity.
		assert.Equal(t, domain.CategoryIdentity, classifyTitle("Who I Am and My Projects"))
		// Rule order, not title word order, decides.
		assert.Equal(t, domain.CategoryIdentity, classifyTitle("Projects of Who I Am"))
	})
}
