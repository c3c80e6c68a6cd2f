package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptBuilder_Build(t *testing.T) {
	t.Run("includes the grounding instruction and the query", func(t *testing.T) {
		prompt := BuildPrompt("What databases do you use?", []string{"Mostly PostgreSQL."})

		assert.Contains(t, prompt, "Answer ONLY using the context")
		assert.Contains(t, prompt, "not documented")
		assert.Contains(t, prompt, "Question: What databases do you use?")
		assert.True(t, strings.HasSuffix(prompt, "Answer:"))
	})

	t.Run("passes context through verbatim and in order", func(t *testing.T) {
		contents := []string{"First section, untouched.", "Second section, untouched."}
		prompt := BuildPrompt("q", contents)

		first := strings.Index(prompt, contents[0])
		second := strings.Index(prompt, contents[1])
		assert.Greater(t, first, -1)
		assert.Greater(t, second, first)
	})

	t.Run("keeps the context markers when nothing was retrieved", func(t *testing.T) {
		prompt := BuildPrompt("Do you speak French?", nil)

		assert.Contains(t, prompt, "--- CONTEXT START ---")
		assert.Contains(t, prompt, "--- CONTEXT END ---")
		assert.Contains(t, prompt, "Answer ONLY using the context")
	})

	t.Run("context sits between the markers", func(t *testing.T) {
		prompt := BuildPrompt("q", []string{"inside the fence"})

		open := strings.Index(prompt, "--- CONTEXT START ---")
		body := strings.Index(prompt, "inside the fence")
		end := strings.Index(prompt, "--- CONTEXT END ---")
		assert.True(t, open < body && body < end)
	})

	t.Run("custom persona replaces the default", func(t *testing.T) {
		b := NewPromptBuilder("the portfolio of Ada, a systems engineer")
		prompt := b.Build("q", nil)

		assert.Contains(t, prompt, "You are the portfolio of Ada, a systems engineer.")
		assert.NotContains(t, prompt, DefaultPersona)
	})

	t.Run("blank persona falls back to the default", func(t *testing.T) {
		b := NewPromptBuilder("   ")

		assert.Equal(t, DefaultPersona, b.Persona)
	})

	t.Run("is deterministic for identical inputs", func(t *testing.T) {
		a := BuildPrompt("same question", []string{"same context"})
		b := BuildPrompt("same question", []string{"same context"})

		assert.Equal(t, a, b)
	})
}
