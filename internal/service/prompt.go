package service

import "strings"

// DefaultPersona describes the assistant's role when site settings do
// not override it.
const DefaultPersona = "a friendly assistant that answers questions about the portfolio owner"

const (
	contextOpen  = "--- CONTEXT START ---"
	contextClose = "--- CONTEXT END ---"
	answerCue    = "Answer:"
)

// groundingInstruction is the contract that keeps the model from
// hallucinating: it may only answer from the supplied context and must
// say so when the context has no answer. Enforcement is structural (it
// is what the model is fed), not post-hoc filtering of the reply.
const groundingInstruction = "Answer ONLY using the context between the markers below. " +
	"Do not use outside knowledge, and do not guess. " +
	"If the context does not contain the answer, reply that the information is not documented."

// PromptBuilder assembles grounded prompts for the assistant.
type PromptBuilder struct {
	Persona string
}

// NewPromptBuilder creates a PromptBuilder; an empty persona falls back
// to the default.
func NewPromptBuilder(persona string) *PromptBuilder {
	if strings.TrimSpace(persona) == "" {
		persona = DefaultPersona
	}
	return &PromptBuilder{Persona: persona}
}

// Build concatenates the policy header, the grounding instruction, the
// retrieved contents in the order supplied (ranking is retrieval's
// job), the user query, and the answer cue. When contents is empty the
// context section stays present but empty, which steers a compliant
// model toward a "not documented" answer.
func (b *PromptBuilder) Build(query string, contents []string) string {
	var sb strings.Builder

	sb.WriteString("You are ")
	sb.WriteString(b.Persona)
	sb.WriteString(". Be concise, warm, and professional.\n\n")

	sb.WriteString(groundingInstruction)
	sb.WriteString("\n\n")

	sb.WriteString(contextOpen)
	sb.WriteString("\n")
	sb.WriteString(strings.Join(contents, "\n\n"))
	sb.WriteString("\n")
	sb.WriteString(contextClose)
	sb.WriteString("\n\n")

	sb.WriteString("Question: ")
	sb.WriteString(query)
	sb.WriteString("\n")
	sb.WriteString(answerCue)

	return sb.String()
}

// BuildPrompt assembles a grounded prompt with the default persona. It
// is a pure function: no I/O, no state.
func BuildPrompt(query string, contents []string) string {
	return NewPromptBuilder("").Build(query, contents)
}
