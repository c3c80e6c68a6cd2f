package service

import (
	"strings"

	"github.com/atelierware/folio/internal/domain"
)

// minSectionChars is the shortest raw section considered meaningful.
// Anything under this is heading noise or stray whitespace between
// markers and is discarded before parsing.
const minSectionChars = 10

// parsedSection is one titled section extracted from a profile document.
type parsedSection struct {
	Title    string
	Content  string
	Category domain.ChunkCategory
}

// categoryRule maps a title keyword to a chunk category. The table is
// ordered and the first matching rule wins; a title like "Who I Am and
// What I Build" must classify as identity, not projects, so rule order
// is part of the contract.
type categoryRule struct {
	keyword  string
	category domain.ChunkCategory
}

var categoryRules = []categoryRule{
	{"identity", domain.CategoryIdentity},
	{"who", domain.CategoryIdentity},
	{"skill", domain.CategorySkills},
	{"project", domain.CategoryProjects},
	{"education", domain.CategoryEducation},
	{"contact", domain.CategoryContact},
}

// classifyTitle assigns a category by case-insensitive substring match
// against the ordered keyword table. Titles matching no rule fall into
// the other category.
func classifyTitle(title string) domain.ChunkCategory {
	lower := strings.ToLower(title)
	for _, rule := range categoryRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.category
		}
	}
	return domain.CategoryOther
}

// splitProfileDocument splits a markdown-like profile document into
// titled, classified sections. Sections are delimited by lines starting
// with '#'. Sections shorter than minSectionChars and sections whose
// body is empty after trimming are dropped: a heading with no body
// contributes nothing to retrieval.
func splitProfileDocument(doc string) []parsedSection {
	var sections []parsedSection

	for _, raw := range splitOnHeadings(doc) {
		if len(strings.TrimSpace(raw)) < minSectionChars {
			continue
		}

		title, content := splitTitleBody(raw)
		if title == "" || content == "" {
			continue
		}

		sections = append(sections, parsedSection{
			Title:    title,
			Content:  content,
			Category: classifyTitle(title),
		})
	}

	return sections
}

// splitOnHeadings cuts the document at every line beginning with one or
// more '#' markers. The heading line stays at the top of its section.
func splitOnHeadings(doc string) []string {
	lines := strings.Split(doc, "\n")

	var sections []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			sections = append(sections, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return sections
}

// splitTitleBody takes a raw section, strips heading and emphasis
// markers from the first non-blank line to form the title, and joins the
// remaining lines into the content body.
func splitTitleBody(raw string) (title, content string) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	title = stripMarkers(lines[0])
	if len(lines) > 1 {
		content = strings.TrimSpace(strings.Join(lines[1:], "\n"))
	}
	return title, content
}

// stripMarkers removes leading '#' markers and markdown emphasis
// characters from a heading line.
func stripMarkers(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimSpace(strings.TrimLeft(s, "#"))
	s = strings.Trim(s, "*_`")
	return strings.TrimSpace(s)
}
