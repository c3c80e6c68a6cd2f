package domain

import "time"

// SiteSettings is the single-row site configuration. It is always
// accessed through an idempotent get-or-create ("ensure default")
// repository call, never through ambient global state.
//
// ProfileDocument is the maintained profile text that bulk ingestion
// splits into knowledge chunks.
type SiteSettings struct {
	SiteTitle        string
	Tagline          string
	OwnerName        string
	AssistantPersona string
	ProfileDocument  string
	UpdatedAt        time.Time
}

// DefaultSiteSettings returns the settings used when no row exists yet.
func DefaultSiteSettings() *SiteSettings {
	return &SiteSettings{
		SiteTitle:        "Portfolio",
		Tagline:          "",
		OwnerName:        "",
		AssistantPersona: "a friendly assistant that answers questions about the portfolio owner",
		ProfileDocument:  "",
	}
}
