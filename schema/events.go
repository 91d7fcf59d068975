package schema

import (
	"fmt"
	"strings"
	"time"
)

// Identity is the authenticated account behind a provider connection.
type Identity struct {
	Provider ProviderKind `json:"provider"`
	Login    string       `json:"login"`
	Name     string       `json:"name,omitempty"`
}

// DisplayName prefers the full name and falls back to the login.
func (i Identity) DisplayName() string {
	if name := strings.TrimSpace(i.Name); name != "" {
		return name
	}
	return i.Login
}

// String renders "Name (@login)".
func (i Identity) String() string {
	return fmt.Sprintf("%s (@%s)", i.DisplayName(), i.Login)
}

// CommitEvent is one authored commit reported by a commit-granular provider.
type CommitEvent struct {
	SHA        string    `json:"sha"`
	Project    string    `json:"project"` // e.g. owner/repo
	Message    string    `json:"message"`
	AuthoredAt time.Time `json:"authored_at"`
}

// CommitDetail is the diff summary of a single commit.
type CommitDetail struct {
	HasStats  bool     `json:"has_stats"`
	Additions int      `json:"additions"`
	Deletions int      `json:"deletions"`
	Files     []string `json:"files"`
}

// PushData is the summary attached to a push event.
type PushData struct {
	CommitCount int    `json:"commit_count"`
	CommitTitle string `json:"commit_title"`
}

// PushEvent is one push reported by a push-granular provider.
// Push is nil when the provider omitted the push summary.
type PushEvent struct {
	Project   string    `json:"project"`
	CreatedAt time.Time `json:"created_at"`
	Push      *PushData `json:"push_data,omitempty"`
}

// LanguageWeights is a raw per-language weight breakdown (bytes or percentages).
type LanguageWeights map[string]float64
