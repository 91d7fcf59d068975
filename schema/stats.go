// Package schema has the models, enums and status records shared by every part of dev-wrapped.
package schema

import (
	"fmt"
)

// PunchKey addresses one cell of the weekday x hour punch card.
// Weekday runs from 0 (Monday) to 6 (Sunday).
type PunchKey struct {
	Weekday int
	Hour    int
}

// MarshalText renders the key as "weekday-hour" so it can be a JSON object key.
func (k PunchKey) MarshalText() ([]byte, error) {
	return fmt.Appendf(nil, "%d-%d", k.Weekday, k.Hour), nil
}

// UnmarshalText parses the "weekday-hour" form.
func (k *PunchKey) UnmarshalText(text []byte) error {
	var wd, hour int
	if _, err := fmt.Sscanf(string(text), "%d-%d", &wd, &hour); err != nil {
		return fmt.Errorf("invalid punch card key %q: %w", text, err)
	}
	if wd < 0 || wd > 6 || hour < 0 || hour > 23 {
		return fmt.Errorf("punch card key %q out of range", text)
	}
	k.Weekday, k.Hour = wd, hour
	return nil
}

// Stats is the canonical statistics record for one provider, or the merge of several.
type Stats struct {
	TotalCommits  int `json:"total_commits"`
	ProjectsCount int `json:"projects_count"`
	LinesAdded    int `json:"lines_added"`
	LinesDeleted  int `json:"lines_deleted"`

	CommitsByMonth Counter[int, int]        `json:"commits_by_month"`
	CommitsByHour  Counter[int, int]        `json:"commits_by_hour"`
	Languages      Counter[string, float64] `json:"languages"`
	Dates          StringSet                `json:"dates"`
	PunchCard      Counter[PunchKey, int]   `json:"punch_card"`
	Extensions     Counter[string, int]     `json:"extensions"`
	WeeklyActivity Counter[int, int]        `json:"weekly_activity"`
	CommitTypes    Counter[CommitType, int] `json:"commit_types"`
	DailyProjects  DailySets                `json:"daily_projects"`
	DailyCommits   Counter[string, int]     `json:"daily_commits"`
}

// NewStats returns an empty record with every mapping allocated.
func NewStats() *Stats {
	return &Stats{
		CommitsByMonth: make(Counter[int, int]),
		CommitsByHour:  make(Counter[int, int]),
		Languages:      make(Counter[string, float64]),
		Dates:          make(StringSet),
		PunchCard:      make(Counter[PunchKey, int]),
		Extensions:     make(Counter[string, int]),
		WeeklyActivity: make(Counter[int, int]),
		CommitTypes:    make(Counter[CommitType, int]),
		DailyProjects:  make(DailySets),
		DailyCommits:   make(Counter[string, int]),
	}
}

// Clone returns a deep copy of the record.
func (s *Stats) Clone() *Stats {
	return &Stats{
		TotalCommits:   s.TotalCommits,
		ProjectsCount:  s.ProjectsCount,
		LinesAdded:     s.LinesAdded,
		LinesDeleted:   s.LinesDeleted,
		CommitsByMonth: s.CommitsByMonth.Clone(),
		CommitsByHour:  s.CommitsByHour.Clone(),
		Languages:      s.Languages.Clone(),
		Dates:          s.Dates.Clone(),
		PunchCard:      s.PunchCard.Clone(),
		Extensions:     s.Extensions.Clone(),
		WeeklyActivity: s.WeeklyActivity.Clone(),
		CommitTypes:    s.CommitTypes.Clone(),
		DailyProjects:  s.DailyProjects.Clone(),
		DailyCommits:   s.DailyCommits.Clone(),
	}
}

// ActiveDays is the number of distinct local dates with activity.
func (s *Stats) ActiveDays() int {
	return s.Dates.Len()
}
