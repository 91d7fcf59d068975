package schema

import (
	"fmt"
	"slices"
	"strconv"
)

// OtherLanguage groups the languages outside the top list.
const OtherLanguage = "Other"

// DayRecord is the busiest day for some per-day measure.
type DayRecord struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// LanguageShare is one slice of the language breakdown.
type LanguageShare struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Share  float64 `json:"share"` // 0..1
}

// Summary holds highlights derived from a merged Stats record.
type Summary struct {
	Persona           string          `json:"persona"`
	LongestStreak     int             `json:"longest_streak"`
	ActiveDays        int             `json:"active_days"`
	AvgProjectsPerDay float64         `json:"avg_projects_per_day"`
	BusiestCommitDay  DayRecord       `json:"busiest_commit_day"`
	BusiestProjectDay DayRecord       `json:"busiest_project_day"`
	TopLanguages      []LanguageShare `json:"top_languages"`
}

// Report is the full result of one run, as written by the json output.
type Report struct {
	Year       int        `json:"year"`
	Identities []Identity `json:"identities"`
	Stats      *Stats     `json:"stats"`
	Summary    Summary    `json:"summary"`
}

// DisplayName picks the name shown in headers. The first identity wins.
func (r Report) DisplayName() string {
	if len(r.Identities) == 0 {
		return "Dev"
	}
	return r.Identities[0].DisplayName()
}

// BucketRow is one flattened cell of a Stats record.
type BucketRow struct {
	Field string
	Key   string
	Value float64
}

// Flattened field names.
const (
	FieldTotals         = "totals"
	FieldCommitsByMonth = "commits_by_month"
	FieldCommitsByHour  = "commits_by_hour"
	FieldLanguages      = "languages"
	FieldPunchCard      = "punch_card"
	FieldExtensions     = "extensions"
	FieldWeeklyActivity = "weekly_activity"
	FieldCommitTypes    = "commit_types"
	FieldDailyProjects  = "daily_projects"
	FieldDailyCommits   = "daily_commits"
)

// Flatten turns a record into deterministic (field, key, value) rows.
// Sets are emitted by cardinality; daily_projects yields one row per date.
func Flatten(s *Stats) []BucketRow {
	rows := []BucketRow{
		{FieldTotals, "total_commits", float64(s.TotalCommits)},
		{FieldTotals, "projects_count", float64(s.ProjectsCount)},
		{FieldTotals, "lines_added", float64(s.LinesAdded)},
		{FieldTotals, "lines_deleted", float64(s.LinesDeleted)},
		{FieldTotals, "active_days", float64(s.ActiveDays())},
	}

	rows = appendIntRows(rows, FieldCommitsByMonth, s.CommitsByMonth)
	rows = appendIntRows(rows, FieldCommitsByHour, s.CommitsByHour)
	rows = appendIntRows(rows, FieldWeeklyActivity, s.WeeklyActivity)

	for _, lang := range SortedKeys(s.Languages) {
		rows = append(rows, BucketRow{FieldLanguages, lang, s.Languages[lang]})
	}

	punch := make([]PunchKey, 0, len(s.PunchCard))
	for k := range s.PunchCard {
		punch = append(punch, k)
	}
	slices.SortFunc(punch, func(a, b PunchKey) int {
		if a.Weekday != b.Weekday {
			return a.Weekday - b.Weekday
		}
		return a.Hour - b.Hour
	})
	for _, k := range punch {
		rows = append(rows, BucketRow{FieldPunchCard, fmt.Sprintf("%d-%d", k.Weekday, k.Hour), float64(s.PunchCard[k])})
	}

	for _, ext := range SortedKeys(s.Extensions) {
		rows = append(rows, BucketRow{FieldExtensions, ext, float64(s.Extensions[ext])})
	}
	for _, ct := range SortedKeys(s.CommitTypes) {
		rows = append(rows, BucketRow{FieldCommitTypes, string(ct), float64(s.CommitTypes[ct])})
	}

	dates := make([]string, 0, len(s.DailyProjects))
	for date := range s.DailyProjects {
		dates = append(dates, date)
	}
	slices.Sort(dates)
	for _, date := range dates {
		rows = append(rows, BucketRow{FieldDailyProjects, date, float64(s.DailyProjects[date].Len())})
	}
	for _, date := range SortedKeys(s.DailyCommits) {
		rows = append(rows, BucketRow{FieldDailyCommits, date, float64(s.DailyCommits[date])})
	}
	return rows
}

func appendIntRows(rows []BucketRow, field string, c Counter[int, int]) []BucketRow {
	for _, k := range SortedKeys(c) {
		rows = append(rows, BucketRow{field, strconv.Itoa(k), float64(c[k])})
	}
	return rows
}

// Classification is the tag assigned to one commit message.
type Classification struct {
	Message string     `json:"message"`
	Type    CommitType `json:"type"`
}
