// Package adapter turns provider event streams into statistics records.
package adapter

import (
	"context"
	"math"
	"path"
	"strings"
	"time"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/rs/zerolog/log"
)

const (
	// BulkPushThreshold is the push size above which a push counts once in time buckets.
	BulkPushThreshold = 20

	// MaxFilesPerCommit bounds how many files of a commit are inspected for extensions.
	MaxFilesPerCommit = 5

	// maxExtensionLength excludes long suffixes that are rarely real extensions.
	maxExtensionLength = 10

	// UnknownLanguage is attributed when a project's languages cannot be resolved.
	UnknownLanguage = "Unknown"
)

// scan holds the working state of a single adapter run.
type scan struct {
	provider string
	loc      *time.Location
	stats    *schema.Stats
	projects schema.StringSet
}

func newScan(provider string, loc *time.Location) *scan {
	if loc == nil {
		loc = time.Local
	}
	return &scan{
		provider: provider,
		loc:      loc,
		stats:    schema.NewStats(),
		projects: make(schema.StringSet),
	}
}

// touch marks project as active this year.
func (s *scan) touch(project string) {
	s.projects.Add(project)
}

// record adds one dated activity to every time bucket with weight w.
func (s *scan) record(ts time.Time, project string, w int) {
	local := ts.In(s.loc)
	date := local.Format(contract.DateFormat)
	_, week := local.ISOWeek()

	s.stats.Dates.Add(date)
	s.stats.CommitsByMonth.Add(int(local.Month()), w)
	s.stats.CommitsByHour.Add(local.Hour(), w)
	s.stats.PunchCard.Add(schema.PunchKey{Weekday: mondayFirst(local.Weekday()), Hour: local.Hour()}, w)
	s.stats.WeeklyActivity.Add(week, w)
	s.stats.DailyProjects.Add(date, s.projectID(project))
	s.stats.DailyCommits.Add(date, w)
}

// projectID namespaces a raw project identifier with the provider name.
func (s *scan) projectID(project string) string {
	return s.provider + ":" + project
}

// finish stores the project count and hands back the record.
func (s *scan) finish() *schema.Stats {
	s.stats.ProjectsCount = s.projects.Len()
	s.projects = nil
	return s.stats
}

// mondayFirst maps time.Weekday (Sunday = 0) to Monday = 0 ... Sunday = 6.
func mondayFirst(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// attributeLanguages spreads weight across the ratio breakdown.
func attributeLanguages(stats *schema.Stats, ratios map[string]float64, weight int) {
	for lang, ratio := range ratios {
		stats.Languages.Add(lang, float64(weight)*ratio)
	}
}

// fileExtension returns the lower-cased extension of name including the dot,
// or "" when it has none or it is too long to be a real extension.
// Dotfiles such as ".bashrc" have no extension.
func fileExtension(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimLeft(base, ".")
	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return ""
	}
	ext := strings.ToLower(base[idx:])
	if len(ext) <= 1 || len(ext) >= maxExtensionLength {
		return ""
	}
	return ext
}

// languageFetcher resolves raw language weights for a project.
type languageFetcher func(ctx context.Context, project string) (schema.LanguageWeights, error)

// languageCache memoizes per-project ratio breakdowns for the life of one adapter.
type languageCache struct {
	provider string
	fetch    languageFetcher
	entries  map[string]map[string]float64
}

func newLanguageCache(provider string, fetch languageFetcher) *languageCache {
	return &languageCache{
		provider: provider,
		fetch:    fetch,
		entries:  make(map[string]map[string]float64),
	}
}

// ratios returns the language breakdown of project as ratios summing to 1.
// Failures and empty breakdowns resolve to UnknownLanguage.
func (c *languageCache) ratios(ctx context.Context, project string) map[string]float64 {
	if r, ok := c.entries[project]; ok {
		return r
	}
	weights, err := c.fetch(ctx, project)
	if err != nil {
		log.Debug().Str("provider", c.provider).Str("project", project).Err(err).Msg("language lookup failed")
	}
	r := normalize(weights)
	c.entries[project] = r
	return r
}

func normalize(weights schema.LanguageWeights) map[string]float64 {
	var total float64
	for _, w := range weights {
		if w > 0 && !math.IsInf(w, 1) {
			total += w
		}
	}
	if total <= 0 {
		return map[string]float64{UnknownLanguage: 1}
	}
	out := make(map[string]float64, len(weights))
	for lang, w := range weights {
		if w > 0 && !math.IsInf(w, 1) {
			out[lang] = w / total
		}
	}
	return out
}

// asConnectionError keeps typed connection errors and wraps anything else.
func asConnectionError(provider string, err error) error {
	if contract.IsConnectionError(err) {
		return err
	}
	return contract.NewConnectionError(provider, err)
}
