// Package agg merges per-provider statistics records into one.
package agg

import (
	"errors"
	"slices"

	"github.com/SimoneSapienza/dev-wrapped/schema"
)

// ErrNoRecords is returned when Merge is called without any record.
var ErrNoRecords = errors.New("no statistics records to merge")

// Merge combines records into a new record. Scalars and counters are summed,
// the date set and each per-day project set are unioned. Inputs are not
// modified and the result does not depend on their order.
func Merge(records ...*schema.Stats) (*schema.Stats, error) {
	records = slices.DeleteFunc(slices.Clone(records), func(s *schema.Stats) bool { return s == nil })
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	merged := schema.NewStats()
	for _, r := range records {
		merged.TotalCommits += r.TotalCommits
		merged.ProjectsCount += r.ProjectsCount
		merged.LinesAdded += r.LinesAdded
		merged.LinesDeleted += r.LinesDeleted

		merged.Dates.Union(r.Dates)
		for date, projects := range r.DailyProjects {
			for p := range projects {
				merged.DailyProjects.Add(date, p)
			}
		}
	}

	merged.CommitsByMonth = sumCounters(records, func(s *schema.Stats) schema.Counter[int, int] { return s.CommitsByMonth })
	merged.CommitsByHour = sumCounters(records, func(s *schema.Stats) schema.Counter[int, int] { return s.CommitsByHour })
	merged.Languages = sumCounters(records, func(s *schema.Stats) schema.Counter[string, float64] { return s.Languages })
	merged.PunchCard = sumCounters(records, func(s *schema.Stats) schema.Counter[schema.PunchKey, int] { return s.PunchCard })
	merged.Extensions = sumCounters(records, func(s *schema.Stats) schema.Counter[string, int] { return s.Extensions })
	merged.WeeklyActivity = sumCounters(records, func(s *schema.Stats) schema.Counter[int, int] { return s.WeeklyActivity })
	merged.CommitTypes = sumCounters(records, func(s *schema.Stats) schema.Counter[schema.CommitType, int] { return s.CommitTypes })
	merged.DailyCommits = sumCounters(records, func(s *schema.Stats) schema.Counter[string, int] { return s.DailyCommits })

	return merged, nil
}

// sumCounters adds up one counter field across records. Contributions per key
// are summed in sorted order so float results are identical for any input order.
func sumCounters[K comparable, V schema.Number](records []*schema.Stats, field func(*schema.Stats) schema.Counter[K, V]) schema.Counter[K, V] {
	parts := make(map[K][]V)
	for _, r := range records {
		for k, v := range field(r) {
			parts[k] = append(parts[k], v)
		}
	}

	out := make(schema.Counter[K, V], len(parts))
	for k, values := range parts {
		slices.Sort(values)
		var total V
		for _, v := range values {
			total += v
		}
		out[k] = total
	}
	return out
}
