package core

import (
	"slices"
	"time"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/schema"
)

// Personas derived from the hourly distribution.
const (
	PersonaGhost      = "The Ghost"
	PersonaVampire    = "Vampire Coder"
	PersonaEarly      = "Early Bird"
	PersonaNineToFive = "9-to-5 Pro"
)

// TopLanguageCount is how many languages are listed before grouping the rest.
const TopLanguageCount = 5

var (
	nightHours   = []int{23, 0, 1, 2, 3, 4}
	morningHours = []int{5, 6, 7, 8, 9, 10, 11}
)

// Summarize derives report highlights from a merged record.
func Summarize(stats *schema.Stats) schema.Summary {
	return schema.Summary{
		Persona:           Persona(stats.CommitsByHour),
		LongestStreak:     LongestStreak(stats.Dates),
		ActiveDays:        stats.ActiveDays(),
		AvgProjectsPerDay: avgProjectsPerDay(stats.DailyProjects),
		BusiestCommitDay:  busiestDay(stats.DailyCommits),
		BusiestProjectDay: busiestProjectDay(stats.DailyProjects),
		TopLanguages:      TopLanguages(stats.Languages, TopLanguageCount),
	}
}

// Persona classifies the hourly activity: night owls first, then early risers.
func Persona(hours schema.Counter[int, int]) string {
	total := hours.Total()
	if total == 0 {
		return PersonaGhost
	}
	night, morning := 0, 0
	for _, h := range nightHours {
		night += hours.Get(h)
	}
	for _, h := range morningHours {
		morning += hours.Get(h)
	}
	switch {
	case float64(night) > float64(total)*0.3:
		return PersonaVampire
	case float64(morning) > float64(total)*0.45:
		return PersonaEarly
	default:
		return PersonaNineToFive
	}
}

// LongestStreak returns the longest run of consecutive calendar days in dates.
// Malformed dates are ignored.
func LongestStreak(dates schema.StringSet) int {
	days := make([]time.Time, 0, dates.Len())
	for d := range dates {
		t, err := time.Parse(contract.DateFormat, d)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	if len(days) == 0 {
		return 0
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

	longest, current := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			current++
		} else {
			current = 1
		}
		longest = max(longest, current)
	}
	return longest
}

// TopLanguages returns the n heaviest languages plus an "Other" bucket for the rest.
func TopLanguages(langs schema.Counter[string, float64], n int) []schema.LanguageShare {
	total := langs.Total()
	if total <= 0 {
		return nil
	}
	top := schema.TopN(langs, n)
	shares := make([]schema.LanguageShare, 0, len(top)+1)
	var listed float64
	for _, e := range top {
		listed += e.Value
		shares = append(shares, schema.LanguageShare{Name: e.Key, Weight: e.Value, Share: e.Value / total})
	}
	if rest := total - listed; rest > 1e-9 {
		shares = append(shares, schema.LanguageShare{Name: schema.OtherLanguage, Weight: rest, Share: rest / total})
	}
	return shares
}

func avgProjectsPerDay(daily schema.DailySets) float64 {
	if len(daily) == 0 {
		return 0
	}
	switches := 0
	for _, projects := range daily {
		switches += projects.Len()
	}
	return float64(switches) / float64(len(daily))
}

// busiestDay picks the highest count; ties go to the earliest date.
func busiestDay(daily schema.Counter[string, int]) schema.DayRecord {
	best := schema.DayRecord{}
	for _, date := range schema.SortedKeys(daily) {
		if v := daily[date]; v > best.Value {
			best = schema.DayRecord{Date: date, Value: v}
		}
	}
	return best
}

func busiestProjectDay(daily schema.DailySets) schema.DayRecord {
	counts := make(schema.Counter[string, int], len(daily))
	for date, projects := range daily {
		counts[date] = projects.Len()
	}
	return busiestDay(counts)
}
