package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/SimoneSapienza/dev-wrapped/core/classify"
	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/rs/zerolog/log"
)

// PushAdapter builds a record from a push-granular source. A push weighs its commit count.
type PushAdapter struct {
	source contract.PushSource
	loc    *time.Location
	langs  *languageCache
}

var _ contract.Provider = &PushAdapter{} // Compile-time check

// NewPushAdapter creates an adapter that buckets timestamps in loc.
func NewPushAdapter(source contract.PushSource, loc *time.Location) *PushAdapter {
	return &PushAdapter{
		source: source,
		loc:    loc,
		langs:  newLanguageCache(source.Name(), source.ProjectLanguages),
	}
}

// Name implements the Provider interface.
func (a *PushAdapter) Name() string {
	return a.source.Name()
}

// Connect implements the Provider interface.
func (a *PushAdapter) Connect(ctx context.Context) (schema.Identity, error) {
	id, err := a.source.Connect(ctx)
	if err != nil {
		return schema.Identity{}, asConnectionError(a.Name(), err)
	}
	return id, nil
}

// YearStats implements the Provider interface.
// Lines and extensions stay zero since pushes carry no per-file data.
func (a *PushAdapter) YearStats(ctx context.Context, year int) (*schema.Stats, error) {
	events, err := a.source.PushEvents(ctx, year)
	if err != nil {
		return nil, asConnectionError(a.Name(), fmt.Errorf("list push events for %d: %w", year, err))
	}
	log.Info().Str("provider", a.Name()).Int("events", len(events)).Msg("analyzing push events")

	sc := newScan(a.Name(), a.loc)
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sc.touch(ev.Project)
		if ev.Push == nil {
			continue
		}

		count := ev.Push.CommitCount
		sc.stats.TotalCommits += count
		sc.record(ev.CreatedAt, ev.Project, BucketWeight(count))
		sc.stats.CommitTypes.Add(classify.Classify(ev.Push.CommitTitle), count)
		attributeLanguages(sc.stats, a.langs.ratios(ctx, ev.Project), count)
	}
	return sc.finish(), nil
}

// BucketWeight is the weight a push of count commits adds to time buckets.
// Bulk pushes such as imports count once so they do not dominate the charts.
func BucketWeight(count int) int {
	if count > BulkPushThreshold {
		return 1
	}
	return count
}
