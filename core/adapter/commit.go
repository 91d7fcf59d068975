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

// CommitAdapter builds a record from a commit-granular source. Every commit weighs 1.
type CommitAdapter struct {
	source contract.CommitSource
	loc    *time.Location
	langs  *languageCache
}

var _ contract.Provider = &CommitAdapter{} // Compile-time check

// NewCommitAdapter creates an adapter that buckets timestamps in loc.
func NewCommitAdapter(source contract.CommitSource, loc *time.Location) *CommitAdapter {
	return &CommitAdapter{
		source: source,
		loc:    loc,
		langs:  newLanguageCache(source.Name(), source.ProjectLanguages),
	}
}

// Name implements the Provider interface.
func (a *CommitAdapter) Name() string {
	return a.source.Name()
}

// Connect implements the Provider interface.
func (a *CommitAdapter) Connect(ctx context.Context) (schema.Identity, error) {
	id, err := a.source.Connect(ctx)
	if err != nil {
		return schema.Identity{}, asConnectionError(a.Name(), err)
	}
	return id, nil
}

// YearStats implements the Provider interface.
func (a *CommitAdapter) YearStats(ctx context.Context, year int) (*schema.Stats, error) {
	commits, err := a.source.SearchCommits(ctx, year)
	if err != nil {
		return nil, asConnectionError(a.Name(), fmt.Errorf("search commits for %d: %w", year, err))
	}
	log.Info().Str("provider", a.Name()).Int("commits", len(commits)).Msg("analyzing commits")

	sc := newScan(a.Name(), a.loc)
	for _, c := range commits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sc.touch(c.Project)
		sc.record(c.AuthoredAt, c.Project, 1)
		sc.stats.TotalCommits++
		sc.stats.CommitTypes.Add(classify.Classify(c.Message), 1)

		a.applyDetail(ctx, sc.stats, c)
		attributeLanguages(sc.stats, a.langs.ratios(ctx, c.Project), 1)
	}
	return sc.finish(), nil
}

// applyDetail adds diff stats and file extensions. Lookup failures are skipped.
func (a *CommitAdapter) applyDetail(ctx context.Context, stats *schema.Stats, c schema.CommitEvent) {
	detail, err := a.source.CommitDetail(ctx, c)
	if err != nil {
		log.Debug().Str("provider", a.Name()).Str("sha", c.SHA).Err(err).Msg("commit detail unavailable")
		return
	}
	if detail.HasStats {
		stats.LinesAdded += detail.Additions
		stats.LinesDeleted += detail.Deletions
	}

	files := detail.Files
	if len(files) > MaxFilesPerCommit {
		files = files[:MaxFilesPerCommit]
	}
	for _, f := range files {
		if ext := fileExtension(f); ext != "" {
			stats.Extensions.Add(ext, 1)
		}
	}
}
