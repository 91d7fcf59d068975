// Package core has core logic for collecting, merging and summarizing yearly activity.
package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/SimoneSapienza/dev-wrapped/core/adapter"
	"github.com/SimoneSapienza/dev-wrapped/core/agg"
	"github.com/SimoneSapienza/dev-wrapped/core/classify"
	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/internal/github"
	"github.com/SimoneSapienza/dev-wrapped/internal/gitlab"
	"github.com/SimoneSapienza/dev-wrapped/internal/outwriter"
	"github.com/SimoneSapienza/dev-wrapped/internal/render"
	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/rs/zerolog/log"
)

// ErrNoProviderStats is returned when every configured provider failed.
var ErrNoProviderStats = errors.New("no provider returned statistics")

// ErrExportDisabled is returned by export commands when the export backend is none.
var ErrExportDisabled = errors.New("export backend is none; set --export-backend")

// ExecutorFunc defines the function signature for executing the yearly commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// BuildProviders creates one adapter per provider that has a token, in run order.
// GitHub commit details are served through the activity cache when store is not nil.
func BuildProviders(cfg *contract.Config, store contract.CacheStore) ([]contract.Provider, error) {
	var providers []contract.Provider
	for _, kind := range cfg.EnabledProviders() {
		switch kind {
		case schema.GitLabProvider:
			client := gitlab.NewClient(gitlab.Options{
				BaseURL: cfg.GitLabURL,
				Token:   cfg.GitLabToken,
				RPS:     cfg.GitLabRPS,
				Burst:   cfg.GitLabBurst,
				Timeout: cfg.HTTPTimeout,
			})
			providers = append(providers, adapter.NewPushAdapter(client, cfg.Location))
		case schema.GitHubProvider:
			opts := []github.Option{github.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout})}
			if cfg.GitHubURL != "" {
				opts = append(opts, github.WithBaseURL(cfg.GitHubURL))
			}
			client, err := github.NewClient(cfg.GitHubToken, opts...)
			if err != nil {
				return nil, err
			}
			var source contract.CommitSource = client
			if store != nil {
				source = newCachedCommitSource(client, store, cfg.CacheTTL)
			}
			providers = append(providers, adapter.NewCommitAdapter(source, cfg.Location))
		}
	}
	if len(providers) == 0 {
		return nil, contract.ErrNoProviders
	}
	return providers, nil
}

// CollectYearStats runs every provider in order and merges the surviving records.
// A failing provider is logged and skipped; cancellation aborts the whole run.
func CollectYearStats(ctx context.Context, year int, providers []contract.Provider) (*schema.Stats, []schema.Identity, error) {
	var (
		records    []*schema.Stats
		identities []schema.Identity
	)
	for _, p := range providers {
		identity, stats, err := runProvider(ctx, year, p)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			contract.LogProviderWarn(p.Name(), err)
			continue
		}
		log.Debug().Str("provider", p.Name()).Int("commits", stats.TotalCommits).Msg("provider finished")
		records = append(records, stats)
		identities = append(identities, identity)
	}

	merged, err := agg.Merge(records...)
	if errors.Is(err, agg.ErrNoRecords) {
		return nil, nil, ErrNoProviderStats
	}
	if err != nil {
		return nil, nil, err
	}
	return merged, identities, nil
}

func runProvider(ctx context.Context, year int, p contract.Provider) (schema.Identity, *schema.Stats, error) {
	identity, err := p.Connect(ctx)
	if err != nil {
		return schema.Identity{}, nil, err
	}
	stats, err := p.YearStats(ctx, year)
	if err != nil {
		return schema.Identity{}, nil, fmt.Errorf("%s: %w", p.Name(), err)
	}
	return identity, stats, nil
}

// GetYearReport collects the configured providers and returns the summarized report.
// It is shared by the report command and the MCP server.
func GetYearReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.Report, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetActivityStore()
	}
	providers, err := BuildProviders(cfg, store)
	if err != nil {
		return nil, err
	}
	if !shouldSuppressHeader(ctx) {
		logRunHeader(cfg, providers)
	}
	return buildReport(ctx, cfg.Year, providers)
}

func buildReport(ctx context.Context, year int, providers []contract.Provider) (*schema.Report, error) {
	stats, identities, err := CollectYearStats(ctx, year, providers)
	if err != nil {
		return nil, err
	}
	return &schema.Report{
		Year:       year,
		Identities: identities,
		Stats:      stats,
		Summary:    Summarize(stats),
	}, nil
}

// ExecuteReport builds the yearly report, prints it and writes the card and snapshot when enabled.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := GetYearReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if err := outwriter.WriteReport(report, cfg, time.Since(start)); err != nil {
		return err
	}

	if cfg.Card {
		if err := writeCard(report, cfg.CardFile); err != nil {
			return err
		}
	}

	if cfg.ExportBackend != schema.NoneBackend && mgr != nil {
		if store := mgr.GetExportStore(); store != nil {
			if err := store.SaveSnapshot(report.Year, providerNames(report.Identities), report.Stats); err != nil {
				return fmt.Errorf("failed to export snapshot: %w", err)
			}
			log.Info().Int("year", report.Year).Str("backend", string(cfg.ExportBackend)).Msg("Exported snapshot")
		}
	}
	return nil
}

// ExecuteExport collects the year and writes its snapshot to the export store only.
func ExecuteExport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	if cfg.ExportBackend == schema.NoneBackend || mgr == nil || mgr.GetExportStore() == nil {
		return ErrExportDisabled
	}
	report, err := GetYearReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	store := mgr.GetExportStore()
	if err := store.SaveSnapshot(report.Year, providerNames(report.Identities), report.Stats); err != nil {
		return fmt.Errorf("failed to export snapshot: %w", err)
	}
	snap, err := store.GetSnapshot(report.Year)
	if err != nil {
		return fmt.Errorf("failed to read back snapshot: %w", err)
	}
	fmt.Printf("Exported %d to %s: %d commits across %d projects on %d active days (providers: %s)\n",
		snap.Year, cfg.ExportBackend, snap.TotalCommits, snap.ProjectsCount, snap.ActiveDays, snap.Providers)
	return nil
}

// ExecuteClassify tags each message and prints the result.
func ExecuteClassify(messages []string, cfg *contract.Config) error {
	results := make([]schema.Classification, 0, len(messages))
	for _, msg := range messages {
		if strings.TrimSpace(msg) == "" {
			continue
		}
		results = append(results, schema.Classification{Message: msg, Type: classify.Classify(msg)})
	}
	return outwriter.WriteClassifications(results, cfg)
}

func writeCard(report *schema.Report, path string) error {
	card, err := render.RenderCard(report.Year, report.DisplayName(), report.Stats, report.Summary)
	if err != nil {
		return err
	}
	if err := render.WriteCardFile(path, card); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("Wrote card")
	return nil
}

func providerNames(identities []schema.Identity) []string {
	names := make([]string, len(identities))
	for i, id := range identities {
		names[i] = string(id.Provider)
	}
	return names
}

// logRunHeader prints a short banner to stderr so stdout stays clean for json and csv.
func logRunHeader(cfg *contract.Config, providers []contract.Provider) {
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	zone := "Local"
	if cfg.Location != nil {
		zone = cfg.Location.String()
	}
	_, _ = fmt.Fprintf(os.Stderr, "📅 Year: %d (%s)\n", cfg.Year, zone)
	_, _ = fmt.Fprintf(os.Stderr, "🔌 Providers: %s\n", strings.Join(names, ", "))
}
