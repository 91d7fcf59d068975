// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/SimoneSapienza/dev-wrapped/schema"
)

// Provider produces one statistics record for a calendar year.
// Connect must succeed before YearStats is called.
type Provider interface {
	// Name is the provider label used in logs and project ids.
	Name() string

	// Connect authenticates and returns the account identity.
	// Failures are reported as *ConnectionError.
	Connect(ctx context.Context) (schema.Identity, error)

	// YearStats scans the provider's activity for year and returns a fresh record.
	YearStats(ctx context.Context, year int) (*schema.Stats, error)
}

// CommitSource lists individual commits from a commit-granular host.
type CommitSource interface {
	Name() string
	Connect(ctx context.Context) (schema.Identity, error)

	// SearchCommits returns every commit authored by the connected user in year.
	SearchCommits(ctx context.Context, year int) ([]schema.CommitEvent, error)

	// CommitDetail returns diff stats and file names for one commit.
	CommitDetail(ctx context.Context, ev schema.CommitEvent) (schema.CommitDetail, error)

	// ProjectLanguages returns raw language weights for a project.
	ProjectLanguages(ctx context.Context, project string) (schema.LanguageWeights, error)
}

// PushSource lists push events from a push-granular host.
type PushSource interface {
	Name() string
	Connect(ctx context.Context) (schema.Identity, error)

	// PushEvents returns every push event by the connected user in year.
	PushEvents(ctx context.Context, year int) ([]schema.PushEvent, error)

	// ProjectLanguages returns raw language weights for a project.
	ProjectLanguages(ctx context.Context, project string) (schema.LanguageWeights, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetActivityStore() CacheStore
	GetExportStore() ExportStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// ExportStore writes yearly snapshots of a merged record to a database.
type ExportStore interface {
	// SaveSnapshot replaces the stored snapshot for year.
	SaveSnapshot(year int, providers []string, stats *schema.Stats) error

	// GetSnapshot returns the headline row stored for year.
	GetSnapshot(year int) (schema.Snapshot, error)

	// GetStatus returns status information about the export store.
	GetStatus() (schema.ExportStatus, error)

	// Close closes the underlying connection.
	Close() error
}
