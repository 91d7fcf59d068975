package schema

import "time"

// CacheStatus represents the status of the cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// ExportStatus represents the status of the export store.
type ExportStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	SchemaVersion uint             `json:"schema_version"`
	Years         []int            `json:"years"`
	LastExport    time.Time        `json:"last_export"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// Snapshot is one exported year as stored in the export store.
type Snapshot struct {
	Year          int       `json:"year"`
	Providers     string    `json:"providers"`
	ExportedAt    time.Time `json:"exported_at"`
	TotalCommits  int       `json:"total_commits"`
	ProjectsCount int       `json:"projects_count"`
	LinesAdded    int       `json:"lines_added"`
	LinesDeleted  int       `json:"lines_deleted"`
	ActiveDays    int       `json:"active_days"`
}
