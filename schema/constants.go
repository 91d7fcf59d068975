package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and export.
	DatabaseBackend string

	// CommitType is the coarse intent category of a commit message.
	CommitType string

	// ProviderKind identifies a supported hosting provider.
	ProviderKind string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Commit type tags produced by the classifier.
const (
	MergeCommit    CommitType = "Merge"
	FeatureCommit  CommitType = "Feature"
	BugfixCommit   CommitType = "Bugfix"
	RefactorCommit CommitType = "Refactor"
	DocsCommit     CommitType = "Docs"
	OtherCommit    CommitType = "Other"
)

// Provider kinds.
const (
	GitHubProvider ProviderKind = "github"
	GitLabProvider ProviderKind = "gitlab"
)

// AllCommitTypes lists every tag in display order.
var AllCommitTypes = []CommitType{
	FeatureCommit, BugfixCommit, RefactorCommit, DocsCommit, MergeCommit, OtherCommit,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
