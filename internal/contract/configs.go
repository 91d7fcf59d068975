package contract

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/rs/zerolog"
)

// Default values for configuration.
const (
	DefaultPrecision   = 1
	DefaultGitLabURL   = "https://gitlab.com"
	DefaultGitLabRPS   = 5.0
	DefaultGitLabBurst = 5
	DefaultHTTPTimeout = 30 * time.Second
	DefaultCacheTTL    = 7 * 24 * time.Hour

	// MinYear is the earliest year a hosted provider can report activity for.
	MinYear = 2008
)

// DateFormat is the layout used for per-day keys.
const DateFormat = "2006-01-02"

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a run.
// This struct is the "final, validated" config.
type Config struct {
	Year     int
	Location *time.Location

	GitHubToken string
	GitHubURL   string // empty for github.com
	GitLabToken string
	GitLabURL   string
	GitLabRPS   float64
	GitLabBurst int
	HTTPTimeout time.Duration

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	Card     bool
	CardFile string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration

	ExportBackend   schema.DatabaseBackend
	ExportDBConnect string // Please use env var as this is plaintext

	LogLevel zerolog.Level

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Year     int    `mapstructure:"year"`
	Timezone string `mapstructure:"timezone"`

	GitHubToken string  `mapstructure:"github-token"`
	GitHubURL   string  `mapstructure:"github-url"`
	GitLabToken string  `mapstructure:"gitlab-token"`
	GitLabURL   string  `mapstructure:"gitlab-url"`
	GitLabRPS   float64 `mapstructure:"gitlab-rps"`
	GitLabBurst int     `mapstructure:"gitlab-burst"`
	HTTPTimeout string  `mapstructure:"http-timeout"`

	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`

	Card     bool   `mapstructure:"card"`
	CardFile string `mapstructure:"card-file"`

	CacheBackend    string `mapstructure:"cache-backend"`
	CacheDBConnect  string `mapstructure:"cache-db-connect"`
	CacheTTL        string `mapstructure:"cache-ttl"`
	ExportBackend   string `mapstructure:"export-backend"`
	ExportDBConnect string `mapstructure:"export-db-connect"`

	LogLevel string `mapstructure:"log-level"`
	Emoji    string `mapstructure:"emoji"`
	Color    string `mapstructure:"color"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// EnabledProviders returns the providers that have a token configured, in run order.
func (c *Config) EnabledProviders() []schema.ProviderKind {
	var kinds []schema.ProviderKind
	if c.GitLabToken != "" {
		kinds = append(kinds, schema.GitLabProvider)
	}
	if c.GitHubToken != "" {
		kinds = append(kinds, schema.GitHubProvider)
	}
	return kinds
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processYearAndZone(cfg, input); err != nil {
		return err
	}
	if err := processProviders(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and export backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		ttl, err := time.ParseDuration(input.CacheTTL)
		if err != nil || ttl <= 0 {
			return fmt.Errorf("invalid cache-ttl '%s'. must be a positive duration such as 168h", input.CacheTTL)
		}
		cfg.CacheTTL = ttl
	}

	// --- Export Backend Validation ---
	cfg.ExportBackend = schema.DatabaseBackend(strings.ToLower(input.ExportBackend))
	if cfg.ExportBackend == "" {
		cfg.ExportBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.ExportBackend]; !ok {
		return fmt.Errorf("invalid export backend '%s'. must be sqlite, mysql, postgresql, none", input.ExportBackend)
	}
	cfg.ExportDBConnect = input.ExportDBConnect
	if err := ValidateDatabaseConnectionString(cfg.ExportBackend, cfg.ExportDBConnect); err != nil {
		return fmt.Errorf("export-db-connect: %w", err)
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.ExportBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		exportDBPath := cfg.ExportDBConnect
		if exportDBPath == "" {
			exportDBPath = GetExportDBFilePath()
		}
		if cacheDBPath == exportDBPath {
			return fmt.Errorf("cache and export storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}

	return nil
}

// validateSimpleInputs processes and validates output and presentation fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Card = input.Card

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	level := input.LogLevel
	if level == "" {
		level = zerolog.LevelInfoValue
	}
	cfg.LogLevel, err = zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level '%s': %w", input.LogLevel, err)
	}

	return nil
}

// processYearAndZone resolves the target year, the viewer's time zone and the card path.
func processYearAndZone(cfg *Config, input *ConfigRawInput) error {
	now := time.Now()
	cfg.Year = input.Year
	if cfg.Year == 0 {
		cfg.Year = now.Year()
	}
	if err := validateYear(cfg.Year, now); err != nil {
		return err
	}

	cfg.Location = time.Local
	if tz := strings.TrimSpace(input.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w", input.Timezone, err)
		}
		cfg.Location = loc
	}

	cfg.CardFile = input.CardFile
	if cfg.CardFile == "" {
		cfg.CardFile = fmt.Sprintf("wrapped_%d.svg", cfg.Year)
	}
	return nil
}

// RevalidateYear applies a per-request year and time zone on top of a validated config.
// An empty timezone keeps the configured location.
func RevalidateYear(cfg *Config, year int, timezone string) error {
	if err := validateYear(year, time.Now()); err != nil {
		return err
	}
	if tz := strings.TrimSpace(timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w", timezone, err)
		}
		cfg.Location = loc
	}
	cfg.Year = year
	return nil
}

func validateYear(year int, now time.Time) error {
	if year < MinYear || year > now.Year() {
		return fmt.Errorf("year must be between %d and %d (received %d)", MinYear, now.Year(), year)
	}
	return nil
}

// processProviders validates tokens, endpoints and HTTP settings.
func processProviders(cfg *Config, input *ConfigRawInput) error {
	cfg.GitHubToken = strings.TrimSpace(input.GitHubToken)
	cfg.GitLabToken = strings.TrimSpace(input.GitLabToken)

	cfg.GitHubURL = strings.TrimSpace(input.GitHubURL)
	if cfg.GitHubURL != "" {
		if err := validateBaseURL(cfg.GitHubURL); err != nil {
			return fmt.Errorf("invalid github-url: %w", err)
		}
	}

	cfg.GitLabURL = strings.TrimSuffix(strings.TrimSpace(input.GitLabURL), "/")
	if cfg.GitLabURL == "" {
		cfg.GitLabURL = DefaultGitLabURL
	}
	if err := validateBaseURL(cfg.GitLabURL); err != nil {
		return fmt.Errorf("invalid gitlab-url: %w", err)
	}

	cfg.GitLabRPS = input.GitLabRPS
	if cfg.GitLabRPS == 0 {
		cfg.GitLabRPS = DefaultGitLabRPS
	}
	cfg.GitLabBurst = input.GitLabBurst
	if cfg.GitLabBurst == 0 {
		cfg.GitLabBurst = DefaultGitLabBurst
	}
	if cfg.GitLabRPS < 0 || cfg.GitLabBurst < 0 {
		return fmt.Errorf("gitlab-rps and gitlab-burst must be positive")
	}

	cfg.HTTPTimeout = DefaultHTTPTimeout
	if input.HTTPTimeout != "" {
		d, err := time.ParseDuration(input.HTTPTimeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid http-timeout '%s'. must be a positive duration such as 30s", input.HTTPTimeout)
		}
		cfg.HTTPTimeout = d
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

// ProcessProfilingConfig enables profiling when a file prefix was given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".devwrapped_cache.db"
	}
	return filepath.Join(homeDir, ".devwrapped_cache.db")
}

// GetExportDBFilePath returns the path to the SQLite DB file for snapshot export.
func GetExportDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".devwrapped_export.db"
	}
	return filepath.Join(homeDir, ".devwrapped_export.db")
}
