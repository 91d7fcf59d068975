package contract

import (
	"testing"
	"time"

	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Year:          2024,
		GitHubToken:   "ghp_test",
		Precision:     1,
		Output:        "text",
		Card:          true,
		CacheBackend:  "none",
		ExportBackend: "none",
		Emoji:         "no",
		Color:         "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError string
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "default year", mutate: func(in *ConfigRawInput) { in.Year = 0 }},
		{name: "year too old", mutate: func(in *ConfigRawInput) { in.Year = 1999 }, expectError: "year must be between"},
		{name: "year in the future", mutate: func(in *ConfigRawInput) { in.Year = time.Now().Year() + 1 }, expectError: "year must be between"},
		{name: "bad timezone", mutate: func(in *ConfigRawInput) { in.Timezone = "Mars/Olympus" }, expectError: "invalid timezone"},
		{name: "bad output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: "invalid output format"},
		{name: "parquet needs file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: "requires --output-file"},
		{name: "bad precision", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: "precision must be 1 or 2"},
		{name: "bad emoji", mutate: func(in *ConfigRawInput) { in.Emoji = "maybe" }, expectError: "invalid --emoji value"},
		{name: "bad log level", mutate: func(in *ConfigRawInput) { in.LogLevel = "loud" }, expectError: "invalid log level"},
		{name: "bad gitlab url", mutate: func(in *ConfigRawInput) { in.GitLabURL = "ftp://gitlab.example.com" }, expectError: "invalid gitlab-url"},
		{name: "bad http timeout", mutate: func(in *ConfigRawInput) { in.HTTPTimeout = "soon" }, expectError: "invalid http-timeout"},
		{name: "bad cache backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "redis" }, expectError: "invalid cache backend"},
		{name: "bad cache ttl", mutate: func(in *ConfigRawInput) { in.CacheTTL = "-1h" }, expectError: "invalid cache-ttl"},
		{
			name:        "mysql export without dsn",
			mutate:      func(in *ConfigRawInput) { in.ExportBackend = "mysql" },
			expectError: "export-db-connect",
		},
		{
			name: "sqlite cache and export share a file",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = "sqlite"
				in.CacheDBConnect = "/tmp/same.db"
				in.ExportBackend = "sqlite"
				in.ExportDBConnect = "/tmp/same.db"
			},
			expectError: "different SQLite database files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.Timezone = "Europe/Rome"
	input.GitLabToken = "glpat"
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, 2024, cfg.Year)
	assert.Equal(t, "Europe/Rome", cfg.Location.String())
	assert.Equal(t, DefaultGitLabURL, cfg.GitLabURL)
	assert.Equal(t, DefaultGitLabRPS, cfg.GitLabRPS)
	assert.Equal(t, DefaultGitLabBurst, cfg.GitLabBurst)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
	assert.Equal(t, "wrapped_2024.svg", cfg.CardFile)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.UseEmojis)
	assert.Equal(t, []schema.ProviderKind{schema.GitLabProvider, schema.GitHubProvider}, cfg.EnabledProviders())
}

func TestEnabledProvidersEmpty(t *testing.T) {
	cfg := &Config{}
	assert.Empty(t, cfg.EnabledProviders())
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none", schema.NoneBackend, "", false},
		{"mysql ok", schema.MySQLBackend, "root:pw@tcp(localhost:3306)/wrapped", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@localhost/wrapped", true},
		{"postgres ok", schema.PostgreSQLBackend, "host=localhost port=5432 dbname=wrapped", false},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRevalidateYear(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	cfg := &Config{Year: 2024, Location: berlin}
	require.NoError(t, RevalidateYear(cfg, 2023, ""))
	assert.Equal(t, 2023, cfg.Year)
	assert.Equal(t, berlin, cfg.Location, "empty timezone keeps the configured location")

	require.NoError(t, RevalidateYear(cfg, 2022, "UTC"))
	assert.Equal(t, time.UTC, cfg.Location)

	assert.ErrorContains(t, RevalidateYear(cfg, 1999, ""), "year must be between")
	assert.ErrorContains(t, RevalidateYear(cfg, time.Now().Year()+1, ""), "year must be between")
	assert.ErrorContains(t, RevalidateYear(cfg, 2024, "Mars/Olympus"), "invalid timezone")
	assert.Equal(t, 2022, cfg.Year, "failed validation leaves the year alone")
}
