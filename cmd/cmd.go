// Package cmd defines the command-line interface for dev-wrapped.
package cmd

import (
	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the export subcommands to the parent export command
	exportCmd.AddCommand(exportRunCmd)
	exportCmd.AddCommand(exportStatusCmd)
	exportCmd.AddCommand(exportClearCmd)
	exportCmd.AddCommand(exportMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("year", "y", 0, "Calendar year to summarize (default: current year)")
	rootCmd.PersistentFlags().String("timezone", "", "IANA time zone used to bucket timestamps (default: local)")
	rootCmd.PersistentFlags().String("github-url", "", "GitHub Enterprise base URL (empty for github.com)")
	rootCmd.PersistentFlags().String("gitlab-url", contract.DefaultGitLabURL, "GitLab instance URL")
	rootCmd.PersistentFlags().Float64("gitlab-rps", contract.DefaultGitLabRPS, "GitLab requests per second")
	rootCmd.PersistentFlags().Int("gitlab-burst", contract.DefaultGitLabBurst, "GitLab request burst size")
	rootCmd.PersistentFlags().String("http-timeout", contract.DefaultHTTPTimeout.String(), "Timeout for each provider HTTP request")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Bool("card", true, "Render the SVG card")
	rootCmd.PersistentFlags().String("card-file", "", "Path of the SVG card (default: wrapped_<year>.svg)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("cache-ttl", contract.DefaultCacheTTL.String(), "How long cached commit details stay valid")
	rootCmd.PersistentFlags().String("export-backend", string(schema.NoneBackend), "Snapshot export backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("export-db-connect", "", "Database connection string for snapshot export (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of exportMigrateCmd to Viper
	exportMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(exportMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export migrate flags", err)
	}
}
