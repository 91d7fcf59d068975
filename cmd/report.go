package cmd

import (
	"github.com/SimoneSapienza/dev-wrapped/core"
	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd builds the yearly report. It is also what the bare root command runs.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the yearly report and render the SVG card.",
	Long: `Collect one calendar year from every provider that has a token, merge the
results and print the report.

The report covers:
- Headline totals (commits, projects, lines, active days, longest streak)
- Busiest days by commits and by projects
- Commits per month and per commit type
- Top languages and file extensions
- A coding persona derived from the hours you commit at

Providers that fail to connect are skipped with a warning.

Examples:
  # Report on the current year
  devwrapped report

  # Report on 2024 in Rome time, without the card
  devwrapped report --year 2024 --timezone Europe/Rome --card=false

  # Save the flattened statistics for a notebook
  devwrapped report --output parquet --output-file wrapped.parquet

  # Also keep a snapshot in PostgreSQL
  DEVWRAPPED_EXPORT_DB_CONNECT="host=db dbname=wrapped" devwrapped report --export-backend postgresql`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runReport,
}

func runReport(_ *cobra.Command, _ []string) {
	if err := core.ExecuteReport(rootCtx, cfg, cacheManager); err != nil {
		contract.LogFatal("Cannot build yearly report", err)
	}
}
