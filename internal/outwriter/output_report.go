package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/internal/parquet"
	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// topExtensionCount bounds the extension table.
const topExtensionCount = 10

// WriteReport outputs a yearly report, dispatching based on the output format configured.
func WriteReport(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteBuckets(w, parquet.ConvertBucketRows(report.Year, schema.Flatten(report.Stats)))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, report, cfg, fmtFloat, intFmt, duration)
		}, "Wrote report")
	}
	return nil
}

// writeReportCSV writes the flattened record as field,key,value rows.
func writeReportCSV(w io.Writer, report *schema.Report, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, []string{"year", "field", "key", "value"}, func(cw *csv.Writer) error {
		year := strconv.Itoa(report.Year)
		for _, row := range schema.Flatten(report.Stats) {
			value := fmtFloat(row.Value)
			if row.Field != schema.FieldLanguages {
				value = strconv.FormatFloat(row.Value, 'f', -1, 64)
			}
			if err := cw.Write([]string{year, row.Field, row.Key, value}); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeReportText renders the banner and the summary tables.
func writeReportText(w io.Writer, report *schema.Report, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	stats, summary := report.Stats, report.Summary
	barWidth := getMaxBarWidth(cfg)

	banner := fmt.Sprintf("%d Wrapped: %s", report.Year, report.DisplayName())
	if cfg.UseEmojis {
		banner = "🎁 " + banner
	}
	if _, err := fmt.Fprintf(w, "%s\n", contract.Paint(contract.TitleColor, cfg.UseColors, banner)); err != nil {
		return err
	}
	for _, id := range report.Identities {
		if _, err := fmt.Fprintf(w, "  %s %s\n", contract.Paint(contract.AccentColor, cfg.UseColors, string(id.Provider)), id); err != nil {
			return err
		}
	}

	headline := [][]string{
		{"Total commits", contract.FormatThousands(stats.TotalCommits)},
		{"Active days", fmt.Sprintf(intFmt, summary.ActiveDays)},
		{"Longest streak", fmt.Sprintf("%d days", summary.LongestStreak)},
		{"Projects", fmt.Sprintf(intFmt, stats.ProjectsCount)},
		{"Lines added", contract.Paint(contract.AddedColor, cfg.UseColors, "+"+contract.FormatThousands(stats.LinesAdded))},
		{"Lines deleted", contract.Paint(contract.DeletedColor, cfg.UseColors, "-"+contract.FormatThousands(stats.LinesDeleted))},
		{"Busiest day", formatDayRecord(summary.BusiestCommitDay, "commits")},
		{"Most projects in a day", formatDayRecord(summary.BusiestProjectDay, "projects")},
		{"Avg projects per day", fmtFloat(summary.AvgProjectsPerDay)},
		{"Persona", contract.Paint(contract.AccentColor, cfg.UseColors, summary.Persona)},
	}
	if err := renderTable(w, []string{"Metric", "Value"}, headline); err != nil {
		return err
	}

	var months [][]string
	maxMonth := maxValue(stats.CommitsByMonth)
	for m := time.January; m <= time.December; m++ {
		n := stats.CommitsByMonth.Get(int(m))
		months = append(months, []string{m.String()[:3], fmt.Sprintf(intFmt, n), bar(n, maxMonth, barWidth)})
	}
	if err := renderTable(w, []string{"Month", "Commits", ""}, months); err != nil {
		return err
	}

	var types [][]string
	total := stats.CommitTypes.Total()
	for _, ct := range schema.AllCommitTypes {
		n := stats.CommitTypes.Get(ct)
		if n == 0 {
			continue
		}
		types = append(types, []string{string(ct), fmt.Sprintf(intFmt, n), percent(fmtFloat, float64(n), float64(total))})
	}
	if len(types) > 0 {
		if err := renderTable(w, []string{"Type", "Commits", "Share"}, types); err != nil {
			return err
		}
	}

	var langs [][]string
	for _, l := range summary.TopLanguages {
		langs = append(langs, []string{l.Name, percent(fmtFloat, l.Share, 1), bar(int(l.Share*1000), 1000, barWidth)})
	}
	if len(langs) > 0 {
		if err := renderTable(w, []string{"Language", "Share", ""}, langs); err != nil {
			return err
		}
	}

	var exts [][]string
	for _, e := range schema.TopN(stats.Extensions, topExtensionCount) {
		exts = append(exts, []string{e.Key, fmt.Sprintf(intFmt, e.Value)})
	}
	if len(exts) > 0 {
		if err := renderTable(w, []string{"Extension", "Files"}, exts); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Report built in %v from %d provider(s). Cache backend: %s\n", duration, len(report.Identities), cfg.CacheBackend)
	return err
}

// renderTable writes one right-aligned table with the given header.
func renderTable(w io.Writer, headers []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func formatDayRecord(d schema.DayRecord, unit string) string {
	if d.Date == "" {
		return "-"
	}
	return fmt.Sprintf("%s (%d %s)", d.Date, d.Value, unit)
}

func percent(fmtFloat func(float64) string, part, whole float64) string {
	if whole <= 0 {
		return fmtFloat(0) + "%"
	}
	return fmtFloat(100*part/whole) + "%"
}

// bar draws a horizontal bar of n relative to peak, at most width cells.
func bar(n, peak, width int) string {
	if n <= 0 || peak <= 0 || width <= 0 {
		return ""
	}
	cells := max(n*width/peak, 1)
	return strings.Repeat("█", cells)
}

func maxValue(c schema.Counter[int, int]) int {
	peak := 0
	for _, v := range c {
		peak = max(peak, v)
	}
	return peak
}
