package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *schema.Report {
	s := schema.NewStats()
	s.TotalCommits = 1234
	s.ProjectsCount = 3
	s.LinesAdded = 5000
	s.LinesDeleted = 1200
	s.CommitsByMonth.Add(1, 1000)
	s.CommitsByMonth.Add(6, 234)
	s.CommitTypes.Add(schema.FeatureCommit, 800)
	s.CommitTypes.Add(schema.BugfixCommit, 434)
	s.Languages.Add("Go", 0.8)
	s.Languages.Add("Shell", 0.2)
	s.Extensions.Add(".go", 40)
	s.Extensions.Add(".md", 3)
	s.Dates.Add("2024-01-02")
	s.DailyCommits.Add("2024-01-02", 1234)

	return &schema.Report{
		Year:       2024,
		Identities: []schema.Identity{{Provider: schema.GitHubProvider, Login: "octo", Name: "Octo Cat"}},
		Stats:      s,
		Summary: schema.Summary{
			Persona:          "9-to-5 Pro",
			LongestStreak:    1,
			ActiveDays:       1,
			BusiestCommitDay: schema.DayRecord{Date: "2024-01-02", Value: 1234},
			TopLanguages: []schema.LanguageShare{
				{Name: "Go", Weight: 0.8, Share: 0.8},
				{Name: "Shell", Weight: 0.2, Share: 0.2},
			},
		},
	}
}

func testConfig() *contract.Config {
	return &contract.Config{Precision: 1, Width: 100, Output: schema.TextOut, CacheBackend: schema.NoneBackend}
}

func TestWriteReportText(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(1)
	require.NoError(t, writeReportText(&buf, sampleReport(), testConfig(), fmtFloat, intFmt, time.Second))

	out := buf.String()
	assert.Contains(t, out, "2024 Wrapped: Octo Cat")
	assert.Contains(t, out, "Octo Cat (@octo)")
	assert.Contains(t, out, "1,234")
	assert.Contains(t, out, "+5,000")
	assert.Contains(t, out, "2024-01-02 (1234 commits)")
	assert.Contains(t, out, "Feature")
	assert.Contains(t, out, "80.0%")
	assert.Contains(t, out, ".go")
	assert.Contains(t, out, "from 1 provider(s)")
	assert.NotContains(t, out, "🎁", "emojis are off by default")
}

func TestWriteReportTextEmptyYear(t *testing.T) {
	report := &schema.Report{Year: 2024, Stats: schema.NewStats(), Summary: schema.Summary{Persona: "The Ghost"}}
	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(1)
	require.NoError(t, writeReportText(&buf, report, testConfig(), fmtFloat, intFmt, 0))

	out := buf.String()
	assert.Contains(t, out, "2024 Wrapped: Dev")
	assert.Contains(t, out, "The Ghost")
	assert.NotContains(t, out, "Language", "empty sections are skipped")
}

func TestWriteReportJSON(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReport(sampleReport(), cfg, 0))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var back schema.Report
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 2024, back.Year)
	assert.Equal(t, 1234, back.Stats.TotalCommits)
	assert.Equal(t, "9-to-5 Pro", back.Summary.Persona)
}

func TestWriteReportCSV(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(2)
	require.NoError(t, writeReportCSV(&buf, sampleReport(), fmtFloat))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"year", "field", "key", "value"}, records[0])
	assert.Contains(t, records, []string{"2024", "totals", "total_commits", "1234"})
	assert.Contains(t, records, []string{"2024", "languages", "Go", "0.80"})
	assert.Contains(t, records, []string{"2024", "commits_by_month", "6", "234"})
}

func TestWriteReportParquet(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "report.parquet")
	require.NoError(t, WriteReport(sampleReport(), cfg, 0))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PAR1")))
}

func TestWriteClassifications(t *testing.T) {
	results := []schema.Classification{
		{Message: "feat: add login", Type: schema.FeatureCommit},
		{Message: "Merge branch 'main'", Type: schema.MergeCommit},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeClassificationTable(&buf, results, testConfig()))
		assert.Contains(t, buf.String(), "feat: add login")
		assert.Contains(t, buf.String(), "Merge")
		assert.Contains(t, buf.String(), "Classified 2 message(s)")
	})

	t.Run("csv file", func(t *testing.T) {
		cfg := testConfig()
		cfg.Output = schema.CSVOut
		cfg.OutputFile = filepath.Join(t.TempDir(), "tags.csv")
		require.NoError(t, WriteClassifications(results, cfg))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		assert.Equal(t, []string{"message,type", "feat: add login,Feature", "Merge branch 'main',Merge"}, lines)
	})
}

func TestBar(t *testing.T) {
	tests := []struct {
		name          string
		n, peak, cols int
		want          int
	}{
		{"full", 10, 10, 20, 20},
		{"half", 5, 10, 20, 10},
		{"tiny value still shows", 1, 1000, 20, 1},
		{"zero", 0, 10, 20, 0},
		{"no peak", 3, 0, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, len([]rune(bar(tt.n, tt.peak, tt.cols))))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "abc", truncate("abc", 2))
}

func TestWidths(t *testing.T) {
	cfg := &contract.Config{Width: 200}
	assert.Equal(t, 40, getMaxBarWidth(cfg))
	assert.Equal(t, 100, getMaxMessageWidth(cfg))

	cfg.Width = 30
	assert.Equal(t, 10, getMaxBarWidth(cfg))
	assert.Equal(t, 20, getMaxMessageWidth(cfg))
}
