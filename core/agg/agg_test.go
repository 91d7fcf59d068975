package agg

import (
	_ "embed"
	"encoding/json"
	"testing"

	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/github_stats.json
var githubStatsJSON []byte

//go:embed testdata/gitlab_stats.json
var gitlabStatsJSON []byte

//go:embed testdata/empty_stats.json
var emptyStatsJSON []byte

func loadStats(t *testing.T, data []byte) *schema.Stats {
	t.Helper()
	var s schema.Stats
	require.NoError(t, json.Unmarshal(data, &s))
	return &s
}

func TestMergeNoRecords(t *testing.T) {
	_, err := Merge()
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = Merge(nil, nil)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestMergeSingleIsIdentity(t *testing.T) {
	gh := loadStats(t, githubStatsJSON)

	merged, err := Merge(gh)
	require.NoError(t, err)
	assert.Equal(t, gh, merged)
	assert.NotSame(t, gh, merged)
}

func TestMergeWithEmpty(t *testing.T) {
	gh := loadStats(t, githubStatsJSON)

	merged, err := Merge(gh, loadStats(t, emptyStatsJSON))
	require.NoError(t, err)
	assert.Equal(t, gh, merged)
}

func TestMergeSums(t *testing.T) {
	gh := loadStats(t, githubStatsJSON)
	gl := loadStats(t, gitlabStatsJSON)

	merged, err := Merge(gh, gl)
	require.NoError(t, err)

	assert.Equal(t, 57, merged.TotalCommits)
	assert.Equal(t, 4, merged.ProjectsCount)
	assert.Equal(t, 120, merged.LinesAdded)
	assert.Equal(t, 30, merged.LinesDeleted)
	assert.Equal(t, 6, merged.CommitsByMonth.Get(1))
	assert.Equal(t, 1, merged.CommitsByMonth.Get(3))
	assert.Equal(t, 3, merged.CommitsByHour.Get(9))
	assert.InDelta(t, 52.8, merged.Languages.Get("Go"), 1e-9)
	assert.Equal(t, 52, merged.CommitTypes.Get(schema.BugfixCommit))
	assert.Equal(t, 6, merged.WeeklyActivity.Get(2))
	assert.Equal(t, 4, merged.DailyCommits.Get("2024-01-09"))

	assert.Equal(t, []string{"2024-01-08", "2024-01-09", "2024-02-14", "2024-03-01"}, merged.Dates.Sorted())
	assert.Equal(t,
		[]string{"github:octo/api", "github:octo/cli", "gitlab:42"},
		merged.DailyProjects["2024-01-09"].Sorted(),
	)
}

func TestMergeSelfDoublesCountersKeepsSets(t *testing.T) {
	gh := loadStats(t, githubStatsJSON)

	merged, err := Merge(gh, gh.Clone())
	require.NoError(t, err)

	assert.Equal(t, 2*gh.TotalCommits, merged.TotalCommits)
	assert.Equal(t, 2*gh.ProjectsCount, merged.ProjectsCount)
	for k, v := range gh.PunchCard {
		assert.Equal(t, 2*v, merged.PunchCard.Get(k))
	}
	for k, v := range gh.Languages {
		assert.Equal(t, 2*v, merged.Languages.Get(k))
	}
	for k, v := range gh.DailyCommits {
		assert.Equal(t, 2*v, merged.DailyCommits.Get(k))
	}
	assert.Equal(t, gh.Dates, merged.Dates)
	assert.Equal(t, gh.DailyProjects, merged.DailyProjects)
}

func TestMergeIsOrderIndependent(t *testing.T) {
	a := loadStats(t, githubStatsJSON)
	b := loadStats(t, gitlabStatsJSON)
	c := loadStats(t, githubStatsJSON)
	c.Languages.Add("Go", 0.1)
	c.Languages.Add("Zig", 0.7)

	orders := [][]*schema.Stats{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}

	want, err := Merge(orders[0]...)
	require.NoError(t, err)
	for _, order := range orders[1:] {
		got, err := Merge(order...)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	gh := loadStats(t, githubStatsJSON)
	gl := loadStats(t, gitlabStatsJSON)
	ghBefore, glBefore := gh.Clone(), gl.Clone()

	_, err := Merge(gh, gl)
	require.NoError(t, err)

	assert.Equal(t, ghBefore, gh)
	assert.Equal(t, glBefore, gl)
}

func FuzzMergeCommutative(f *testing.F) {
	f.Add(1, 2, 0.25, 0.5, "2024-01-01", "2024-01-02")
	f.Add(0, 0, 0.0, 0.0, "", "")
	f.Fuzz(func(t *testing.T, n1, n2 int, l1, l2 float64, d1, d2 string) {
		x := schema.NewStats()
		x.TotalCommits = n1
		x.Languages.Add("Go", l1)
		x.Dates.Add(d1)
		x.DailyCommits.Add(d1, n1)

		y := schema.NewStats()
		y.TotalCommits = n2
		y.Languages.Add("Go", l2)
		y.Dates.Add(d2)
		y.DailyCommits.Add(d2, n2)

		xy, err := Merge(x, y)
		require.NoError(t, err)
		yx, err := Merge(y, x)
		require.NoError(t, err)
		assert.Equal(t, xy.TotalCommits, yx.TotalCommits)
		assert.Equal(t, xy.Dates, yx.Dates)
		assert.Equal(t, xy.DailyCommits, yx.DailyCommits)
		if xy.Languages.Get("Go") == xy.Languages.Get("Go") { // NaN never compares equal
			assert.Equal(t, xy.Languages.Get("Go"), yx.Languages.Get("Go"))
		}
	})
}
