// Package render draws the yearly infographic card as SVG.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"os"
	"strings"
	"text/template"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/schema"
)

const (
	svgWidth  = 800
	svgHeight = 1110

	// Weekly velocity plot area.
	velLeft   = 60.0
	velRight  = 760.0
	velTop    = 290.0
	velBottom = 440.0
	velWeeks  = 52

	// Punch card grid.
	punchLeft   = 140.0
	punchStepX  = 90.0
	punchTop    = 515.0
	punchStepY  = 13.0
	punchMinR   = 2.0
	punchScaleR = 7.0

	// Language bars.
	langTop    = 915.0
	langStep   = 26.0
	langLeft   = 200.0
	langMaxLen = 480.0
)

// languagePalette colors the language bars in rank order.
var languagePalette = []string{"#a1c9f4", "#ffb482", "#8de5a1", "#ff9f9b", "#d0bbff", "#debb9b"}

var (
	dayLabels  = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	hourLabels = []int{0, 6, 12, 18, 23}
	weekTicks  = []int{1, 13, 26, 39, 52}
)

//go:embed templates/wrapped.svg.tmpl
var wrappedTemplate string

var wrappedTmpl = template.Must(
	template.New("wrapped").
		Funcs(template.FuncMap{
			"addf":    func(a, b float64) float64 { return a + b },
			"subf":    func(a, b float64) float64 { return a - b },
			"mulf":    func(a, b float64) float64 { return a * b },
			"float64": func(i int) float64 { return float64(i) },
		}).
		Parse(wrappedTemplate),
)

type statCell struct {
	X        float64
	Value    string
	Label    string
	Sublabel string
	Color    string
}

type tick struct {
	X, Y  float64
	Label string
}

type bubble struct {
	CX, CY, R float64
}

type languageBar struct {
	Name    string
	Percent string
	Y       float64
	Length  float64
	Color   string
}

type wrappedViewModel struct {
	Width  int
	Height int

	Title    string
	Subtitle string

	Stats []statCell

	VelocityLine string
	VelocityArea string
	WeekTicks    []tick

	Bubbles   []bubble
	DayTicks  []tick
	HourTicks []tick

	Languages []languageBar
}

// RenderCard produces the SVG card for one year.
func RenderCard(year int, name string, stats *schema.Stats, summary schema.Summary) ([]byte, error) {
	if stats == nil {
		return nil, fmt.Errorf("render svg: no statistics for %d", year)
	}

	vm := wrappedViewModel{
		Width:    svgWidth,
		Height:   svgHeight,
		Title:    fmt.Sprintf("DEV WRAPPED %d", year),
		Subtitle: "@" + name,
		Stats: []statCell{
			{X: 100, Value: contract.FormatThousands(stats.TotalCommits), Label: "COMMITS", Color: "#ffffff"},
			{X: 300, Value: fmt.Sprint(summary.LongestStreak), Label: "DAY STREAK", Color: "#f1c40f"},
			{X: 500, Value: fmt.Sprint(summary.BusiestProjectDay.Value), Label: "MAX PROJ/DAY", Sublabel: onDate(summary.BusiestProjectDay), Color: "#3498db"},
			{X: 700, Value: fmt.Sprint(summary.BusiestCommitDay.Value), Label: "MAX COMM/DAY", Sublabel: onDate(summary.BusiestCommitDay), Color: "#e74c3c"},
		},
	}

	vm.VelocityLine, vm.VelocityArea = velocityPaths(stats.WeeklyActivity)
	for _, w := range weekTicks {
		vm.WeekTicks = append(vm.WeekTicks, tick{X: weekX(w), Y: velBottom + 18, Label: fmt.Sprintf("W%d", w)})
	}

	vm.Bubbles = punchBubbles(stats.PunchCard)
	for d, label := range dayLabels {
		vm.DayTicks = append(vm.DayTicks, tick{X: punchLeft + float64(d)*punchStepX, Y: punchTop + 24*punchStepY + 10, Label: label})
	}
	for _, h := range hourLabels {
		vm.HourTicks = append(vm.HourTicks, tick{X: 60, Y: punchTop + float64(h)*punchStepY + 4, Label: fmt.Sprintf("%02d:00", h)})
	}

	for i, l := range summary.TopLanguages {
		vm.Languages = append(vm.Languages, languageBar{
			Name:    l.Name,
			Percent: fmt.Sprintf("%.0f%%", l.Share*100),
			Y:       langTop + float64(i)*langStep,
			Length:  math.Max(l.Share*langMaxLen, 1),
			Color:   languagePalette[i%len(languagePalette)],
		})
	}

	var buf bytes.Buffer
	if err := wrappedTmpl.Execute(&buf, vm); err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCardFile writes a rendered card to path.
func WriteCardFile(path string, card []byte) error {
	if err := os.WriteFile(path, card, 0o644); err != nil {
		return fmt.Errorf("write card %s: %w", path, err)
	}
	return nil
}

func onDate(d schema.DayRecord) string {
	if d.Date == "" {
		return ""
	}
	return "on " + d.Date
}

func weekX(week int) float64 {
	return velLeft + float64(week-1)*(velRight-velLeft)/float64(velWeeks-1)
}

// velocityPaths returns the polyline points for weeks 1-52 and the closed
// polygon used to shade the area under it.
func velocityPaths(weekly schema.Counter[int, int]) (string, string) {
	peak := 1
	for w := 1; w <= velWeeks; w++ {
		peak = max(peak, weekly.Get(w))
	}

	points := make([]string, 0, velWeeks)
	for w := 1; w <= velWeeks; w++ {
		y := velBottom - float64(weekly.Get(w))/float64(peak)*(velBottom-velTop)
		points = append(points, fmt.Sprintf("%.1f,%.1f", weekX(w), y))
	}
	line := strings.Join(points, " ")
	area := fmt.Sprintf("%.1f,%.1f %s %.1f,%.1f", weekX(1), velBottom, line, weekX(velWeeks), velBottom)
	return line, area
}

// punchBubbles sizes one circle per (weekday, hour) slot by its share of the busiest slot.
func punchBubbles(punch schema.Counter[schema.PunchKey, int]) []bubble {
	peak := 0
	for _, v := range punch {
		peak = max(peak, v)
	}
	if peak == 0 {
		return nil
	}

	var out []bubble
	for d := range 7 {
		for h := range 24 {
			v := punch.Get(schema.PunchKey{Weekday: d, Hour: h})
			if v <= 0 {
				continue
			}
			out = append(out, bubble{
				CX: punchLeft + float64(d)*punchStepX,
				CY: punchTop + float64(h)*punchStepY,
				R:  punchMinR + math.Sqrt(float64(v)/float64(peak))*punchScaleR,
			})
		}
	}
	return out
}
