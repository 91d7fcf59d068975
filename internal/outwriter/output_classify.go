package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/schema"
)

// WriteClassifications outputs commit message tags in the configured format.
// Parquet is not offered for classifications, so it falls back to the table.
func WriteClassifications(results []schema.Classification, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"message", "type"}, func(cw *csv.Writer) error {
				for _, r := range results {
					if err := cw.Write([]string{r.Message, string(r.Type)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClassificationTable(w, results, cfg)
		}, "Wrote table")
	}
}

func writeClassificationTable(w io.Writer, results []schema.Classification, cfg *contract.Config) error {
	width := getMaxMessageWidth(cfg)
	data := make([][]string, len(results))
	for i, r := range results {
		data[i] = []string{
			strconv.Itoa(i + 1),
			truncate(r.Message, width),
			contract.Paint(contract.AccentColor, cfg.UseColors, string(r.Type)),
		}
	}
	if err := renderTable(w, []string{"#", "Message", "Type"}, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Classified %d message(s)\n", len(results))
	return err
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n || n < 4 {
		return s
	}
	return string(runes[:n-3]) + "..."
}
