// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/schema"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a yearly report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	return WriteReport(report, cfg, duration)
}

// WriteClassifications prints commit message tags using the configured output format.
func (ow *OutWriter) WriteClassifications(results []schema.Classification, cfg *contract.Config) error {
	return WriteClassifications(results, cfg)
}
