package outwriter

import (
	"os"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"golang.org/x/term"
)

// getTerminalWidth returns the width override, the detected terminal width,
// or a conservative default when stdout is not a terminal.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxBarWidth sizes the bar column next to a label and a count column.
func getMaxBarWidth(cfg *contract.Config) int {
	available := getTerminalWidth(cfg) - 30 // Label + count columns with borders/padding
	return min(max(available, 10), 40)
}

// getMaxMessageWidth sizes the message column of the classification table.
func getMaxMessageWidth(cfg *contract.Config) int {
	available := getTerminalWidth(cfg) - 25 // Index + type columns with borders/padding
	return min(max(available, 20), 100)
}
