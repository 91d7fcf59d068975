package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/SimoneSapienza/dev-wrapped/core"
	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/spf13/cobra"
)

// classifyCmd tags commit messages without contacting any provider.
var classifyCmd = &cobra.Command{
	Use:   "classify [message...]",
	Short: "Tag commit messages as Merge, Feature, Bugfix, Refactor, Docs or Other.",
	Long: `Classify commit messages with the same rules the report uses.

Messages come from the arguments, or one per line from stdin when no argument is given.

Examples:
  # Classify a single message
  devwrapped classify "fix: handle empty response"

  # Classify a local history
  git log --format=%s | devwrapped classify --output csv`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadAndValidate()
	},
	Run: func(_ *cobra.Command, args []string) {
		messages := args
		if len(messages) == 0 {
			var err error
			if messages, err = readLines(os.Stdin); err != nil {
				contract.LogFatal("Cannot read messages from stdin", err)
			}
		}
		if err := core.ExecuteClassify(messages, cfg); err != nil {
			contract.LogFatal("Cannot classify messages", err)
		}
	},
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return lines, nil
}
