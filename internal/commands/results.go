package toolstream

import (
	"github.com/fileshot/toolstream/internal/logging"
	"github.com/spf13/cobra"
)

// resultsCmd implements 'results', which lists the tool result reports
// found in a transcript.
var resultsCmd = &cobra.Command{
	Use:   "results [file]",
	Short: "Extract \"### name [OK|FAIL]\" tool result reports",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, source, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		results := Engine().ExtractToolResults(text)
		logging.LogStage("results", source, "", map[string]int{"tools": len(results)})
		debugDump(cmd, results)
		return newPrinter(cmd).Results(results)
	},
}

func init() {
	rootCmd.AddCommand(resultsCmd)
}
