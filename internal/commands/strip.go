package toolstream

import (
	"github.com/fileshot/toolstream/internal/logging"
	"github.com/fileshot/toolstream/internal/toolcall"
	"github.com/spf13/cobra"
)

// stripCmd implements 'strip', which removes reasoning, leaked JSON and
// echoed tool results from prose.
var stripCmd = &cobra.Command{
	Use:   "strip [file]",
	Short: "Remove reasoning blocks, leaked JSON fragments and echoed results",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, source, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		blocks, _ := cmd.Flags().GetBool("blocks")
		out := toolcall.StripToolArtifacts(text)
		if blocks {
			out = toolcall.StripBlocks(text)
		}
		logging.LogStage("strip", source, "", map[string]int{"in": len(text), "out": len(out)})
		return newPrinter(cmd).Text(out)
	},
}

// suppressCmd implements 'suppress', which hides a half-typed call at the
// end of the input.
var suppressCmd = &cobra.Command{
	Use:   "suppress [file]",
	Short: "Hide an unfinished tool call at the end of the input",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, source, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		out := toolcall.SuppressTrailingPartial(text)
		logging.LogStage("suppress", source, "", map[string]int{"in": len(text), "out": len(out)})
		return newPrinter(cmd).Text(out)
	},
}

func init() {
	stripCmd.Flags().Bool("blocks", false, "only strip reasoning blocks and result sections")
	rootCmd.AddCommand(stripCmd)
	rootCmd.AddCommand(suppressCmd)
}
