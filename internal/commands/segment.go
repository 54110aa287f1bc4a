// internal/commands/segment.go
package toolstream

import (
	"github.com/fileshot/toolstream/internal/logging"
	"github.com/spf13/cobra"
)

// segmentCmd implements 'segment', which prints the prose and tool call
// segments of a model response.
var segmentCmd = &cobra.Command{
	Use:   "segment [file]",
	Short: "Split a model response into prose and tool call segments",
	Long: `Reads a model response from a file (or stdin) and prints its ordered prose and tool call segments.
By default the full streaming pipeline runs: reasoning and result blocks are stripped and a half-typed trailing call is hidden.
With --raw only the segmenter runs, so an unterminated call shows up as a pending placeholder.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, source, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetBool("raw")

		engine := Engine()
		segs := engine.Render(text)
		if raw {
			segs = engine.Segment(text)
		}

		calls := 0
		for _, seg := range segs {
			if seg.IsToolCall() {
				calls++
			}
		}
		logging.LogStage("segment", source, "", map[string]int{"bytes": len(text), "segments": len(segs), "calls": calls})
		debugDump(cmd, segs)
		return newPrinter(cmd).Segments(segs)
	},
}

func init() {
	segmentCmd.Flags().Bool("raw", false, "run the segmenter without the stripping and suppression pre-pass")
	rootCmd.AddCommand(segmentCmd)
}
