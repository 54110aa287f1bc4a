// internal/commands/replay.go
package toolstream

import (
	"time"

	"github.com/fileshot/toolstream/internal/logging"
	"github.com/fileshot/toolstream/internal/render"
	"github.com/fileshot/toolstream/internal/toolcall"
	"github.com/fileshot/toolstream/internal/tui"
	"github.com/fileshot/toolstream/internal/util"
	"github.com/spf13/cobra"
)

// replayCmd implements 'replay', which feeds a saved response through the
// engine a few bytes at a time, the way a live stream would arrive.
var replayCmd = &cobra.Command{
	Use:   "replay [file]",
	Short: "Replay a saved response through the engine chunk by chunk",
	Long: `Feeds the input to the engine in growing prefixes of --chunk bytes, pausing --delay between steps.
Each step reports how many leading segments were unchanged since the previous step; a renderer only redraws the rest.
With --tui the replay runs in an interactive terminal viewer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, source, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		cfg := GetConfig()
		chunk, delay := 0, time.Duration(-1)
		if cfg != nil {
			chunk, delay = cfg.ReplayChunk(), cfg.ReplayDelay()
		}
		if cmd.Flags().Changed("chunk") {
			chunk, _ = cmd.Flags().GetInt("chunk")
		}
		if cmd.Flags().Changed("delay") {
			delay, _ = cmd.Flags().GetDuration("delay")
		}
		if chunk <= 0 {
			chunk = 1
		}
		delay = max(delay, 0)

		engine := Engine()
		if useTUI, _ := cmd.Flags().GetBool("tui"); useTUI {
			return tui.Run(cmd.Context(), engine, text, chunk, delay)
		}

		printer := newPrinter(cmd)
		ends := util.ChunkBoundaries(text, chunk)
		var prev []toolcall.Segment
		redraws := 0
		for i, end := range ends {
			segs := engine.Render(text[:end])
			stable := toolcall.CommonPrefix(prev, segs)
			redraws += len(segs) - stable
			if err := printer.Step(render.Step{Index: i + 1, Total: len(ends), Bytes: end, Stable: stable, Segments: segs}); err != nil {
				return err
			}
			prev = segs
			if i < len(ends)-1 && delay > 0 {
				select {
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				case <-time.After(delay):
				}
			}
		}
		logging.LogStage("replay", source, "", map[string]int{"steps": len(ends), "redraws": redraws})

		if JSONModeEnabled() {
			return nil
		}
		if prev == nil {
			prev = engine.Render(text)
		}
		return printer.Segments(prev)
	},
}

func init() {
	replayCmd.Flags().Int("chunk", 0, "bytes appended per step (default from config)")
	replayCmd.Flags().Duration("delay", 0, "pause between steps (default from config)")
	replayCmd.Flags().Bool("tui", false, "open the interactive replay viewer")
	rootCmd.AddCommand(replayCmd)
}
