// internal/commands/parse.go
package toolstream

import (
	"errors"
	"fmt"

	"github.com/fileshot/toolstream/internal/logging"
	"github.com/fileshot/toolstream/internal/toolcall"
	"github.com/spf13/cobra"
)

// parseCmd implements 'parse', which decodes one JSON span into a tool call
// and explains why it was rejected when it is.
var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Decode and validate a single tool call JSON span",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, source, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		call, err := Engine().DecodeToolCall(text)
		if err != nil {
			cmd.SilenceUsage = true
			logging.LogStage("parse", source, "", map[string]string{"reason": rejectionReason(err), "error": err.Error()})
			var argErr *toolcall.ArgumentsError
			if errors.As(err, &argErr) {
				for _, detail := range argErr.Details {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", detail)
				}
			}
			return fmt.Errorf("rejected: %w", err)
		}

		logging.LogStage("parse", source, call.Tool.String(), call.Params)
		debugDump(cmd, call)
		return newPrinter(cmd).Call(call)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

// rejectionReason maps a decode error to a one-word reason for listings.
func rejectionReason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, toolcall.ErrEmptyInput):
		return "empty"
	case errors.Is(err, toolcall.ErrMalformedJSON):
		return "malformed"
	case errors.Is(err, toolcall.ErrNotObject):
		return "not-object"
	case errors.Is(err, toolcall.ErrMissingName):
		return "no-name"
	case errors.Is(err, toolcall.ErrUnknownTool):
		return "unknown-tool"
	case errors.Is(err, toolcall.ErrInvalidArguments):
		return "invalid-arguments"
	default:
		return "error"
	}
}
