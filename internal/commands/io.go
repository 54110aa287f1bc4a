package toolstream

import (
	"os"

	"github.com/fatih/color"
	"github.com/fileshot/toolstream/internal/render"
	"github.com/fileshot/toolstream/internal/util"
	"github.com/spf13/cobra"
)

// readInput returns the text of the file named in args, or stdin, and a
// label for logs.
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	data, err := util.ReadInput(path, cmd.InOrStdin())
	if err != nil {
		return "", path, err
	}
	if path == "" || path == "-" {
		path = "stdin"
	}
	return string(data), path, nil
}

// newPrinter writes to the command's output, colored only on a terminal.
func newPrinter(cmd *cobra.Command) *render.Printer {
	out := cmd.OutOrStdout()
	useColor := false
	if f, ok := out.(*os.File); ok && f == os.Stdout {
		useColor = !color.NoColor
	}
	return render.New(out, JSONModeEnabled(), useColor)
}

// debugDump pretty-prints v to stderr under --debug.
func debugDump(cmd *cobra.Command, v any) {
	if DebugEnabled() {
		render.New(cmd.ErrOrStderr(), false, false).Dump(v)
	}
}
