package toolstream

import (
	"fmt"
	"io"
	"strings"
)

// CommandInfo holds the path and description of a command for display.
type CommandInfo struct {
	Path        string
	Description string
}

// ListCommands prints the command tree in a two-column layout.
func ListCommands(out io.Writer, commands []CommandInfo) {
	listColumns(out, "Commands and Subcommands:", commands)
}

// listColumns prints rows under title with the second column aligned.
func listColumns(out io.Writer, title string, rows []CommandInfo) {
	maxPathLength := 0
	for _, data := range rows {
		maxPathLength = max(maxPathLength, len(data.Path))
	}

	fmt.Fprintln(out, title)
	for _, data := range rows {
		fmt.Fprintf(out, "  %s%s%s\n", data.Path, strings.Repeat(" ", maxPathLength-len(data.Path)+2), data.Description)
	}
}
