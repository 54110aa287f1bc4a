package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fileshot/toolstream/internal/toolcall"
	"github.com/fileshot/toolstream/internal/util"
)

var (
	headerStyle  = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	badgeStyle   = lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("255")).Padding(0, 1).MarginLeft(1)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	textStyle    = lipgloss.NewStyle()
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	toolStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("40")).Padding(0, 1)
	pendingStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("214")).Foreground(lipgloss.Color("244")).Padding(0, 1)
	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
)

// renderSegments lays out segments for a terminal of the given width.
// Segments from index stable on changed in the last step and are
// highlighted.
func renderSegments(segs []toolcall.Segment, stable, width int) string {
	inner := max(width-4, 10)
	blocks := make([]string, 0, len(segs))
	for i, seg := range segs {
		changed := i >= stable
		switch {
		case !seg.IsToolCall():
			if seg.Content == "" {
				continue
			}
			style := textStyle
			if changed {
				style = changedStyle
			}
			blocks = append(blocks, style.Render(util.WrapToWidth(seg.Content, inner)))
		case seg.Pending:
			name := seg.Call.Tool.String()
			if name == "" {
				name = "…"
			}
			body := nameStyle.Render(name) + "\n" + util.WrapToWidth(util.TruncateRunes(seg.Call.Raw, inner*2), inner)
			blocks = append(blocks, pendingStyle.Render(body))
		default:
			blocks = append(blocks, toolStyle.Render(callBody(seg.Call, inner)))
		}
	}
	return strings.Join(blocks, "\n")
}

func callBody(call toolcall.ToolCall, width int) string {
	lines := []string{nameStyle.Render(call.Tool.String())}
	for _, param := range call.Params {
		value := util.TruncateRunes(call.Params.String(param.Key), width*3)
		lines = append(lines, util.WrapToWidth(fmt.Sprintf("%s: %s", param.Key, value), width))
	}
	return strings.Join(lines, "\n")
}
