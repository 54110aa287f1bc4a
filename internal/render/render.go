// internal/render/render.go
// Package render writes engine output for people (colored, indented) or for
// programs (JSON).
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/fileshot/toolstream/internal/toolcall"
	"github.com/fileshot/toolstream/internal/util"
	"github.com/k0kubun/pp"
)

// rawPreviewRunes caps how much of a pending call's raw text is echoed.
const rawPreviewRunes = 60

// Printer writes segments, calls and results to out.
type Printer struct {
	out      io.Writer
	jsonMode bool

	textLabel    func(a ...any) string
	toolLabel    func(a ...any) string
	pendingLabel func(a ...any) string
	keyLabel     func(a ...any) string
	okLabel      func(a ...any) string
	failLabel    func(a ...any) string
}

// New returns a printer. Colors follow fatih/color's terminal detection
// unless useColor is false.
func New(out io.Writer, jsonMode, useColor bool) *Printer {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if !useColor {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &Printer{
		out:          out,
		jsonMode:     jsonMode,
		textLabel:    mk(color.FgWhite, color.Faint),
		toolLabel:    mk(color.FgCyan, color.Bold),
		pendingLabel: mk(color.FgYellow),
		keyLabel:     mk(color.FgBlue),
		okLabel:      mk(color.FgGreen),
		failLabel:    mk(color.FgRed),
	}
}

// Segments writes an ordered segment list.
func (p *Printer) Segments(segs []toolcall.Segment) error {
	if p.jsonMode {
		return p.writeJSON(segs)
	}
	for _, seg := range segs {
		if err := p.segment(seg); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) segment(seg toolcall.Segment) error {
	switch {
	case !seg.IsToolCall():
		_, err := fmt.Fprintf(p.out, "%s %s\n", p.textLabel("[text]"), seg.Content)
		return err
	case seg.Pending:
		name := seg.Call.Tool.String()
		if name == "" {
			name = "?"
		}
		preview := util.TruncateRunes(strings.ReplaceAll(seg.Call.Raw, "\n", " "), rawPreviewRunes)
		_, err := fmt.Fprintf(p.out, "%s %s %s\n", p.pendingLabel("[tool…]"), name, p.textLabel(preview))
		return err
	default:
		return p.call(seg.Call)
	}
}

// Call writes one completed call with its arguments in source order.
func (p *Printer) Call(call toolcall.ToolCall) error {
	if p.jsonMode {
		return p.writeJSON(call)
	}
	return p.call(call)
}

func (p *Printer) call(call toolcall.ToolCall) error {
	if _, err := fmt.Fprintf(p.out, "%s %s\n", p.toolLabel("[tool]"), call.Tool); err != nil {
		return err
	}
	for _, param := range call.Params {
		value := call.Params.String(param.Key)
		if strings.Contains(value, "\n") {
			value = "\n" + util.Indent(value, "        ")
		}
		if _, err := fmt.Fprintf(p.out, "    %s: %s\n", p.keyLabel(param.Key), value); err != nil {
			return err
		}
	}
	return nil
}

// Results writes extracted tool results grouped by tool name.
func (p *Printer) Results(results map[string][]toolcall.ToolResult) error {
	if p.jsonMode {
		return p.writeJSON(results)
	}
	if len(results) == 0 {
		_, err := fmt.Fprintln(p.out, "No tool results found.")
		return err
	}
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, res := range results[name] {
			status := p.okLabel("OK")
			if !res.OK {
				status = p.failLabel("FAIL")
			}
			if _, err := fmt.Fprintf(p.out, "%s [%s]\n", p.toolLabel(name), status); err != nil {
				return err
			}
			if res.Text != "" {
				if _, err := fmt.Fprintln(p.out, util.Indent(res.Text, "    ")); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Text writes plain text, or {"text": ...} in JSON mode.
func (p *Printer) Text(s string) error {
	if p.jsonMode {
		return p.writeJSON(map[string]string{"text": s})
	}
	_, err := fmt.Fprintln(p.out, s)
	return err
}

// Dump pretty-prints v for debugging.
func (p *Printer) Dump(v any) {
	_, _ = pp.Fprintln(p.out, v)
}

func (p *Printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
