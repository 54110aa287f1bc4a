// internal/toolcall/results.go
package toolcall

import (
	"regexp"
	"strings"
)

// ToolResult is one reported outcome of a tool invocation.
type ToolResult struct {
	Tool string `json:"tool"`
	OK   bool   `json:"ok"`
	Text string `json:"text"`
}

var (
	resultsSectionPattern = regexp.MustCompile(`(?im)^[ \t]*##[ \t]*tool execution results[ \t]*:?[ \t]*$`)
	sectionEndPattern     = regexp.MustCompile(`(?m)^[ \t]*#{1,2}[ \t]`)
	resultBlockPattern    = regexp.MustCompile("(?im)^[ \\t]*###[ \\t]+`?([A-Za-z0-9_.\\-]+)`?[ \\t]*\\[(OK|FAIL)\\][ \\t]*$")
	nextHeadingPattern    = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]`)
)

// ExtractToolResults collects "### name [OK|FAIL]" report blocks. Blocks
// inside "## Tool Execution Results" sections are preferred; without any,
// headers anywhere in text are used. Results are keyed by canonical name
// when the registry knows the tool, and by the name as written otherwise.
func (e *Engine) ExtractToolResults(text string) map[string][]ToolResult {
	results := make(map[string][]ToolResult)
	for _, loc := range resultsSectionPattern.FindAllStringIndex(text, -1) {
		section := text[loc[1]:]
		if end := sectionEndPattern.FindStringIndex(section); end != nil {
			section = section[:end[0]]
		}
		e.collectResults(section, results)
	}
	if len(results) == 0 {
		e.collectResults(text, results)
	}
	return results
}

func (e *Engine) collectResults(text string, into map[string][]ToolResult) {
	for _, m := range resultBlockPattern.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		status := text[m[4]:m[5]]

		body := text[m[1]:]
		if next := nextHeadingPattern.FindStringIndex(body); next != nil {
			body = body[:next[0]]
		}

		key := name
		if canonical, ok := e.registry.Lookup(name); ok {
			key = canonical.String()
		}
		into[key] = append(into[key], ToolResult{
			Tool: key,
			OK:   strings.EqualFold(status, "OK"),
			Text: strings.TrimSpace(body),
		})
	}
}
