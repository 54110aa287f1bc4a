// internal/toolcall/strip.go
package toolcall

import (
	"regexp"
	"strings"
)

var (
	reasoningBlockPattern = regexp.MustCompile(`(?is)<think(?:ing)?>.*?</think(?:ing)?>`)
	reasoningTagPattern   = regexp.MustCompile(`(?i)</?think(?:ing)?>`)
	toolCallTagPattern    = regexp.MustCompile(`(?i)</?tool_call>`)

	// A whole line holding only `"key": {...}`, the body of a tool call whose
	// opening brace was already consumed.
	leakedFragmentPattern = regexp.MustCompile(`(?m)^[ \t]*"[^"\n]+"[ \t]*:[ \t]*\{[^\n]*\}[ \t]*[,\]}]*[ \t]*(?:\r?\n|$)`)

	excessNewlinePattern = regexp.MustCompile(`(?:[ \t]*\r?\n){3,}`)

	headingPattern       = regexp.MustCompile(`^[ \t]*#{1,6}[ \t]`)
	resultsHeaderPattern = regexp.MustCompile(`(?i)^[ \t]*##[ \t]*tool execution results[ \t]*:?[ \t]*$`)
	resultHeaderPattern  = regexp.MustCompile("(?i)^[ \\t]*###[ \\t]+`?([A-Za-z0-9_.\\-]+)`?[ \\t]*\\[(OK|FAIL)\\][ \\t]*$")
)

// StripToolArtifacts removes everything from a block of prose that must not
// be shown to a user: reasoning blocks and stray reasoning tags, legacy
// tool_call wrapper tags, leaked JSON fragment lines and earlier tool result
// reports. Runs of blank lines collapse to one blank line and the result is
// trimmed. The output is a fixed point: stripping it again changes nothing.
func StripToolArtifacts(text string) string {
	return untilStable(text, stripOnce)
}

// StripBlocks runs only the block-level passes (reasoning and result
// reports). It is safe on a buffer that still holds unsegmented tool calls,
// whose body lines would otherwise look like leaked fragments.
func StripBlocks(text string) string {
	return untilStable(text, func(s string) string {
		return stripResultSections(stripReasoning(s))
	})
}

// untilStable applies pass until it stops changing text. Every pass only
// deletes or collapses, so each changing round shortens the text.
func untilStable(text string, pass func(string) string) string {
	for {
		next := pass(text)
		if next == text {
			return text
		}
		text = next
	}
}

func stripOnce(text string) string {
	text = stripReasoning(text)
	text = leakedFragmentPattern.ReplaceAllString(text, "")
	text = stripResultSections(text)
	text = excessNewlinePattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// stripReasoning drops closed reasoning blocks with their content, then any
// unmatched opening or closing tag on its own.
func stripReasoning(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	text = reasoningBlockPattern.ReplaceAllString(text, "")
	text = reasoningTagPattern.ReplaceAllString(text, "")
	return toolCallTagPattern.ReplaceAllString(text, "")
}

// stripResultSections removes "## Tool Execution Results" sections and
// "### name [OK|FAIL]" blocks, each up to the next heading.
func stripResultSections(text string) string {
	if !strings.Contains(text, "#") {
		return text
	}
	lines := strings.SplitAfter(text, "\n")
	var b strings.Builder
	b.Grow(len(text))
	skipping := false
	for _, line := range lines {
		bare := strings.TrimRight(line, "\r\n")
		switch {
		case isResultHeading(bare):
			skipping = true
			continue
		case headingPattern.MatchString(bare):
			skipping = false
		case skipping:
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}

func isResultHeading(line string) bool {
	return resultsHeaderPattern.MatchString(line) || resultHeaderPattern.MatchString(line)
}
