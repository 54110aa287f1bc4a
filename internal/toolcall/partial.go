// internal/toolcall/partial.go
package toolcall

import "strings"

// SuppressTrailingPartial hides a JSON object that is still open at the very
// end of text so that a half-typed call such as `{"to` never flashes on
// screen. The tail is removed when it mentions "tool or "name, is a bare
// '{', or is a '{' whose first non-space byte opens a quoted key. Trailing
// whitespace before the removed tail is trimmed. Anything else is returned
// unchanged.
func SuppressTrailingPartial(text string) string {
	state := NewScanState()
	for i := 0; i < len(text); i++ {
		state.Step(i, text[i])
	}
	if state.Depth == 0 || state.ObjectStart < 0 {
		return text
	}
	if !looksLikePartialCall(text[state.ObjectStart:]) {
		return text
	}
	return strings.TrimRight(text[:state.ObjectStart], " \t\r\n")
}

func looksLikePartialCall(tail string) bool {
	if strings.Contains(tail, `"tool`) || strings.Contains(tail, `"name`) {
		return true
	}
	rest := strings.TrimLeft(tail[1:], " \t\r\n")
	return rest == "" || rest[0] == '"'
}
