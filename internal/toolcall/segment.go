// internal/toolcall/segment.go
package toolcall

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// SegmentKind tags the variant held by a Segment.
type SegmentKind int

const (
	// SegmentText is prose to show the user.
	SegmentText SegmentKind = iota
	// SegmentToolCall is a structured tool invocation.
	SegmentToolCall
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentText:
		return "text"
	case SegmentToolCall:
		return "tool_call"
	default:
		return "unknown"
	}
}

// Segment is one unit of engine output: prose or a tool call. Pending marks
// a tool call whose JSON has not been fully received; its Tool may still be
// the zero name and its Params are empty.
type Segment struct {
	Kind    SegmentKind
	Content string
	Call    ToolCall
	Pending bool
}

// TextSegment builds a prose segment.
func TextSegment(content string) Segment {
	return Segment{Kind: SegmentText, Content: content}
}

// CallSegment builds a completed tool call segment.
func CallSegment(call ToolCall) Segment {
	return Segment{Kind: SegmentToolCall, Call: call}
}

// IsToolCall reports whether s holds a tool call, pending or not.
func (s Segment) IsToolCall() bool { return s.Kind == SegmentToolCall }

// MarshalJSON renders text as {"type":"text","content":...} and calls as
// {"type":"tool_call","tool":...,"params":{...},"raw":...,"pending":...}.
func (s Segment) MarshalJSON() ([]byte, error) {
	if s.Kind != SegmentToolCall {
		return marshalUnescaped(struct {
			Type    string `json:"type"`
			Content string `json:"content"`
		}{Type: s.Kind.String(), Content: s.Content})
	}
	return marshalUnescaped(struct {
		Type    string        `json:"type"`
		Tool    CanonicalName `json:"tool"`
		Params  Params        `json:"params"`
		Raw     string        `json:"raw"`
		Pending bool          `json:"pending,omitempty"`
	}{
		Type:    s.Kind.String(),
		Tool:    s.Call.Tool,
		Params:  s.Call.Params,
		Raw:     s.Call.Raw,
		Pending: s.Pending,
	})
}

// marshalUnescaped is json.Marshal without HTML escaping.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// candidatePattern finds where a tool call object may start.
var candidatePattern = regexp.MustCompile(`\{\s*"(?:tool|name)"`)

// partialNamePattern reads the name of a call that is still streaming.
// Group 2 is empty until the closing quote has arrived.
var partialNamePattern = regexp.MustCompile(`"(?:tool|name)"\s*:\s*"((?:[^"\\]|\\.)*)(")?`)

// Segment splits buffer into ordered prose and tool call segments. It never
// returns an empty slice and never fails: spans that are malformed or name
// an unregistered tool stay prose, and a call still being streamed at the
// end of the buffer becomes a pending placeholder.
func (e *Engine) Segment(buffer string) []Segment {
	var b segmentBuilder
	pos, search := 0, 0
	afterCall := false

	for search < len(buffer) {
		loc := candidatePattern.FindStringIndex(buffer[search:])
		if loc == nil {
			break
		}
		start := search + loc[0]

		end, closed := ScanObject(buffer, start)
		if !closed {
			if !e.pending(&b, buffer[pos:start], buffer[start:], afterCall) {
				b.text(buffer[pos:], afterCall, false)
			}
			pos = len(buffer)
			break
		}

		res, err := decodeSpan(buffer[start:end], e.registry)
		if err != nil {
			e.log.WithFields(logrus.Fields{"offset": start, "reason": err.Error()}).Debug("tool call span kept as text")
			search = start + 1
			continue
		}
		if res.repaired {
			e.log.WithFields(logrus.Fields{"offset": start, "tool": res.call.Tool.String()}).Debug("repaired malformed tool call json")
		}

		b.text(buffer[pos:start], afterCall, true)
		b.segs = append(b.segs, CallSegment(res.call))
		pos = skipWrapperTail(buffer, end)
		search = pos
		afterCall = true
	}

	if pos < len(buffer) {
		b.text(buffer[pos:], afterCall, false)
	}
	if len(b.segs) == 0 {
		return []Segment{TextSegment(StripToolArtifacts(buffer))}
	}
	return b.segs
}

// pending emits the prose before an unterminated call and the call's
// placeholder. It reports false, emitting nothing, when the call already
// names a tool the registry rejects; the caller then keeps it all as prose.
func (e *Engine) pending(b *segmentBuilder, before, tail string, afterCall bool) bool {
	head, rest := tail, ""
	if idx := e.dialogueStart(tail); idx > 0 {
		head, rest = tail[:idx], tail[idx:]
	}
	head = strings.TrimRight(head, " \t\r\n")

	var tool CanonicalName
	if m := partialNamePattern.FindStringSubmatchIndex(head); m != nil && m[4] >= 0 {
		name := head[m[2]:m[3]]
		canonical, ok := e.registry.Lookup(name)
		if !ok {
			e.log.WithField("tool", name).Debug("streaming call names an unknown tool")
			return false
		}
		tool = canonical
	}

	b.text(before, afterCall, true)
	b.segs = append(b.segs, Segment{
		Kind:    SegmentToolCall,
		Call:    ToolCall{Raw: head, Tool: tool},
		Pending: true,
	})
	if rest != "" {
		b.text(rest, false, false)
	}
	return true
}

// skipWrapperTail steps over the `]`, `,` and whitespace an array wrapper
// leaves after a call.
func skipWrapperTail(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ']', ',', ' ', '\t', '\r', '\n':
			i++
		default:
			return i
		}
	}
	return i
}

type segmentBuilder struct {
	segs []Segment
}

// text strips a prose region and appends it when anything is left.
// afterCall trims the `]`/`,` remnants of a consumed array wrapper,
// beforeCall trims the `[` that opens one.
func (b *segmentBuilder) text(s string, afterCall, beforeCall bool) {
	s = StripToolArtifacts(s)
	if afterCall {
		s = strings.TrimLeft(s, "], \t\r\n")
	}
	if beforeCall {
		s = strings.TrimRight(strings.TrimSuffix(s, "["), " \t\r\n")
	}
	if s == "" {
		return
	}
	b.segs = append(b.segs, TextSegment(s))
}
