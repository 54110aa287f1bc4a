// internal/toolcall/segment_test.go
package toolcall

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
)

func toolName(tool string) CanonicalName { return CanonicalName{name: tool} }

func param(key, raw string) Param { return Param{Key: key, Value: json.RawMessage(raw)} }

func callSeg(raw, tool string, params ...Param) Segment {
	return CallSegment(ToolCall{Raw: raw, Tool: toolName(tool), Params: Params(params)})
}

func pendingSeg(raw, tool string) Segment {
	return Segment{Kind: SegmentToolCall, Call: ToolCall{Raw: raw, Tool: toolName(tool)}, Pending: true}
}

const (
	mixedCall   = `{"tool":"write_file","params":{"path":"a","content":"b"}}`
	mixedBuffer = `Sure, one sec. ` + mixedCall + ` Done!`
)

func TestSegment(t *testing.T) {
	t.Parallel()

	readX := `{"tool":"read_file","params":{"path":"x"}}`
	tests := []struct {
		name string
		in   string
		want []Segment
	}{
		{
			name: "mixed content",
			in:   mixedBuffer,
			want: []Segment{
				TextSegment("Sure, one sec."),
				callSeg(mixedCall, "write_file", param("path", `"a"`), param("content", `"b"`)),
				TextSegment("Done!"),
			},
		},
		{
			name: "array wrapper leaves no residue",
			in:   "[" + readX + "]",
			want: []Segment{callSeg(readX, "read_file", param("path", `"x"`))},
		},
		{
			name: "array wrapper inside prose",
			in:   "Reading now: [" + readX + "] then done",
			want: []Segment{
				TextSegment("Reading now:"),
				callSeg(readX, "read_file", param("path", `"x"`)),
				TextSegment("then done"),
			},
		},
		{
			name: "two calls in one array",
			in:   `[{"tool":"read_file","params":{"path":"a"}}, {"name":"cat","arguments":{"path":"b"}}]`,
			want: []Segment{
				callSeg(`{"tool":"read_file","params":{"path":"a"}}`, "read_file", param("path", `"a"`)),
				callSeg(`{"name":"cat","arguments":{"path":"b"}}`, "read_file", param("path", `"b"`)),
			},
		},
		{
			name: "unknown tool stays text",
			in:   `{"tool":"delete_universe","params":{}}`,
			want: []Segment{TextSegment(`{"tool":"delete_universe","params":{}}`)},
		},
		{
			name: "malformed span stays text",
			in:   `Try {"tool": read_file} ok`,
			want: []Segment{TextSegment(`Try {"tool": read_file} ok`)},
		},
		{
			name: "ordinary braces are prose",
			in:   `Use {x} and {"y": 1} here`,
			want: []Segment{TextSegment(`Use {x} and {"y": 1} here`)},
		},
		{name: "empty", in: "", want: []Segment{TextSegment("")}},
		{name: "only whitespace", in: " \n\t", want: []Segment{TextSegment("")}},
		{
			name: "prose is stripped",
			in:   "<think>hmm</think>Result:\n\n\n\n" + readX,
			want: []Segment{TextSegment("Result:"), callSeg(readX, "read_file", param("path", `"x"`))},
		},
		{
			name: "pending call with known name",
			in:   `Let me check. {"tool":"read_file","params":{"path":"sr`,
			want: []Segment{
				TextSegment("Let me check."),
				pendingSeg(`{"tool":"read_file","params":{"path":"sr`, "read_file"),
			},
		},
		{
			name: "pending call with incomplete name",
			in:   `{"tool":"read_fi`,
			want: []Segment{pendingSeg(`{"tool":"read_fi`, "")},
		},
		{
			name: "pending call without name yet",
			in:   `Okay {"name"`,
			want: []Segment{TextSegment("Okay"), pendingSeg(`{"name"`, "")},
		},
		{
			name: "pending call with unknown name stays text",
			in:   `Hi {"tool":"bogus","params":{`,
			want: []Segment{TextSegment(`Hi {"tool":"bogus","params":{`)},
		},
		{
			name: "pending call followed by dialogue",
			in:   "{\"tool\":\"run_command\",\"params\":{\"command\":\"ls\"\nI can also list the hidden files if you want.",
			want: []Segment{
				pendingSeg(`{"tool":"run_command","params":{"command":"ls"`, "run_command"),
				TextSegment("I can also list the hidden files if you want."),
			},
		},
		{
			name: "multi line call",
			in:   "Writing it now.\n{\n  \"tool\": \"write_file\",\n  \"params\": {\"path\": \"a\"}\n}",
			want: []Segment{
				TextSegment("Writing it now."),
				callSeg("{\n  \"tool\": \"write_file\",\n  \"params\": {\"path\": \"a\"}\n}", "write_file", param("path", `"a"`)),
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Segment(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Segment(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestSegmentCompletedCallsAreRegistered(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	inputs := []string{
		mixedBuffer,
		`{"tool":"nope"} {"tool":"ls"} {"name":"also_nope","params":{}}`,
		`[{"tool":"x"},{"tool":"grep","params":{"pattern":"a"}}]`,
	}
	for _, in := range inputs {
		for _, seg := range Segment(in) {
			if !seg.IsToolCall() || seg.Pending {
				continue
			}
			if !reg.IsKnown(seg.Call.Tool.String()) {
				t.Fatalf("Segment(%q) emitted unregistered tool %q", in, seg.Call.Tool)
			}
		}
	}
}

func TestSegmentNeverEmpty(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"<think>only reasoning</think>",
		"## Tool Execution Results\n### ls [OK]\nfiles",
		strings.Repeat(`{"name":`, 200),
		strings.Repeat(`{"tool":"x"}`, 100),
		`{"tool":"{"tool":"{"tool":`,
		`}}}]]],,,{`,
	}
	for _, in := range inputs {
		if got := Segment(in); len(got) == 0 {
			t.Fatalf("Segment(%q) returned no segments", in)
		}
	}
}

func TestSegmentStableUnderExtension(t *testing.T) {
	t.Parallel()

	buffers := []string{
		mixedBuffer,
		`Reading: [{"tool":"read_file","params":{"path":"x"}}] done`,
		`First {"tool":"ls","params":{"path":"."}} then {"name":"cat","arguments":{"path":"go.mod"}} end.`,
		"Checking {\"tool\":\"ls\",\"params\":{\"path\":\"ls\"\nDone.",
		"Checking {\"tool\":\"ls\",\"params\":{\"path\":\".\"\nNowhere near done.",
		"Checking {\"tool\":\"ls\",\"params\":{\"path\":\".\"\nCanonical paths only.",
	}
	for _, full := range buffers {
		final := Segment(full)
		for i := 1; i <= len(full); i++ {
			partial := Segment(full[:i])
			for j := 0; j < len(partial)-1; j++ {
				if j >= len(final) || !partial[j].Equal(final[j]) {
					t.Fatalf("prefix %q: segment %d = %+v, final has %+v", full[:i], j, partial[j], final)
				}
			}
		}
	}
}

func TestSegmentCoversInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		mixedBuffer,
		`First {"tool":"ls","params":{"path":"."}} then {"name":"cat","arguments":{"path":"go.mod"}} end.`,
		"{\"tool\":\"run_command\",\"params\":{\"command\":\"ls\"\nI can also list the hidden files if you want.",
		`Hi {"tool":"bogus"} there`,
	}
	for _, in := range inputs {
		var b strings.Builder
		for _, seg := range Segment(in) {
			if seg.IsToolCall() {
				b.WriteString(seg.Call.Raw)
			} else {
				b.WriteString(seg.Content)
			}
		}
		if got, want := dropSpace(b.String()), dropSpace(in); got != want {
			t.Fatalf("segments of %q cover %q", in, b.String())
		}
	}
}

func dropSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func TestSegmentMarshalJSON(t *testing.T) {
	t.Parallel()

	got, err := json.Marshal([]Segment{
		TextSegment("hi"),
		callSeg(`{"tool":"read_file","params":{"path":"a"}}`, "read_file", param("path", `"a"`)),
		pendingSeg(`{"tool":"re`, ""),
	})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	want := `[{"type":"text","content":"hi"},` +
		`{"type":"tool_call","tool":"read_file","params":{"path":"a"},"raw":"{\"tool\":\"read_file\",\"params\":{\"path\":\"a\"}}"},` +
		`{"type":"tool_call","tool":"","params":{},"raw":"{\"tool\":\"re","pending":true}]`
	if string(got) != want {
		t.Fatalf("Marshal =\n%s\nwant\n%s", got, want)
	}
}
