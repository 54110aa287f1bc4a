// internal/toolcall/strip_test.go
package toolcall

import (
	"strings"
	"testing"
)

func TestStripToolArtifacts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain prose", in: "  Hello there.  ", want: "Hello there."},
		{name: "reasoning block", in: "<think>plan the edit</think>Hello", want: "Hello"},
		{name: "thinking block multiline", in: "Hi <thinking>a\nb</thinking> there", want: "Hi  there"},
		{name: "unclosed opening tag", in: "<think>still going", want: "still going"},
		{name: "stray closing tag", in: "answer</think>", want: "answer"},
		{name: "legacy wrapper tags", in: "<tool_call>call</tool_call>", want: "call"},
		{name: "leaked fragment line", in: "Okay\n\"params\": {\"path\": \"a\"}}\nDone", want: "Okay\nDone"},
		{
			name: "results section",
			in:   "Answer\n\n## Tool Execution Results\n### read_file [OK]\ncontents\n",
			want: "Answer",
		},
		{
			name: "result block up to next heading",
			in:   "### run_command [FAIL]\nexit 1\n## Next\nbody",
			want: "## Next\nbody",
		},
		{name: "collapse newlines", in: "a\n\n\n\nb", want: "a\n\nb"},
		{name: "ordinary heading kept", in: "## Plan\n1. read", want: "## Plan\n1. read"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StripToolArtifacts(tt.in); got != tt.want {
				t.Fatalf("StripToolArtifacts(%q)=%q want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripToolArtifactsIdempotent(t *testing.T) {
	t.Parallel()

	corpus := []string{
		"<think>a</think>\n\n\n\"k\": {\"v\": 1}\nText",
		"<thi<think>x</think>nk>y</think>z",
		"## Tool Execution Results\n### ls [OK]\n\n\n\nfiles\n### x [FAIL]\n\nno",
		"\"a\": {\"b\": 1},\n\n\n\"c\": {}\n]\nafter",
		"line\n\n \n \n\t\nnext",
		"{\"tool\":\"read_file\",\"params\":{\"path\":\"a\"}}",
		strings.Repeat("<th", 20) + "<think>" + strings.Repeat("ink>", 20) + "hello",
	}
	for _, in := range corpus {
		once := StripToolArtifacts(in)
		if strings.Contains(strings.ToLower(once), "<think") {
			t.Fatalf("reasoning tag left in %q: %q", in, once)
		}
		if twice := StripToolArtifacts(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestStripBlocksKeepsCallBodies(t *testing.T) {
	t.Parallel()

	in := "x\n\"params\": {\"a\": 1}\n<think>y</think>"
	want := "x\n\"params\": {\"a\": 1}\n"
	if got := StripBlocks(in); got != want {
		t.Fatalf("StripBlocks(%q)=%q want %q", in, got, want)
	}
}
