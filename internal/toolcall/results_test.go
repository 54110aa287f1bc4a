// internal/toolcall/results_test.go
package toolcall

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractToolResults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want map[string][]ToolResult
	}{
		{
			name: "section preferred over stray headers",
			in: "Here is what happened.\n\n## Tool Execution Results\n\n" +
				"### read_file [OK]\npackage main\n\n" +
				"### `run_command` [FAIL]\nexit status 1\n\n" +
				"### read [OK]\nsecond read\n\n" +
				"## Summary\n### web_search [OK]\noutside section\n",
			want: map[string][]ToolResult{
				"read_file": {
					{Tool: "read_file", OK: true, Text: "package main"},
					{Tool: "read_file", OK: true, Text: "second read"},
				},
				"run_command": {{Tool: "run_command", OK: false, Text: "exit status 1"}},
			},
		},
		{
			name: "headers anywhere without a section",
			in:   "### git_status [ok]\nclean\n",
			want: map[string][]ToolResult{"git_status": {{Tool: "git_status", OK: true, Text: "clean"}}},
		},
		{
			name: "unregistered name kept as written",
			in:   "### custom_tool [FAIL]\nboom",
			want: map[string][]ToolResult{"custom_tool": {{Tool: "custom_tool", OK: false, Text: "boom"}}},
		},
		{
			name: "empty section falls back",
			in:   "## Tool Execution Results\nnone\n## Other\n### ls [OK]\nfile",
			want: map[string][]ToolResult{"list_directory": {{Tool: "list_directory", OK: true, Text: "file"}}},
		},
		{
			name: "header without body",
			in:   "### git_diff [OK]",
			want: map[string][]ToolResult{"git_diff": {{Tool: "git_diff", OK: true, Text: ""}}},
		},
		{name: "nothing", in: "just prose", want: map[string][]ToolResult{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractToolResults(tt.in)
			if got == nil {
				t.Fatalf("ExtractToolResults returned nil map")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("ExtractToolResults mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
