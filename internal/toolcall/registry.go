// internal/toolcall/registry.go
// Package toolcall extracts structured tool invocations from free-form,
// possibly still-streaming language model output.
//
// Every entry point is a pure function of its input text and a read-only
// Registry: the caller hands over the whole buffer accumulated so far on each
// update and receives a fresh, ordered list of segments.
package toolcall

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// CanonicalName is a tool name that exists in a Registry. Only a Registry
// can produce a non-zero value, so a ToolCall carrying a CanonicalName has
// passed the registry check.
type CanonicalName struct {
	name string
}

// String returns the canonical tool name, or "" for the zero value.
func (c CanonicalName) String() string { return c.name }

// IsZero reports whether the name is unset (a pending call whose name has
// not been fully received yet).
func (c CanonicalName) IsZero() bool { return c.name == "" }

// Equal reports whether two names are the same canonical tool.
func (c CanonicalName) Equal(other CanonicalName) bool { return c.name == other.name }

// MarshalText renders the name for JSON output.
func (c CanonicalName) MarshalText() ([]byte, error) { return []byte(c.name), nil }

// AliasPair maps shorthand a model tends to emit to a canonical name.
type AliasPair struct {
	Alias     string
	Canonical string
}

// Registry holds the canonical tool names, their aliases and optional JSON
// Schemas for arguments. A Registry is built once and then only read.
type Registry struct {
	canonical map[string]string
	aliases   map[string]string
	schemas   map[string]map[string]any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		canonical: make(map[string]string),
		aliases:   make(map[string]string),
		schemas:   make(map[string]map[string]any),
	}
}

// Register adds a canonical tool name. schema may be nil.
func (r *Registry) Register(name string, schema map[string]any) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("register tool: %w", ErrMissingName)
	}
	key := strings.ToLower(trimmed)
	r.canonical[key] = trimmed
	if len(schema) > 0 {
		r.schemas[key] = schema
	} else {
		delete(r.schemas, key)
	}
	return nil
}

// Alias maps alias to an already registered canonical name.
func (r *Registry) Alias(alias, canonical string) error {
	a := strings.ToLower(strings.TrimSpace(alias))
	if a == "" {
		return fmt.Errorf("alias for %q: %w", canonical, ErrMissingName)
	}
	target, ok := r.canonical[strings.ToLower(strings.TrimSpace(canonical))]
	if !ok {
		return fmt.Errorf("alias %q -> %q: %w", alias, canonical, ErrUnknownTool)
	}
	r.aliases[a] = target
	return nil
}

// Lookup resolves name against the canonical set first and the alias table
// second, ignoring case and surrounding whitespace.
func (r *Registry) Lookup(name string) (CanonicalName, bool) {
	if r == nil {
		return CanonicalName{}, false
	}
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return CanonicalName{}, false
	}
	if canonical, ok := r.canonical[key]; ok {
		return CanonicalName{name: canonical}, true
	}
	if canonical, ok := r.aliases[key]; ok {
		return CanonicalName{name: canonical}, true
	}
	return CanonicalName{}, false
}

// IsKnown reports whether name is a real, callable tool.
func (r *Registry) IsKnown(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Schema returns the argument schema registered for a canonical tool.
func (r *Registry) Schema(name CanonicalName) (map[string]any, bool) {
	if r == nil || name.IsZero() {
		return nil, false
	}
	schema, ok := r.schemas[strings.ToLower(name.name)]
	return schema, ok
}

// Names returns the canonical names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.canonical))
	for _, name := range r.canonical {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Aliases returns the alias table sorted by alias.
func (r *Registry) Aliases() []AliasPair {
	pairs := make([]AliasPair, 0, len(r.aliases))
	for alias, canonical := range r.aliases {
		pairs = append(pairs, AliasPair{Alias: alias, Canonical: canonical})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Alias < pairs[j].Alias })
	return pairs
}

// Suggest ranks canonical names by fuzzy similarity to name. It is meant for
// diagnostics only; a suggestion never makes a call valid.
func (r *Registry) Suggest(name string, limit int) []string {
	pattern := strings.ToLower(strings.TrimSpace(name))
	if r == nil || pattern == "" || limit <= 0 {
		return nil
	}
	names := r.Names()
	matches := fuzzy.Find(pattern, names)
	if len(matches) == 0 {
		// Fall back to matching on the name's first word so that
		// "read_the_file" still points at read_file.
		if head, _, ok := strings.Cut(pattern, "_"); ok && head != "" {
			matches = fuzzy.Find(head, names)
		}
	}
	out := make([]string, 0, limit)
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == limit {
			break
		}
	}
	return out
}

var defaultTools = []string{
	"read_file",
	"write_file",
	"edit_file",
	"append_to_file",
	"delete_file",
	"rename_file",
	"copy_file",
	"get_file_info",
	"list_directory",
	"create_directory",
	"find_files",
	"search_files",
	"search_codebase",
	"run_command",
	"git_status",
	"git_diff",
	"git_log",
	"git_commit",
	"web_search",
	"fetch_webpage",
	"browser_navigate",
	"browser_click",
	"browser_type",
	"browser_scroll",
	"browser_snapshot",
	"browser_screenshot",
	"browser_evaluate",
	"browser_back",
	"browser_wait",
	"save_memory",
	"get_memory",
}

var defaultAliases = map[string]string{
	"read":        "read_file",
	"cat":         "read_file",
	"open_file":   "read_file",
	"write":       "write_file",
	"create_file": "write_file",
	"save_file":   "write_file",
	"edit":        "edit_file",
	"replace":     "edit_file",
	"append":      "append_to_file",
	"delete":      "delete_file",
	"remove_file": "delete_file",
	"rename":      "rename_file",
	"move_file":   "rename_file",
	"copy":        "copy_file",
	"stat":        "get_file_info",
	"ls":          "list_directory",
	"list_dir":    "list_directory",
	"list_files":  "list_directory",
	"mkdir":       "create_directory",
	"find":        "find_files",
	"glob":        "find_files",
	"grep":        "search_files",
	"search":      "search_files",
	"run":         "run_command",
	"exec":        "run_command",
	"shell":       "run_command",
	"bash":        "run_command",
	"terminal":    "run_command",
	"search_web":  "web_search",
	"google":      "web_search",
	"fetch":       "fetch_webpage",
	"fetch_url":   "fetch_webpage",
	"navigate":    "browser_navigate",
	"goto":        "browser_navigate",
	"open_url":    "browser_navigate",
	"click":       "browser_click",
	"type":        "browser_type",
	"type_text":   "browser_type",
	"scroll":      "browser_scroll",
	"snapshot":    "browser_snapshot",
	"screenshot":  "browser_screenshot",
	"evaluate":    "browser_evaluate",
	"back":        "browser_back",
	"wait":        "browser_wait",
	"remember":    "save_memory",
	"recall":      "get_memory",
}

// DefaultRegistry returns a registry preloaded with the IDE tool set and
// the shorthand aliases small models commonly emit.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, name := range defaultTools {
		_ = r.Register(name, nil)
	}
	for alias, canonical := range defaultAliases {
		_ = r.Alias(alias, canonical)
	}
	return r
}
