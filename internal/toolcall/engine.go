// internal/toolcall/engine.go
package toolcall

import (
	"fmt"
	"io"
	"regexp"

	"github.com/sirupsen/logrus"
)

// Engine bundles the read-only state the extraction functions need: the tool
// registry, the dialogue boundary heuristics and a logger. It is immutable
// after construction and safe for concurrent use.
type Engine struct {
	registry *Registry
	dialogue []*regexp.Regexp
	log      *logrus.Entry
}

// Option configures an Engine.
type Option func(*Engine) error

// WithDialoguePatterns replaces the dialogue boundary heuristics.
func WithDialoguePatterns(patterns []string) Option {
	return func(e *Engine) error {
		compiled := make([]*regexp.Regexp, 0, len(patterns))
		for _, p := range patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return fmt.Errorf("compile dialogue pattern %q: %w", p, err)
			}
			compiled = append(compiled, re)
		}
		e.dialogue = compiled
		return nil
	}
}

// WithLogger sends degradation diagnostics to entry at debug level.
func WithLogger(entry *logrus.Entry) Option {
	return func(e *Engine) error {
		if entry != nil {
			e.log = entry
		}
		return nil
	}
}

// NewEngine returns an engine over reg. A nil registry accepts no tools.
func NewEngine(reg *Registry, opts ...Option) (*Engine, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	e := &Engine{registry: reg, log: discardLogger()}
	if err := WithDialoguePatterns(DefaultDialoguePatterns)(e); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Registry returns the registry the engine validates names against.
func (e *Engine) Registry() *Registry { return e.registry }

// Render runs the per-chunk pipeline on the whole buffer received so far:
// reasoning blocks and result reports are stripped, a trailing half-typed
// call is hidden and the remainder is segmented.
func (e *Engine) Render(buffer string) []Segment {
	return e.Segment(SuppressTrailingPartial(StripBlocks(buffer)))
}

// ParseToolCall decodes a standalone JSON span into a call. ok is false on
// any structural or validation failure; callers render the span as text.
func (e *Engine) ParseToolCall(jsonText string) (ToolCall, bool) {
	call, err := e.DecodeToolCall(jsonText)
	if err != nil {
		return ToolCall{}, false
	}
	return call, true
}

// DecodeToolCall is ParseToolCall with the reason for a rejection. When the
// registry holds a schema for the tool, the params are validated against it.
func (e *Engine) DecodeToolCall(jsonText string) (ToolCall, error) {
	res, err := decodeSpan(jsonText, e.registry)
	if err != nil {
		return ToolCall{}, err
	}
	if err := validateArguments(e.registry, res.call); err != nil {
		return ToolCall{}, err
	}
	return res.call, nil
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

var defaultEngine = mustEngine(NewEngine(DefaultRegistry()))

func mustEngine(e *Engine, err error) *Engine {
	if err != nil {
		panic(err)
	}
	return e
}

// Default returns the engine backed by DefaultRegistry.
func Default() *Engine { return defaultEngine }

// Segment splits buffer using the default engine.
func Segment(buffer string) []Segment { return defaultEngine.Segment(buffer) }

// Render runs the streaming pipeline using the default engine.
func Render(buffer string) []Segment { return defaultEngine.Render(buffer) }

// ParseToolCall decodes a JSON span using the default engine.
func ParseToolCall(jsonText string) (ToolCall, bool) { return defaultEngine.ParseToolCall(jsonText) }

// DecodeToolCall decodes a JSON span using the default engine.
func DecodeToolCall(jsonText string) (ToolCall, error) { return defaultEngine.DecodeToolCall(jsonText) }

// ExtractToolResults collects result reports using the default engine.
func ExtractToolResults(text string) map[string][]ToolResult {
	return defaultEngine.ExtractToolResults(text)
}
