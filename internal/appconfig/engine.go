// internal/appconfig/engine.go
package appconfig

import (
	"fmt"
	"sort"

	"github.com/fileshot/toolstream/internal/toolcall"
	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"
)

// BuildRegistry assembles the tool registry the configuration describes:
// the default tool set unless disabled, then declared tools (with their
// argument schemas), then aliases.
func (c Config) BuildRegistry() (*toolcall.Registry, error) {
	reg := toolcall.NewRegistry()
	if !c.DisableDefaultTools {
		reg = toolcall.DefaultRegistry()
	}

	for _, tool := range c.Tools {
		if len(tool.Parameters) > 0 {
			if _, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(tool.Parameters)); err != nil {
				return nil, fmt.Errorf("tool %q: invalid parameters schema: %w", tool.Name, err)
			}
		}
		if err := reg.Register(tool.Name, tool.Parameters); err != nil {
			return nil, fmt.Errorf("tool %q: %w", tool.Name, err)
		}
	}

	aliases := make([]string, 0, len(c.Aliases))
	for alias := range c.Aliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		if err := reg.Alias(alias, c.Aliases[alias]); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// NewEngine builds an extraction engine from the configuration. log may be nil.
func (c Config) NewEngine(log *logrus.Entry) (*toolcall.Engine, error) {
	reg, err := c.BuildRegistry()
	if err != nil {
		return nil, err
	}
	opts := []toolcall.Option{toolcall.WithLogger(log)}
	if len(c.DialoguePatterns) > 0 {
		opts = append(opts, toolcall.WithDialoguePatterns(c.DialoguePatterns))
	}
	return toolcall.NewEngine(reg, opts...)
}
