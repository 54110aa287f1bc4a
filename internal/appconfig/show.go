package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	if cfg == nil {
		cfg = &fallback
	}

	logFile := cfg.LogFilePath()
	if logFile == "" {
		logFile = "(disabled)"
	}
	level := cfg.LogLevelName()
	if level == "" {
		level = "info"
	}

	fmt.Fprintf(out, "  Debug:             %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:         %v\n", cfg.JSONMode)
	fmt.Fprintf(out, "  Log File:          %s\n", logFile)
	fmt.Fprintf(out, "  Log Level:         %s\n", level)
	fmt.Fprintf(out, "  Default Tools:     %v\n", !cfg.DisableDefaultTools)
	fmt.Fprintf(out, "  Declared Tools:    %d\n", len(cfg.Tools))
	fmt.Fprintf(out, "  Aliases:           %d\n", len(cfg.Aliases))
	if len(cfg.DialoguePatterns) > 0 {
		fmt.Fprintf(out, "  Dialogue Patterns: %d\n", len(cfg.DialoguePatterns))
	} else {
		fmt.Fprintln(out, "  Dialogue Patterns: built-in")
	}
	fmt.Fprintf(out, "  Replay Chunk:      %d bytes\n", cfg.ReplayChunk())
	fmt.Fprintf(out, "  Replay Delay:      %s\n", cfg.ReplayDelay())
}
