// internal/util/util.go
package util

import (
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// ReadInput returns the contents of path, or of stdin when path is "" or "-".
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// ChunkBoundaries returns the end offsets of successive prefixes of text,
// each roughly size bytes longer than the last. Offsets never split a UTF-8
// sequence and the last one is len(text).
func ChunkBoundaries(text string, size int) []int {
	if size <= 0 {
		size = 1
	}
	var ends []int
	for end := 0; end < len(text); {
		end += size
		if end >= len(text) {
			end = len(text)
		} else {
			for end < len(text) && !utf8.RuneStart(text[end]) {
				end++
			}
		}
		ends = append(ends, end)
	}
	return ends
}

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// Indent prefixes every non-empty line of text with prefix.
func Indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// WrapToWidth wraps the given text to a specified width, breaking long words.
func WrapToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			out = append(out, "")
			continue
		}
		var cur strings.Builder
		runeCount := 0
		words := strings.Fields(line)
		for _, w := range words {
			wLen := utf8.RuneCountInString(w)
			if runeCount > 0 && runeCount+1+wLen <= width {
				cur.WriteByte(' ')
				cur.WriteString(w)
				runeCount += 1 + wLen
				continue
			}
			if runeCount > 0 {
				out = append(out, cur.String())
				cur.Reset()
				runeCount = 0
			}
			if wLen <= width {
				cur.WriteString(w)
				runeCount = wLen
				continue
			}
			// Split an overlong word; its tail starts the next line.
			r := []rune(w)
			for start := 0; start < len(r); start += width {
				end := min(start+width, len(r))
				if end < len(r) {
					out = append(out, string(r[start:end]))
					continue
				}
				cur.WriteString(string(r[start:end]))
				runeCount = end - start
			}
		}
		if cur.Len() > 0 {
			out = append(out, cur.String())
		} else if len(words) == 0 {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}
