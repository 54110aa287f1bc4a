// internal/toolcall/scanner.go
package toolcall

// ScanState tracks quote, escape and brace nesting while walking JSON-ish
// text byte by byte. Depth == 0 means no object is open and ObjectStart is
// -1; Depth > 0 means ObjectStart is the index of the open top-level '{'.
//
// Iterating bytes is safe for the ASCII delimiters involved: UTF-8 never
// uses them inside multi-byte sequences.
type ScanState struct {
	Depth       int
	InString    bool
	EscapeNext  bool
	ObjectStart int
}

// NewScanState returns a state with no open object.
func NewScanState() ScanState {
	return ScanState{ObjectStart: -1}
}

// Step consumes the byte b found at index i. It reports true when b closes
// the top-level object.
func (s *ScanState) Step(i int, b byte) bool {
	if s.InString {
		switch {
		case s.EscapeNext:
			s.EscapeNext = false
		case b == '\\':
			s.EscapeNext = true
		case b == '"':
			s.InString = false
		}
		return false
	}

	switch b {
	case '"':
		s.InString = true
	case '{':
		if s.Depth == 0 {
			s.ObjectStart = i
		}
		s.Depth++
	case '}':
		if s.Depth == 0 {
			return false
		}
		s.Depth--
		if s.Depth == 0 {
			s.ObjectStart = -1
			return true
		}
	}
	return false
}

// ScanObject walks text from the '{' at start and returns the index just
// past its matching '}'. ok is false when the text ends while the object is
// still open, or when start does not point at '{'.
func ScanObject(text string, start int) (end int, ok bool) {
	if start < 0 || start >= len(text) || text[start] != '{' {
		return start, false
	}
	state := NewScanState()
	for i := start; i < len(text); i++ {
		if state.Step(i, text[i]) {
			return i + 1, true
		}
	}
	return len(text), false
}
