// internal/toolcall/diff.go
package toolcall

import "bytes"

// Equal reports whether two segments would render identically.
func (s Segment) Equal(other Segment) bool {
	if s.Kind != other.Kind || s.Pending != other.Pending {
		return false
	}
	if s.Kind != SegmentToolCall {
		return s.Content == other.Content
	}
	return s.Call.Raw == other.Call.Raw &&
		s.Call.Tool.Equal(other.Call.Tool) &&
		s.Call.Params.Equal(other.Call.Params)
}

// Equal reports whether two param lists hold the same keys, in the same
// order, with byte-identical values.
func (p Params) Equal(other Params) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i].Key != other[i].Key || !bytes.Equal(p[i].Value, other[i].Value) {
			return false
		}
	}
	return true
}

// CommonPrefix returns how many leading segments prev and next share. A
// renderer only needs to redraw next[CommonPrefix(prev, next):].
func CommonPrefix(prev, next []Segment) int {
	n := 0
	for n < len(prev) && n < len(next) && prev[n].Equal(next[n]) {
		n++
	}
	return n
}
