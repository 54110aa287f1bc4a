package render

import (
	"encoding/json"
	"fmt"

	"github.com/fileshot/toolstream/internal/toolcall"
)

// Step is one replay update: the buffer grew to Bytes and the first Stable
// segments did not change.
type Step struct {
	Index    int                `json:"step"`
	Total    int                `json:"total"`
	Bytes    int                `json:"bytes"`
	Stable   int                `json:"stable"`
	Segments []toolcall.Segment `json:"segments"`
}

// Step writes a one-line summary, or one compact JSON object per line in
// JSON mode.
func (p *Printer) Step(s Step) error {
	if p.jsonMode {
		data, err := json.Marshal(s)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.out, "%s\n", data)
		return err
	}
	changed := len(s.Segments) - s.Stable
	_, err := fmt.Fprintf(p.out, "%s %d/%d  bytes=%d  segments=%d  stable=%d  redraw=%d\n",
		p.keyLabel("step"), s.Index, s.Total, s.Bytes, len(s.Segments), s.Stable, changed)
	return err
}
