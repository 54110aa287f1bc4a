// internal/toolcall/params.go
package toolcall

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Param is one argument of a tool call, kept as raw JSON.
type Param struct {
	Key   string
	Value json.RawMessage
}

// Params are a call's arguments in the order they appeared in the source.
type Params []Param

// paramsFromResult copies the members of a JSON object in document order.
// A key that repeats keeps its first position and its last value, which is
// what encoding/json would decode.
func paramsFromResult(obj gjson.Result) Params {
	var out Params
	index := make(map[string]int)
	obj.ForEach(func(key, value gjson.Result) bool {
		raw := json.RawMessage(value.Raw)
		if i, ok := index[key.String()]; ok {
			out[i].Value = raw
			return true
		}
		index[key.String()] = len(out)
		out = append(out, Param{Key: key.String(), Value: raw})
		return true
	})
	return out
}

// Get returns the raw JSON value stored under key.
func (p Params) Get(key string) (json.RawMessage, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// String returns the value under key as a string: JSON strings unquoted,
// anything else in its JSON form. Missing keys yield "".
func (p Params) String(key string) string {
	raw, ok := p.Get(key)
	if !ok {
		return ""
	}
	return gjson.ParseBytes(raw).String()
}

// Keys returns the argument names in source order.
func (p Params) Keys() []string {
	keys := make([]string, len(p))
	for i, param := range p {
		keys[i] = param.Key
	}
	return keys
}

// Map decodes the params into a plain map, losing order.
func (p Params) Map() (map[string]any, error) {
	out := make(map[string]any, len(p))
	for _, param := range p {
		var v any
		if err := json.Unmarshal(param.Value, &v); err != nil {
			return nil, err
		}
		out[param.Key] = v
	}
	return out, nil
}

// MarshalJSON writes the params as an object, keeping source order.
func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, param := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(param.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(param.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		if err := json.Compact(&buf, param.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
