// internal/toolcall/decode.go
package toolcall

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// ToolCall is a validated request to run a registered tool.
type ToolCall struct {
	Raw    string        `json:"raw"`
	Tool   CanonicalName `json:"tool"`
	Params Params        `json:"params"`
}

var (
	nameKeys      = []string{"tool", "name"}
	argumentsKeys = []string{"params", "arguments", "parameters"}
)

var (
	singleQuotedStringPattern = regexp.MustCompile(`'([^'\n]*)'`)
	trailingCommaPattern      = regexp.MustCompile(`,\s*([}\]])`)
)

// sanitizeLegacyJSON repairs the two mistakes small models make most:
// single-quoted strings and trailing commas.
func sanitizeLegacyJSON(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return s
	}
	replaced := singleQuotedStringPattern.ReplaceAllStringFunc(s, func(match string) string {
		inner := match[1 : len(match)-1]
		inner = strings.ReplaceAll(inner, `"`, `\"`)
		return `"` + inner + `"`
	})
	return trailingCommaPattern.ReplaceAllString(replaced, "$1")
}

// decodeResult is the outcome of decoding a span before schema validation.
type decodeResult struct {
	call     ToolCall
	name     string
	repaired bool
}

// decodeSpan parses text as a tool call object (or an array whose first
// element is one) and resolves its name against reg.
func decodeSpan(text string, reg *Registry) (decodeResult, error) {
	var res decodeResult
	payload := strings.TrimSpace(text)
	if payload == "" {
		return res, ErrEmptyInput
	}
	if !gjson.Valid(payload) {
		sanitized := sanitizeLegacyJSON(payload)
		if sanitized == payload || !gjson.Valid(sanitized) {
			return res, ErrMalformedJSON
		}
		payload = sanitized
		res.repaired = true
	}

	root := gjson.Parse(payload)
	if root.IsArray() {
		elems := root.Array()
		if len(elems) == 0 {
			return res, ErrNotObject
		}
		root = elems[0]
	}
	if !root.IsObject() {
		return res, ErrNotObject
	}

	name, ok := firstString(root, nameKeys)
	if !ok {
		return res, ErrMissingName
	}
	res.name = name

	params, err := extractParams(root)
	if err != nil {
		return res, err
	}

	canonical, known := reg.Lookup(name)
	if !known {
		return res, &UnknownToolError{Name: name, Suggestions: reg.Suggest(name, 3)}
	}
	res.call = ToolCall{Raw: text, Tool: canonical, Params: params}
	return res, nil
}

func firstString(obj gjson.Result, keys []string) (string, bool) {
	for _, key := range keys {
		v := obj.Get(key)
		if v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
			return strings.TrimSpace(v.Str), true
		}
	}
	return "", false
}

// extractParams reads the arguments object. Arguments given as a JSON
// encoded string are decoded once more; a missing or null value means no
// arguments.
func extractParams(obj gjson.Result) (Params, error) {
	for _, key := range argumentsKeys {
		v := obj.Get(key)
		if !v.Exists() {
			continue
		}
		switch {
		case v.Type == gjson.Null:
			return Params{}, nil
		case v.IsObject():
			return paramsFromResult(v), nil
		case v.Type == gjson.String:
			inner := strings.TrimSpace(v.Str)
			if inner == "" {
				return Params{}, nil
			}
			if !gjson.Valid(inner) {
				inner = sanitizeLegacyJSON(inner)
			}
			parsed := gjson.Parse(inner)
			if gjson.Valid(inner) && parsed.IsObject() {
				return paramsFromResult(parsed), nil
			}
			return nil, fmt.Errorf("%s is a string that is not an object: %w", key, ErrNotObject)
		default:
			return nil, fmt.Errorf("%s is not an object: %w", key, ErrNotObject)
		}
	}
	return Params{}, nil
}

// validateArguments checks params against the tool's schema, if it has one.
func validateArguments(reg *Registry, call ToolCall) error {
	schema, ok := reg.Schema(call.Tool)
	if !ok {
		return nil
	}
	argBytes, err := json.Marshal(call.Params)
	if err != nil {
		return fmt.Errorf("marshal arguments for validation: %w", err)
	}
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewBytesLoader(argBytes))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return &ArgumentsError{Tool: call.Tool.String(), Details: details}
}
