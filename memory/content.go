package memory

import (
	"bytes"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// textFields are probed in order for the text to embed.
var textFields = []string{"fact", "observation", "text", "content"}

// maxContentDepth is the deepest array/object nesting SQLite's json_valid
// accepts. Deeper content is valid for encoding/json but fails the column
// check.
const maxContentDepth = 1000

// EmbeddableText returns the text the store embeds for content. If content is
// a JSON object with a string field named fact, observation, text or content
// (checked in that order), the first one found wins. Otherwise the literal
// content is returned unchanged, not a re-serialization of it.
func EmbeddableText(content json.RawMessage) (string, error) {
	if !json.Valid(content) {
		return "", goerr.New("content is not valid JSON", goerr.T(ErrInvalidInput))
	}
	if depth := nestingDepth(content); depth > maxContentDepth {
		return "", goerr.New("content is nested too deeply",
			goerr.V("depth", depth), goerr.V("max_depth", maxContentDepth), goerr.T(ErrInvalidInput))
	}

	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return string(content), nil
	}

	// field values stay raw so numbers or nesting elsewhere in the object
	// cannot affect the lookup
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return "", goerr.Wrap(err, "failed to decode content object", goerr.T(ErrInvalidInput))
	}
	for _, field := range textFields {
		raw, ok := obj[field]
		if !ok {
			continue
		}
		var s string
		if bytes.HasPrefix(bytes.TrimSpace(raw), []byte{'"'}) && json.Unmarshal(raw, &s) == nil {
			return s, nil
		}
	}
	return string(content), nil
}

// nestingDepth returns the maximum array/object depth of valid JSON.
func nestingDepth(data []byte) int {
	var depth, deepest int
	inString, escaped := false, false
	for _, c := range data {
		switch {
		case inString:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{' || c == '[':
			depth++
			if depth > deepest {
				deepest = depth
			}
		case c == '}' || c == ']':
			depth--
		}
	}
	return deepest
}
