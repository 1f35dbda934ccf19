package trainer

import (
	"errors"
	"strings"
)

var ErrNoJSONObject = errors.New("no json object found in text")

// ExtractJSONObject returns the first balanced top-level brace-delimited
// object found anywhere in text. The model tends to wrap the plan JSON in
// prose or markdown fences, so everything before the first "{" and after
// its matching "}" is discarded. Braces inside JSON strings are ignored.
func ExtractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	// opened but never closed
	return "", ErrNoJSONObject
}
