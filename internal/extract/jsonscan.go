package extract

import (
	"encoding/json"

	"github.com/kaptinlin/jsonrepair"
	"github.com/rotisserie/eris"
)

// balanced returns the JSON object or array starting at s[start], found by
// matching brackets outside string literals. ok is false when s[start] is
// not an opening bracket or the value is unterminated.
func balanced(s string, start int) (string, bool) {
	if start < 0 || start >= len(s) || (s[start] != '{' && s[start] != '[') {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
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
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// decodeJSON unmarshals raw into generic JSON values, repairing it first when
// the strict decode fails (trailing commas, single quotes, unquoted keys).
func decodeJSON(raw string) (any, error) {
	var v any
	err := json.Unmarshal([]byte(raw), &v)
	if err == nil {
		return v, nil
	}
	repaired, repairErr := jsonrepair.JSONRepair(raw)
	if repairErr != nil {
		return nil, eris.Wrapf(err, "extract: decode json (repair failed: %v)", repairErr)
	}
	if err := json.Unmarshal([]byte(repaired), &v); err != nil {
		return nil, eris.Wrap(err, "extract: decode repaired json")
	}
	return v, nil
}

// lookup follows a key path through nested objects.
func lookup(v any, path ...string) (any, bool) {
	cur := v
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
