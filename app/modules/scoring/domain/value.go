package scoringdomain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Pick and result values are stored as opaque text: either a bare scalar
// ("VER", "90.5") or a small JSON object carrying the scalar under a known
// key ({"driver_code": "VER"}). The parsers below normalize both shapes.

// ParseError reports a value that could not be coerced to the expected type.
type ParseError struct {
	Kind string // "time", "lap"
	Raw  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as %s value", e.Raw, e.Kind)
}

// decode attempts to interpret raw as JSON. The second return is false when
// raw is not valid JSON and must be treated as a plain scalar string.
func decode(raw string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, false
	}
	return v, true
}

// ParseDriverCode normalizes a driver code ("VER", "HAM"). JSON objects are
// read through their driver_code field. Never fails; unparseable input is
// treated as a plain code.
func ParseDriverCode(raw string) string {
	if v, ok := decode(raw); ok {
		switch t := v.(type) {
		case map[string]any:
			code, _ := t["driver_code"].(string)
			return strings.ToUpper(strings.TrimSpace(code))
		case string:
			return strings.ToUpper(strings.TrimSpace(t))
		default:
			return strings.ToUpper(strings.TrimSpace(fmt.Sprint(t)))
		}
	}
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ParseTimeValue parses a time in seconds. JSON objects are read through
// their time field.
func ParseTimeValue(raw string) (float64, error) {
	if v, ok := decode(raw); ok {
		switch t := v.(type) {
		case map[string]any:
			return toFloat(t["time"], raw)
		case float64:
			return t, nil
		case string:
			return toFloat(t, raw)
		}
		return 0, &ParseError{Kind: "time", Raw: raw}
	}
	return toFloat(raw, raw)
}

// ParseLapNumber parses a lap number. JSON objects are read through their
// lap field. Also used for generic integer counts.
func ParseLapNumber(raw string) (int, error) {
	if v, ok := decode(raw); ok {
		switch t := v.(type) {
		case map[string]any:
			return toInt(t["lap"], raw)
		case float64:
			return int(t), nil
		case string:
			return toInt(t, raw)
		}
		return 0, &ParseError{Kind: "lap", Raw: raw}
	}
	return toInt(raw, raw)
}

// truthy is the set of scalar strings treated as true.
var truthy = map[string]bool{"true": true, "yes": true, "1": true}

// ParseBoolean parses a yes/no prediction. JSON objects are read through
// their value field; bare scalars match a lenient truthy set, and anything
// unrecognized is false rather than an error.
func ParseBoolean(raw string) bool {
	if v, ok := decode(raw); ok {
		if obj, isObj := v.(map[string]any); isObj {
			switch t := obj["value"].(type) {
			case bool:
				return t
			case float64:
				return t != 0
			case string:
				return truthy[strings.ToLower(strings.TrimSpace(t))]
			default:
				return false
			}
		}
	}
	return truthy[strings.ToLower(strings.TrimSpace(raw))]
}

func toFloat(v any, raw string) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, &ParseError{Kind: "time", Raw: raw}
		}
		return f, nil
	case nil:
		// Objects missing the expected field default to zero.
		return 0, nil
	default:
		return 0, &ParseError{Kind: "time", Raw: raw}
	}
}

func toInt(v any, raw string) (int, error) {
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, &ParseError{Kind: "lap", Raw: raw}
		}
		return n, nil
	case nil:
		return 0, nil
	default:
		return 0, &ParseError{Kind: "lap", Raw: raw}
	}
}
