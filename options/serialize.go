package options

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Serialize encodes a value for the persisted per-option store. The scheme is
// the exact inverse of Deserialize: booleans and null become their literal
// markers, numbers their decimal literals, strings pass through raw, and
// structured values are JSON-encoded.
func Serialize(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}

// Deserialize restores a persisted string to its natural type using the same
// rule Serialize applied: literal markers for null and booleans, numeric
// literals to int or float64, JSON objects/arrays to structured values, and
// anything else stays a string.
func Deserialize(raw string) any {
	trimmed := strings.TrimSpace(raw)

	switch trimmed {
	case "":
		return ""
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}

	if i, err := strconv.Atoi(trimmed); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var structured any
		if err := json.Unmarshal([]byte(trimmed), &structured); err == nil {
			return structured
		}
	}

	return raw
}
