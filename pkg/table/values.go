// pkg/table/values.go
package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// AsString converts a cell value to its string form. Nil (missing) converts
// to the empty string.
func AsString(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return FormatFloat(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// AsFloat attempts to convert a cell value to float64.
func AsFloat(v any) (float64, error) {
	if v == nil {
		return 0, errors.New("nil value")
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		cleaned := strings.TrimSpace(val)
		if cleaned == "" {
			return 0, errors.New("empty string")
		}
		return strconv.ParseFloat(cleaned, 64)
	case []byte:
		cleaned := strings.TrimSpace(string(val))
		if cleaned == "" {
			return 0, errors.New("empty byte array")
		}
		return strconv.ParseFloat(cleaned, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v)
	}
}

// IsMissing reports whether a cell value is the missing sentinel: nil or a
// whitespace-only string.
func IsMissing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// FormatFloat renders a float64 with the shortest representation that
// round-trips, matching how decoded values are serialized to CSV.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
