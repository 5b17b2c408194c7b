package core

import (
	"fmt"
	"strconv"
)

// FormatState renders a datapoint state into the text that gets embedded.
// The device name and the full datapoint ID are always appended so that a
// lexical search over stored text can recover the owning datapoint even
// when description and location are generic.
func FormatState(datapointID string, cfg DatapointConfig, value any) string {
	var body string

	switch cfg.DataType {
	case DataTypeBoolean:
		body = fmt.Sprintf("%s %s (%s)", cfg.Description, BooleanLabel(cfg, value), cfg.Location)
	case DataTypeNumber:
		body = fmt.Sprintf("%s: %s%s (%s)", cfg.Description, FormatValue(value), cfg.Units, cfg.Location)
	default:
		body = fmt.Sprintf("%s: %s (%s)", cfg.Description, FormatValue(value), cfg.Location)
		if cfg.AdditionalText != "" {
			body += " - " + cfg.AdditionalText
		}
	}

	return body + " " + DeviceName(datapointID) + " " + datapointID
}

// BooleanLabel returns the display string for a boolean state value,
// preferring the user-configured labels over generic "true"/"false".
func BooleanLabel(cfg DatapointConfig, value any) string {
	if Truthy(value) {
		if cfg.BooleanTrueValue != "" {
			return cfg.BooleanTrueValue
		}
		return "true"
	}
	if cfg.BooleanFalseValue != "" {
		return cfg.BooleanFalseValue
	}
	return "false"
}

// Truthy interprets a raw state value as a boolean. The host platform
// reports boolean datapoints as bool, 0/1, or "true"/"false" depending on
// the originating adapter.
func Truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1" || v == "on"
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case float32:
		return v != 0
	default:
		return false
	}
}

// FormatValue renders a raw state value for display and for suppression
// cache keys. Floats are rendered with the shortest representation that
// round-trips, so integral readings print without a trailing ".0".
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}
