package jsonutil

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// IsBlank reports whether raw carries no value: missing, null, or an empty string.
// Form-backed services store blank numeric inputs as "".
func IsBlank(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null" || s == `""`
}

// FlexibleFloat converts a json.RawMessage to a float64, handling services that
// encode NUMERIC columns as strings. The bool result is false for blank values.
func FlexibleFloat(raw json.RawMessage) (float64, bool, error) {
	if IsBlank(raw) {
		return 0, false, nil
	}

	// Try number first
	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		return numVal, true, nil
	}

	// Try numeric string
	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		strVal = strings.TrimSpace(strVal)
		if strVal == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(strVal, 64)
		if err != nil {
			return 0, false, fmt.Errorf("invalid numeric string %q: %w", strVal, err)
		}
		return f, true, nil
	}

	return 0, false, fmt.Errorf("cannot decode %s as a number", string(raw))
}

// FlexibleInt is FlexibleFloat for integer fields. Fractional values are rejected.
func FlexibleInt(raw json.RawMessage) (int, bool, error) {
	f, ok, err := FlexibleFloat(raw)
	if err != nil || !ok {
		return 0, ok, err
	}
	if f != float64(int64(f)) {
		return 0, false, fmt.Errorf("expected integer, got %g", f)
	}
	return int(f), true, nil
}

// FlexibleStringValue converts a json.RawMessage to a string, handling services
// that return numbers or booleans instead of strings. Returns empty string for null/empty.
func FlexibleStringValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	// Try string first
	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		return strVal
	}

	// Try number
	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		if numVal == float64(int64(numVal)) {
			return fmt.Sprintf("%d", int64(numVal))
		}
		return fmt.Sprintf("%g", numVal)
	}

	// Fallback: return raw string representation
	return string(raw)
}
