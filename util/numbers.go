package util

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ParseUint64 parses a node-reported integer, which REST gateways encode as either a JSON string or number.
func ParseUint64(num json.Number) (uint64, error) {
	value, err := strconv.ParseUint(string(num), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected non-integer value: %q", num)
	}
	return value, nil
}

// ParseInt64 is ParseUint64 for signed values.
func ParseInt64(num json.Number) (int64, error) {
	if num == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(string(num), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected non-integer value: %q", num)
	}
	return value, nil
}
