package validate

import (
	"fmt"
	"strconv"
)

// ID parses a path segment as a positive int64 identifier.
func ID(field, v string) (int64, error) {
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", field)
	}
	return id, nil
}

// Count parses an optional query parameter as a positive count,
// falling back to def when the parameter is absent.
func Count(field, v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", field)
	}
	return n, nil
}
