package helpers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// PathID parses the {name} path value as a positive integer id.
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// QueryID parses an optional positive integer id from the query string.
// It returns nil when the parameter is absent.
func QueryID(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &id, nil
}

// QueryWeekOffset reads the week query parameter. It returns nil when absent
// and 0 when the value is not an integer.
func QueryWeekOffset(r *http.Request) *int {
	if !r.URL.Query().Has("week") {
		return nil
	}
	offset, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("week")))
	if err != nil {
		offset = 0
	}
	return &offset
}
