package tasks

import (
	"net/url"
	"strconv"
	"strings"
)

// sortColumns maps the sortBy field names accepted on the wire to the
// columns they order by. Anything else falls back to store order.
var sortColumns = map[string]string{
	"description": "description",
	"completed":   "completed",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// Query describes one list request: an optional completion filter, an
// optional single-key sort, and limit/skip pagination. The zero value
// means "all tasks, store order, no cap".
type Query struct {
	Completed *bool
	SortBy    string // validated column name, empty for store order
	Desc      bool
	Limit     int // 0 means no cap
	Skip      int
}

// ParseQuery builds a Query from list request parameters.
//
// Malformed values are silently ignored rather than rejected: the
// completion filter only applies on the exact strings "true"/"false",
// an unrecognized sortBy field or direction falls back to store order,
// and non-numeric or out-of-range limit/skip values are dropped. Strict
// rejection stays on mutating payloads; GET stays lenient.
func ParseQuery(values url.Values) Query {
	var q Query

	switch values.Get("completed") {
	case "true":
		v := true
		q.Completed = &v
	case "false":
		v := false
		q.Completed = &v
	}

	if sortBy := values.Get("sortBy"); sortBy != "" {
		field, direction, ok := strings.Cut(sortBy, ":")
		if ok && (direction == "asc" || direction == "desc") {
			if col, known := sortColumns[field]; known {
				q.SortBy = col
				q.Desc = direction == "desc"
			}
		}
	}

	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		q.Limit = limit
	}
	if skip, err := strconv.Atoi(values.Get("skip")); err == nil && skip > 0 {
		q.Skip = skip
	}

	return q
}
