// -- internal/demo/demo.go --

// Package demo produces a deterministic sample activity graph for the
// development server, honoring the same query parameters the real backend
// accepts so filters, time travel and replay can be exercised end to end.
package demo

import (
	"net/url"
	"strconv"
	"time"
)

// Query is the subset of snapshot-endpoint parameters the sample honors.
type Query struct {
	Limit      int
	Modalities []string
	SnapshotAt *time.Time
}

// ParseQuery extracts the sample-relevant parameters.
func ParseQuery(values url.Values) Query {
	q := Query{Limit: 1200}
	if v := values.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.Limit = n
		}
	}
	q.Modalities = values["modalities"]
	if v := values.Get("snapshotAt"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q.SnapshotAt = &t
		}
	}
	return q
}
