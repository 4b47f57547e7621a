// -- api/schemas/requests.go --
package schemas

import "time"

// RequestStatus tracks the lifecycle of a snapshot fetch.
type RequestStatus string

const (
	RequestPending RequestStatus = "pending"
	RequestSuccess RequestStatus = "success"
	RequestError   RequestStatus = "error"
	RequestAborted RequestStatus = "aborted"
)

// ErrorKind classifies a failed fetch for the diagnostics surface. Aborted
// requests are superseded ones and are never shown as user facing errors.
type ErrorKind string

const (
	ErrorKindNone    ErrorKind = ""
	ErrorKindNetwork ErrorKind = "network"
	ErrorKindHTTP    ErrorKind = "http"
	ErrorKindTimeout ErrorKind = "timeout"
	ErrorKindAborted ErrorKind = "aborted"
	ErrorKindUnknown ErrorKind = "unknown"
)

// RequestInfo describes one in-flight or completed snapshot fetch. Exactly one
// RequestInfo is "current" per consumer; superseded requests are aborted, not
// left running.
type RequestInfo struct {
	ID           string        `json:"id"`
	Target       string        `json:"target"`
	Status       RequestStatus `json:"status"`
	StartedAt    time.Time     `json:"started_at"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
	DurationMs   int64         `json:"duration_ms"`
	HTTPStatus   int           `json:"http_status,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
	ErrorKind    ErrorKind     `json:"error_kind,omitempty"`
}

// Terminal reports whether the request has reached a final state.
func (r RequestInfo) Terminal() bool {
	return r.Status != RequestPending
}

// FilterState is the subset of the request that the host UI manipulates:
// an optional modality filter, a result limit and an optional point-in-time
// timestamp for time travel.
type FilterState struct {
	Modalities []string   `json:"modalities,omitempty"`
	Limit      int        `json:"limit"`
	SnapshotAt *time.Time `json:"snapshot_at,omitempty"`
}

// RequestConfig fully determines a snapshot request. Two configs with equal
// fields always resolve to the same URL, which keeps requests reproducible
// and test comparable.
type RequestConfig struct {
	Mode       string      `json:"mode"`
	RootNodeID string      `json:"root_node_id,omitempty"`
	Depth      int         `json:"depth"`
	ProjectID  string      `json:"project_id,omitempty"`
	Filters    FilterState `json:"filters"`
}
