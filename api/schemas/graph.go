// -- api/schemas/graph.go --
package schemas

import "time"

// -- Canonical Activity Graph Data Model --

// Node represents a single entity in an activity graph snapshot: a component,
// a document, a chat event, a commit, and so on. The ID is stable across
// snapshots for the same logical entity; diffing and layout stability depend
// on that.
type Node struct {
	ID        string            `json:"id"`
	Label     string            `json:"label"`
	Modality  string            `json:"modality,omitempty"`
	Title     string            `json:"title"`
	CreatedAt *time.Time        `json:"created_at,omitempty"`
	UpdatedAt *time.Time        `json:"updated_at,omitempty"`
	Props     map[string]string `json:"props,omitempty"`
}

// DisplayTitle returns the best human readable name for the node.
func (n Node) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	return n.ID
}

// Edge is a typed relationship between two nodes. Edges are undirected for
// layout and neighbor queries, but source/target are retained for arrows and
// tooltips.
type Edge struct {
	ID     string            `json:"id"`
	Source string            `json:"source"`
	Target string            `json:"target"`
	Type   string            `json:"type"`
	Props  map[string]string `json:"props,omitempty"`
}

// Other returns the endpoint of the edge that is not the given node. The
// second return is false when the node is not an endpoint at all.
func (e Edge) Other(nodeID string) (string, bool) {
	switch nodeID {
	case e.Source:
		return e.Target, true
	case e.Target:
		return e.Source, true
	}
	return "", false
}

// SnapshotMeta carries server-side aggregates over the snapshot contents.
type SnapshotMeta struct {
	LabelCounts        map[string]int `json:"label_counts,omitempty"`
	RelationshipCounts map[string]int `json:"relationship_counts,omitempty"`
	PropertyKeys       []string       `json:"property_keys,omitempty"`
	ModalityCounts     map[string]int `json:"modality_counts,omitempty"`
	MinTimestamp       *time.Time     `json:"min_timestamp,omitempty"`
	MaxTimestamp       *time.Time     `json:"max_timestamp,omitempty"`
}

// Snapshot is a complete, immutable graph payload as of a generation
// timestamp. A new snapshot fully replaces the previous one; the consumer
// computes deltas, the server never patches incrementally.
type Snapshot struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Nodes       []Node       `json:"nodes"`
	Edges       []Edge       `json:"edges"`
	Meta        SnapshotMeta `json:"meta"`
}
