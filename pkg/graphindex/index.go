// -- pkg/graphindex/index.go --
package graphindex

import (
	"sort"

	"github.com/kynelabs/graphscope/api/schemas"
	"go.uber.org/zap"
)

// Index is an id-indexed view over one immutable snapshot: node arena,
// well-formed edge set and adjacency, built once per snapshot so that
// hit-testing and highlighting stay O(1)/O(degree) per pointer move instead
// of scanning the node list.
type Index struct {
	nodes     map[string]schemas.Node
	edges     map[string]schemas.Edge
	adjacency map[string][]string // node ID -> sorted neighbor node IDs
	nodeEdges map[string][]string // node ID -> sorted incident edge IDs
	nodeIDs   []string            // sorted
	edgeIDs   []string            // sorted
	log       *zap.Logger
}

// New builds an Index from a snapshot. Edges whose source or target does not
// exist in the accompanying node set are dropped rather than surfaced as
// errors; the snapshot itself is never mutated.
func New(snap *schemas.Snapshot, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	idx := &Index{
		nodes:     make(map[string]schemas.Node),
		edges:     make(map[string]schemas.Edge),
		adjacency: make(map[string][]string),
		nodeEdges: make(map[string][]string),
		log:       logger.Named("graphindex"),
	}
	if snap == nil {
		return idx
	}

	for _, n := range snap.Nodes {
		idx.nodes[n.ID] = n
	}
	for _, e := range snap.Edges {
		if _, ok := idx.nodes[e.Source]; !ok {
			idx.log.Debug("Dropping edge with missing source", zap.String("edge", e.ID), zap.String("source", e.Source))
			continue
		}
		if _, ok := idx.nodes[e.Target]; !ok {
			idx.log.Debug("Dropping edge with missing target", zap.String("edge", e.ID), zap.String("target", e.Target))
			continue
		}
		if _, dup := idx.edges[e.ID]; dup {
			idx.log.Debug("Dropping duplicate edge id", zap.String("edge", e.ID))
			continue
		}
		idx.edges[e.ID] = e
		// Undirected for adjacency purposes.
		idx.adjacency[e.Source] = append(idx.adjacency[e.Source], e.Target)
		idx.adjacency[e.Target] = append(idx.adjacency[e.Target], e.Source)
		idx.nodeEdges[e.Source] = append(idx.nodeEdges[e.Source], e.ID)
		idx.nodeEdges[e.Target] = append(idx.nodeEdges[e.Target], e.ID)
	}

	idx.nodeIDs = make([]string, 0, len(idx.nodes))
	for id := range idx.nodes {
		idx.nodeIDs = append(idx.nodeIDs, id)
	}
	sort.Strings(idx.nodeIDs)

	idx.edgeIDs = make([]string, 0, len(idx.edges))
	for id := range idx.edges {
		idx.edgeIDs = append(idx.edgeIDs, id)
	}
	sort.Strings(idx.edgeIDs)

	for id := range idx.adjacency {
		sort.Strings(idx.adjacency[id])
	}
	for id := range idx.nodeEdges {
		sort.Strings(idx.nodeEdges[id])
	}
	return idx
}

// Node returns the node with the given ID.
func (x *Index) Node(id string) (schemas.Node, bool) {
	n, ok := x.nodes[id]
	return n, ok
}

// Edge returns the edge with the given ID.
func (x *Index) Edge(id string) (schemas.Edge, bool) {
	e, ok := x.edges[id]
	return e, ok
}

// NodeIDs returns all node IDs in sorted order.
func (x *Index) NodeIDs() []string { return x.nodeIDs }

// EdgeIDs returns all edge IDs in sorted order.
func (x *Index) EdgeIDs() []string { return x.edgeIDs }

// Len returns the number of nodes in the index.
func (x *Index) Len() int { return len(x.nodes) }

// Degree returns the neighbor count of a node. Self loops count once per
// incident edge, matching how the adjacency was built.
func (x *Index) Degree(id string) int { return len(x.adjacency[id]) }

// Neighbors returns the sorted neighbor IDs of a node.
func (x *Index) Neighbors(id string) []string { return x.adjacency[id] }

// IncidentEdges returns the sorted IDs of edges touching a node.
func (x *Index) IncidentEdges(id string) []string { return x.nodeEdges[id] }

// IsNeighbor reports whether b is adjacent to a.
func (x *Index) IsNeighbor(a, b string) bool {
	neighbors := x.adjacency[a]
	i := sort.SearchStrings(neighbors, b)
	return i < len(neighbors) && neighbors[i] == b
}
