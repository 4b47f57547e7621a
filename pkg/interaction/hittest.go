// -- pkg/interaction/hittest.go --
package interaction

import (
	"math"

	"github.com/kynelabs/graphscope/pkg/graphindex"
	"gonum.org/v1/gonum/spatial/r2"
)

// HitTester picks the nearest node or edge to a world-space point. It holds
// the id-indexed graph and the current layout; both are replaced wholesale
// when the snapshot or layout changes.
type HitTester struct {
	idx       *graphindex.Index
	positions map[string]r2.Vec

	nodeRadius float64 // world units
	edgeRadius float64 // world units
}

// NewHitTester creates a hit tester with the given pick thresholds in world
// units.
func NewHitTester(nodeRadius, edgeRadius float64) *HitTester {
	if nodeRadius <= 0 {
		nodeRadius = 18
	}
	if edgeRadius <= 0 {
		edgeRadius = 14
	}
	return &HitTester{nodeRadius: nodeRadius, edgeRadius: edgeRadius}
}

// Update swaps in a new graph and layout.
func (h *HitTester) Update(idx *graphindex.Index, positions map[string]r2.Vec) {
	h.idx = idx
	h.positions = positions
}

// NearestNode returns the ID of the closest node within the pick threshold,
// or "" when nothing qualifies. Ties resolve to the lexicographically
// smallest ID because node IDs are iterated in sorted order.
func (h *HitTester) NearestNode(world r2.Vec) string {
	if h.idx == nil {
		return ""
	}
	best := ""
	bestDist := h.nodeRadius
	for _, id := range h.idx.NodeIDs() {
		pos, ok := h.positions[id]
		if !ok {
			continue
		}
		d := math.Hypot(world.X-pos.X, world.Y-pos.Y)
		if d < bestDist {
			best = id
			bestDist = d
		}
	}
	return best
}

// NearestEdge returns the ID of the closest edge within the pick threshold,
// measured as point-to-segment distance, or "" when nothing qualifies.
func (h *HitTester) NearestEdge(world r2.Vec) string {
	if h.idx == nil {
		return ""
	}
	best := ""
	bestDist := h.edgeRadius
	for _, id := range h.idx.EdgeIDs() {
		edge, ok := h.idx.Edge(id)
		if !ok {
			continue
		}
		a, aok := h.positions[edge.Source]
		b, bok := h.positions[edge.Target]
		if !aok || !bok {
			continue
		}
		d := pointToSegment(world, a, b)
		if d < bestDist {
			best = id
			bestDist = d
		}
	}
	return best
}

// pointToSegment returns the distance from p to the segment ab.
func pointToSegment(p, a, b r2.Vec) float64 {
	ab := r2.Sub(b, a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := r2.Dot(r2.Sub(p, a), ab) / lenSq
	t = math.Min(math.Max(t, 0), 1)
	closest := r2.Add(a, r2.Scale(t, ab))
	return math.Hypot(p.X-closest.X, p.Y-closest.Y)
}
