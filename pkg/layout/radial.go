// -- pkg/layout/radial.go --
package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/kynelabs/graphscope/api/schemas"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	centerRingRadius     = 40.0
	firstPeripheryRadius = 140.0
	peripheryRingGap     = 90.0
	fallbackRingRadius   = 120.0
	angularJitterAmp     = 0.08
)

// radialLayout places anchor-type nodes on a small center ring and everything
// else on concentric rings, one ring per modality group. With no anchor group
// at all, every node goes on a single fallback ring.
func radialLayout(nodes []schemas.Node, cfg Config) map[string]r2.Vec {
	positions := make(map[string]r2.Vec, len(nodes))
	if len(nodes) == 0 {
		return positions
	}

	anchors := make(map[string]struct{}, len(cfg.AnchorLabels))
	for _, l := range cfg.AnchorLabels {
		anchors[strings.ToLower(l)] = struct{}{}
	}

	var center []schemas.Node
	groups := make(map[string][]schemas.Node)
	for _, n := range nodes {
		if isAnchor(n, anchors, cfg.Aliases) {
			center = append(center, n)
			continue
		}
		key := canonicalKind(n, cfg.Aliases)
		groups[key] = append(groups[key], n)
	}

	if len(center) == 0 {
		placeRing(positions, sortedByID(nodes), fallbackRingRadius, false)
		return positions
	}

	center = sortedByID(center)
	if len(center) == 1 {
		positions[center[0].ID] = r2.Vec{}
	} else {
		placeRing(positions, center, centerRingRadius, false)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for gi, key := range keys {
		radius := firstPeripheryRadius + peripheryRingGap*float64(gi)
		placeRing(positions, sortedByID(groups[key]), radius, true)
	}
	return positions
}

// placeRing spaces nodes evenly on a circle, optionally adding a small
// deterministic per-index angular jitter so concentric rings don't line up
// into overlap-hiding spokes.
func placeRing(positions map[string]r2.Vec, nodes []schemas.Node, radius float64, jitter bool) {
	n := len(nodes)
	for i, node := range nodes {
		angle := 2 * math.Pi * float64(i) / float64(n)
		if jitter {
			angle += angularJitterAmp * math.Sin(float64(i))
		}
		positions[node.ID] = r2.Vec{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		}
	}
}

func isAnchor(n schemas.Node, anchors map[string]struct{}, aliases map[string]string) bool {
	if _, ok := anchors[strings.ToLower(n.Label)]; ok {
		return true
	}
	if n.Modality == "" {
		return false
	}
	kind := canonicalKind(n, aliases)
	_, ok := anchors[kind]
	return ok
}
