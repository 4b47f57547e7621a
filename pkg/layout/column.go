// -- pkg/layout/column.go --
package layout

import (
	"sort"

	"github.com/kynelabs/graphscope/api/schemas"
	"gonum.org/v1/gonum/spatial/r2"
)

// columnLayout groups nodes into one column per canonical entity kind. Known
// kinds keep the configured left-to-right ordering; unknown kinds are
// appended after them, sorted lexicographically. Within a column, nodes stack
// vertically sorted by ID, each perturbed by a hash-derived jitter so that
// identical input always reproduces identical output.
func columnLayout(nodes []schemas.Node, cfg Config) map[string]r2.Vec {
	positions := make(map[string]r2.Vec, len(nodes))
	if len(nodes) == 0 {
		return positions
	}

	columnSpacing := cfg.ColumnSpacing
	if columnSpacing <= 0 {
		columnSpacing = 120
	}
	rowSpacing := cfg.RowSpacing
	if rowSpacing <= 0 {
		rowSpacing = 70
	}

	groups := make(map[string][]schemas.Node)
	for _, n := range nodes {
		key := canonicalKind(n, cfg.Aliases)
		groups[key] = append(groups[key], n)
	}

	order := columnOrder(groups, cfg.ColumnOrder)
	for col, key := range order {
		column := sortedByID(groups[key])
		x := float64(col) * columnSpacing
		// Center the stack on y=0 so columns of different heights share a
		// visual midline.
		offset := float64(len(column)-1) / 2.0
		for row, node := range column {
			positions[node.ID] = r2.Vec{
				X: x + hashJitter(node.ID),
				Y: (float64(row)-offset)*rowSpacing + hashJitter(node.ID+"/y"),
			}
		}
	}
	return positions
}

// columnOrder returns the present canonical kinds in display order: the
// configured ordering first, then any unmapped kinds sorted.
func columnOrder(groups map[string][]schemas.Node, configured []string) []string {
	seen := make(map[string]struct{}, len(configured))
	var order []string
	for _, key := range configured {
		seen[key] = struct{}{}
		if _, present := groups[key]; present {
			order = append(order, key)
		}
	}

	var extra []string
	for key := range groups {
		if _, known := seen[key]; !known {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}
