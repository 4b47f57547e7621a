// -- pkg/render/style.go --
package render

import (
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
	"time"
)

// EdgeStyle is the color and width an edge type renders with.
type EdgeStyle struct {
	Color string
	Width float64
}

// edgeStyles maps relationship types to their base style. Unknown types fall
// back to defaultEdgeStyle.
var edgeStyles = map[string]EdgeStyle{
	"DOCUMENTS":  {Color: "#7aa2f7", Width: 1.4},
	"MENTIONS":   {Color: "#bb9af7", Width: 1.0},
	"AUTHORED":   {Color: "#9ece6a", Width: 1.2},
	"MODIFIES":   {Color: "#e0af68", Width: 1.4},
	"DISCUSSES":  {Color: "#f7768e", Width: 1.0},
	"TRACKS":     {Color: "#7dcfff", Width: 1.2},
	"REFERENCES": {Color: "#c0caf5", Width: 1.0},
	"LINKS_TO":   {Color: "#565f89", Width: 1.0},
}

var defaultEdgeStyle = EdgeStyle{Color: "#414868", Width: 1.0}

// highlightColor is the bright neutral used for newly introduced entities.
const highlightColor = "#e8e8e8"

// EdgeStyleFor resolves the base style for a relationship type.
func EdgeStyleFor(edgeType string) EdgeStyle {
	if s, ok := edgeStyles[edgeType]; ok {
		return s
	}
	return defaultEdgeStyle
}

// modalityPalette is indexed by a hash of the modality so the same modality
// always gets the same color, across sessions and processes.
var modalityPalette = []string{
	"#7aa2f7", "#9ece6a", "#e0af68", "#f7768e", "#bb9af7",
	"#7dcfff", "#ff9e64", "#73daca", "#b4f9f8", "#c0caf5",
}

// ModalityColor returns the deterministic color for a modality (or label,
// for nodes without one).
func ModalityColor(modality string) string {
	if modality == "" {
		return modalityPalette[0]
	}
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(modality)))
	return modalityPalette[h.Sum32()%uint32(len(modalityPalette))]
}

// NodeRadius grows slowly with connectivity: 7 + min(4, sqrt(degree)).
func NodeRadius(degree int) float64 {
	return 7 + math.Min(4, math.Sqrt(float64(degree)))
}

// FormatTimestamp renders a timestamp the way the detail panel shows it.
// Zero times render as a dash rather than the epoch.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// Brighten moves a #rrggbb color toward white by the given amount in [0,1].
// Inputs that don't parse come back unchanged.
func Brighten(hexColor string, amount float64) string {
	if len(hexColor) != 7 || hexColor[0] != '#' {
		return hexColor
	}
	var rgb [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseInt(hexColor[1+2*i:3+2*i], 16, 0)
		if err != nil {
			return hexColor
		}
		rgb[i] = int(float64(v) + (255-float64(v))*amount)
		if rgb[i] > 255 {
			rgb[i] = 255
		}
	}
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
