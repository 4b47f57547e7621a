// -- pkg/render/renderer.go --
package render

import (
	"fmt"

	"github.com/kynelabs/graphscope/internal/metrics"
	"github.com/kynelabs/graphscope/pkg/graphindex"
	"github.com/kynelabs/graphscope/pkg/viewport"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	backgroundColor  = "#1a1b26"
	selectionRing    = "#ffffff"
	hoverRing        = "#ffd166"
	tooltipFill      = "#24283b"
	tooltipText      = "#c0caf5"
	tooltipFontSize  = 12.0
	tooltipLineH     = 16.0
	tooltipPadding   = 8.0
	tooltipOffset    = 14.0
	maxTooltipLines  = 5
	emphasisWidthAdd = 0.35
	emphasisBrighten = 0.35
)

// Scene is everything one frame depends on. The renderer only reads it; view
// state and interaction state are owned elsewhere.
type Scene struct {
	Index     *graphindex.Index
	Positions map[string]r2.Vec
	// Selected is the currently selected node ID, "" for none.
	Selected string
	// HoverNode/HoverEdge mirror the interaction session's hover target.
	HoverNode string
	HoverEdge string
	Highlight graphindex.HighlightSet
	// ModalityFilter dims nodes that don't match it. "" means no filter.
	ModalityFilter string
}

// anchor is the hovered node, or else the selected one. It drives neighbor
// emphasis and the node tooltip.
func (s Scene) anchor() string {
	if s.HoverNode != "" {
		return s.HoverNode
	}
	return s.Selected
}

// Renderer draws scenes onto a Surface through a camera. It never mutates
// the camera or the scene.
type Renderer struct {
	surface Surface
	cam     *viewport.Camera
	log     *zap.Logger
}

// New creates a renderer bound to a surface and camera.
func New(surface Surface, cam *viewport.Camera, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{surface: surface, cam: cam, log: logger.Named("renderer")}
}

// Draw renders one full frame: background, edges, nodes, then tooltips last
// so they are never occluded.
func (r *Renderer) Draw(scene Scene) {
	metrics.RenderPassesTotal.Inc()
	w, h := r.cam.Size()
	r.surface.Begin(w, h)
	r.surface.FillBackground(backgroundColor)

	if scene.Index == nil || scene.Index.Len() == 0 {
		r.drawEmptyState(w, h)
		return
	}

	r.drawEdges(scene)
	r.drawNodes(scene)
	r.drawTooltip(scene)
}

func (r *Renderer) drawEmptyState(w, h float64) {
	msg := "No graph data"
	tw := r.surface.MeasureText(msg, tooltipFontSize)
	r.surface.Text(r2.Vec{X: w/2 - tw/2, Y: h / 2}, msg, TextStyle{
		Color: tooltipText, Size: tooltipFontSize, Alpha: 0.8,
	})
}

func (r *Renderer) drawEdges(scene Scene) {
	anchor := scene.anchor()
	for _, id := range scene.Index.EdgeIDs() {
		edge, _ := scene.Index.Edge(id)
		a, aok := scene.Positions[edge.Source]
		b, bok := scene.Positions[edge.Target]
		if !aok || !bok {
			continue
		}

		style := EdgeStyleFor(edge.Type)
		stroke := StrokeStyle{Color: style.Color, Width: style.Width, Alpha: 0.85}

		switch {
		case scene.Highlight.HasEdge(id):
			// New entities render bright neutral regardless of anchor state.
			stroke.Color = highlightColor
			stroke.Width = style.Width + emphasisWidthAdd
			stroke.Alpha = 1
		case anchor != "" && r.edgeNearAnchor(scene, edge.Source, edge.Target, anchor):
			stroke.Color = Brighten(style.Color, emphasisBrighten)
			stroke.Width = style.Width + emphasisWidthAdd
			stroke.Alpha = 1
		}

		r.surface.Line(r.cam.WorldToScreen(a), r.cam.WorldToScreen(b), stroke)
	}
}

// edgeNearAnchor reports whether the edge touches the anchor or any of the
// anchor's neighbors.
func (r *Renderer) edgeNearAnchor(scene Scene, source, target, anchor string) bool {
	if source == anchor || target == anchor {
		return true
	}
	return scene.Index.IsNeighbor(anchor, source) || scene.Index.IsNeighbor(anchor, target)
}

func (r *Renderer) drawNodes(scene Scene) {
	anchor := scene.anchor()
	for _, id := range scene.Index.NodeIDs() {
		node, _ := scene.Index.Node(id)
		pos, ok := scene.Positions[id]
		if !ok {
			continue
		}
		screen := r.cam.WorldToScreen(pos)
		radius := NodeRadius(scene.Index.Degree(id)) * r.cam.State().Scale

		// Dimming rules are independent and compose multiplicatively.
		alpha := 1.0
		if scene.ModalityFilter != "" && !nodeMatchesFilter(node.Label, node.Modality, scene.ModalityFilter) {
			alpha *= 0.3
		}
		if anchor != "" && id != anchor && !scene.Index.IsNeighbor(anchor, id) {
			alpha *= 0.4
		}

		color := node.Modality
		if color == "" {
			color = node.Label
		}
		r.surface.FillCircle(screen, radius, FillStyle{Color: ModalityColor(color), Alpha: alpha})

		if scene.Highlight.HasNode(id) {
			r.surface.StrokeCircle(screen, radius+5, StrokeStyle{Color: highlightColor, Width: 1.5, Alpha: 1})
		}
		if id == scene.Selected {
			r.surface.StrokeCircle(screen, radius+3, StrokeStyle{Color: selectionRing, Width: 2.5, Alpha: 1})
		}
		if id == scene.HoverNode {
			r.surface.StrokeCircle(screen, radius+2, StrokeStyle{Color: hoverRing, Width: 2, Alpha: 1})
		}
	}
}

func nodeMatchesFilter(label, modality, filter string) bool {
	return label == filter || modality == filter
}

func (r *Renderer) drawTooltip(scene Scene) {
	switch {
	case scene.HoverEdge != "":
		edge, ok := scene.Index.Edge(scene.HoverEdge)
		if !ok {
			return
		}
		src, _ := scene.Index.Node(edge.Source)
		dst, _ := scene.Index.Node(edge.Target)
		mid := midpoint(scene.Positions[edge.Source], scene.Positions[edge.Target])
		lines := []string{
			src.DisplayTitle(),
			fmt.Sprintf("%s → %s", edge.Type, dst.DisplayTitle()),
		}
		r.drawTooltipBox(r.cam.WorldToScreen(mid), lines)
	case scene.anchor() != "":
		id := scene.anchor()
		node, ok := scene.Index.Node(id)
		if !ok {
			return
		}
		pos, ok := scene.Positions[id]
		if !ok {
			return
		}
		lines := []string{node.DisplayTitle()}
		lines = append(lines, r.neighborLines(scene, id)...)
		r.drawTooltipBox(r.cam.WorldToScreen(pos), lines)
	}
}

// neighborLines lists up to maxTooltipLines "type → title" entries for the
// anchor's incident edges.
func (r *Renderer) neighborLines(scene Scene, id string) []string {
	var lines []string
	for _, edgeID := range scene.Index.IncidentEdges(id) {
		if len(lines) == maxTooltipLines {
			break
		}
		edge, _ := scene.Index.Edge(edgeID)
		otherID, ok := edge.Other(id)
		if !ok {
			continue
		}
		other, ok := scene.Index.Node(otherID)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s → %s", edge.Type, other.DisplayTitle()))
	}
	return lines
}

// drawTooltipBox sizes the box to the longest measured line and keeps it
// inside the viewport so it never needs scrolling to read.
func (r *Renderer) drawTooltipBox(near r2.Vec, lines []string) {
	if len(lines) == 0 {
		return
	}

	maxWidth := 0.0
	for _, l := range lines {
		if w := r.surface.MeasureText(l, tooltipFontSize); w > maxWidth {
			maxWidth = w
		}
	}
	boxW := maxWidth + 2*tooltipPadding
	boxH := float64(len(lines))*tooltipLineH + 2*tooltipPadding

	w, h := r.cam.Size()
	x := near.X + tooltipOffset
	y := near.Y + tooltipOffset
	if x+boxW > w-tooltipPadding {
		x = near.X - tooltipOffset - boxW
	}
	if y+boxH > h-tooltipPadding {
		y = near.Y - tooltipOffset - boxH
	}
	if x < tooltipPadding {
		x = tooltipPadding
	}
	if y < tooltipPadding {
		y = tooltipPadding
	}

	r.surface.FillRect(r2.Vec{X: x, Y: y}, boxW, boxH, FillStyle{Color: tooltipFill, Alpha: 0.95})
	for i, l := range lines {
		r.surface.Text(
			r2.Vec{X: x + tooltipPadding, Y: y + tooltipPadding + float64(i)*tooltipLineH + tooltipFontSize},
			l,
			TextStyle{Color: tooltipText, Size: tooltipFontSize, Alpha: 1},
		)
	}
}

func midpoint(a, b r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Add(a, b))
}
