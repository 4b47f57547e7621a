// -- pkg/render/renderer_test.go --
package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kynelabs/graphscope/api/schemas"
	"github.com/kynelabs/graphscope/pkg/graphindex"
	"github.com/kynelabs/graphscope/pkg/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
)

// op is one recorded Surface call.
type op struct {
	kind   string // begin, background, line, fillCircle, strokeCircle, fillRect, text
	text   string
	fill   FillStyle
	stroke StrokeStyle
	center r2.Vec
	radius float64
	rectTL r2.Vec
	rectW  float64
	rectH  float64
}

// recordingSurface captures draw calls for order and style assertions.
type recordingSurface struct {
	ops []op
}

func (s *recordingSurface) Begin(w, h float64)    { s.ops = append(s.ops, op{kind: "begin"}) }
func (s *recordingSurface) FillBackground(string) { s.ops = append(s.ops, op{kind: "background"}) }
func (s *recordingSurface) Line(a, b r2.Vec, style StrokeStyle) {
	s.ops = append(s.ops, op{kind: "line", stroke: style})
}
func (s *recordingSurface) FillCircle(center r2.Vec, radius float64, style FillStyle) {
	s.ops = append(s.ops, op{kind: "fillCircle", center: center, radius: radius, fill: style})
}
func (s *recordingSurface) StrokeCircle(center r2.Vec, radius float64, style StrokeStyle) {
	s.ops = append(s.ops, op{kind: "strokeCircle", center: center, radius: radius, stroke: style})
}
func (s *recordingSurface) FillRect(topLeft r2.Vec, w, h float64, style FillStyle) {
	s.ops = append(s.ops, op{kind: "fillRect", rectTL: topLeft, rectW: w, rectH: h, fill: style})
}
func (s *recordingSurface) Text(pos r2.Vec, text string, style TextStyle) {
	s.ops = append(s.ops, op{kind: "text", text: text})
}
func (s *recordingSurface) MeasureText(text string, size float64) float64 {
	return float64(len(text)) * size * 0.6
}

func (s *recordingSurface) byKind(kind string) []op {
	var out []op
	for _, o := range s.ops {
		if o.kind == kind {
			out = append(out, o)
		}
	}
	return out
}

func (s *recordingSurface) firstIndex(kind string) int {
	for i, o := range s.ops {
		if o.kind == kind {
			return i
		}
	}
	return -1
}

func (s *recordingSurface) lastIndex(kind string) int {
	last := -1
	for i, o := range s.ops {
		if o.kind == kind {
			last = i
		}
	}
	return last
}

func testCamera() *viewport.Camera {
	return viewport.New(viewport.Options{
		Width: 800, Height: 600,
		MinScale: 0.6, MaxScale: 4.0,
		Padding: 60,
	})
}

// testScene builds a small world: component a linked to document b, which is
// linked to slack message c. Node a and c are not neighbors.
func testScene() (Scene, map[string]r2.Vec) {
	snap := &schemas.Snapshot{
		GeneratedAt: time.Now().UTC(),
		Nodes: []schemas.Node{
			{ID: "a", Label: "Component", Title: "Auth"},
			{ID: "b", Label: "Document", Modality: "doc", Title: "Design Doc"},
			{ID: "c", Label: "SlackEvent", Modality: "slack", Title: "Thread"},
		},
		Edges: []schemas.Edge{
			{ID: "e1", Source: "a", Target: "b", Type: "DOCUMENTS"},
			{ID: "e2", Source: "b", Target: "c", Type: "MENTIONS"},
		},
	}
	positions := map[string]r2.Vec{
		"a": {X: 0, Y: 0},
		"b": {X: 100, Y: 0},
		"c": {X: 0, Y: 100},
	}
	idx := graphindex.New(snap, zap.NewNop())
	return Scene{Index: idx, Positions: positions}, positions
}

func TestDrawOrderBackgroundEdgesNodesTooltip(t *testing.T) {
	scene, _ := testScene()
	scene.HoverNode = "b"

	surface := &recordingSurface{}
	r := New(surface, testCamera(), zap.NewNop())
	r.Draw(scene)

	require.Equal(t, "begin", surface.ops[0].kind)
	require.Equal(t, "background", surface.ops[1].kind)

	lastLine := surface.lastIndex("line")
	firstCircle := surface.firstIndex("fillCircle")
	tooltipRect := surface.firstIndex("fillRect")
	lastCircle := surface.lastIndex("strokeCircle")

	require.NotEqual(t, -1, lastLine)
	require.NotEqual(t, -1, firstCircle)
	require.NotEqual(t, -1, tooltipRect)

	assert.Less(t, lastLine, firstCircle, "edges render under nodes")
	assert.Less(t, lastCircle, tooltipRect, "tooltip renders last, never occluded")

	assert.Len(t, surface.byKind("line"), 2)
	assert.Len(t, surface.byKind("fillCircle"), 3)
}

func TestDrawEmptyScene(t *testing.T) {
	surface := &recordingSurface{}
	r := New(surface, testCamera(), zap.NewNop())
	r.Draw(Scene{})

	assert.Equal(t, "begin", surface.ops[0].kind)
	assert.Equal(t, "background", surface.ops[1].kind)
	texts := surface.byKind("text")
	require.Len(t, texts, 1)
	assert.Equal(t, "No graph data", texts[0].text)
	assert.Empty(t, surface.byKind("fillCircle"))
}

func TestModalityFilterDimsNonMatching(t *testing.T) {
	scene, _ := testScene()
	scene.ModalityFilter = "doc"

	surface := &recordingSurface{}
	New(surface, testCamera(), zap.NewNop()).Draw(scene)

	circles := surface.byKind("fillCircle")
	require.Len(t, circles, 3)
	// Node order follows sorted IDs: a, b, c.
	assert.InDelta(t, 0.3, circles[0].fill.Alpha, 1e-9, "a does not match the doc filter")
	assert.InDelta(t, 1.0, circles[1].fill.Alpha, 1e-9, "b matches")
	assert.InDelta(t, 0.3, circles[2].fill.Alpha, 1e-9, "c does not match")
}

func TestAnchorDimsNonNeighbors(t *testing.T) {
	scene, _ := testScene()
	scene.Selected = "a"

	surface := &recordingSurface{}
	New(surface, testCamera(), zap.NewNop()).Draw(scene)

	circles := surface.byKind("fillCircle")
	require.Len(t, circles, 3)
	assert.InDelta(t, 1.0, circles[0].fill.Alpha, 1e-9, "the anchor itself")
	assert.InDelta(t, 1.0, circles[1].fill.Alpha, 1e-9, "b neighbors a")
	assert.InDelta(t, 0.4, circles[2].fill.Alpha, 1e-9, "c is two hops away")
}

func TestFilterAndAnchorDimmingCompose(t *testing.T) {
	scene, _ := testScene()
	scene.Selected = "a"
	scene.ModalityFilter = "slack"

	surface := &recordingSurface{}
	New(surface, testCamera(), zap.NewNop()).Draw(scene)

	circles := surface.byKind("fillCircle")
	require.Len(t, circles, 3)
	// c misses nothing: matches slack but is no neighbor of a.
	assert.InDelta(t, 0.4, circles[2].fill.Alpha, 1e-9)
	// a is the anchor but misses the filter.
	assert.InDelta(t, 0.3, circles[0].fill.Alpha, 1e-9)
	// b misses the filter and is a neighbor.
	assert.InDelta(t, 0.3, circles[1].fill.Alpha, 1e-9)
}

func TestHighlightOverridesEdgeStyle(t *testing.T) {
	scene, _ := testScene()
	scene.Highlight = graphindex.HighlightSet{
		Nodes: map[string]struct{}{"b": {}},
		Edges: map[string]struct{}{"e1": {}},
	}

	surface := &recordingSurface{}
	New(surface, testCamera(), zap.NewNop()).Draw(scene)

	lines := surface.byKind("line")
	require.Len(t, lines, 2)
	// Edge order follows sorted IDs: e1, e2.
	base := EdgeStyleFor("DOCUMENTS")
	assert.Equal(t, "#e8e8e8", lines[0].stroke.Color)
	assert.InDelta(t, base.Width+0.35, lines[0].stroke.Width, 1e-9)
	assert.Equal(t, EdgeStyleFor("MENTIONS").Color, lines[1].stroke.Color)

	// The highlighted node gets the widest ring.
	rings := surface.byKind("strokeCircle")
	require.Len(t, rings, 1)
	assert.Equal(t, "#e8e8e8", rings[0].stroke.Color)
}

func TestNeighborEdgeEmphasis(t *testing.T) {
	scene, _ := testScene()
	scene.HoverNode = "a"

	surface := &recordingSurface{}
	New(surface, testCamera(), zap.NewNop()).Draw(scene)

	lines := surface.byKind("line")
	require.Len(t, lines, 2)
	base := EdgeStyleFor("DOCUMENTS")
	assert.Equal(t, Brighten(base.Color, 0.35), lines[0].stroke.Color)
	assert.InDelta(t, base.Width+0.35, lines[0].stroke.Width, 1e-9)
	// e2 touches b, a neighbor of the anchor, so it is emphasized too.
	assert.InDelta(t, EdgeStyleFor("MENTIONS").Width+0.35, lines[1].stroke.Width, 1e-9)
}

func TestNodeTooltipCapsNeighborLines(t *testing.T) {
	snap := &schemas.Snapshot{GeneratedAt: time.Now().UTC()}
	snap.Nodes = append(snap.Nodes, schemas.Node{ID: "hub", Label: "Component", Title: "Hub"})
	positions := map[string]r2.Vec{"hub": {X: 0, Y: 0}}
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("n%d", i)
		snap.Nodes = append(snap.Nodes, schemas.Node{ID: id, Label: "Document", Title: id})
		snap.Edges = append(snap.Edges, schemas.Edge{
			ID: fmt.Sprintf("e%d", i), Source: "hub", Target: id, Type: "DOCUMENTS",
		})
		positions[id] = r2.Vec{X: float64(i) * 10, Y: 50}
	}
	idx := graphindex.New(snap, zap.NewNop())
	scene := Scene{Index: idx, Positions: positions, HoverNode: "hub"}

	surface := &recordingSurface{}
	New(surface, testCamera(), zap.NewNop()).Draw(scene)

	tooltipRect := surface.firstIndex("fillRect")
	require.NotEqual(t, -1, tooltipRect)
	var lines []string
	for _, o := range surface.ops[tooltipRect:] {
		if o.kind == "text" {
			lines = append(lines, o.text)
		}
	}
	require.Len(t, lines, 6, "title plus at most five neighbor lines")
	assert.Equal(t, "Hub", lines[0])
	for _, l := range lines[1:] {
		assert.True(t, strings.HasPrefix(l, "DOCUMENTS → "), l)
	}
}

func TestEdgeTooltipContent(t *testing.T) {
	scene, _ := testScene()
	scene.HoverEdge = "e1"

	surface := &recordingSurface{}
	New(surface, testCamera(), zap.NewNop()).Draw(scene)

	tooltipRect := surface.firstIndex("fillRect")
	require.NotEqual(t, -1, tooltipRect)
	var lines []string
	for _, o := range surface.ops[tooltipRect:] {
		if o.kind == "text" {
			lines = append(lines, o.text)
		}
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "Auth", lines[0])
	assert.Equal(t, "DOCUMENTS → Design Doc", lines[1])
}

func TestTooltipStaysInsideViewport(t *testing.T) {
	scene, positions := testScene()
	// Push the hovered node to the right edge of the screen.
	positions["b"] = r2.Vec{X: 395, Y: 0}
	scene.HoverNode = "b"

	surface := &recordingSurface{}
	New(surface, testCamera(), zap.NewNop()).Draw(scene)

	rects := surface.byKind("fillRect")
	require.Len(t, rects, 1)
	assert.LessOrEqual(t, rects[0].rectTL.X+rects[0].rectW, 800.0)
	assert.GreaterOrEqual(t, rects[0].rectTL.X, 8.0)
	assert.GreaterOrEqual(t, rects[0].rectTL.Y, 8.0)
}

func TestStyleHelpers(t *testing.T) {
	assert.Equal(t, defaultEdgeStyle, EdgeStyleFor("NO_SUCH_TYPE"))

	assert.Equal(t, ModalityColor("doc"), ModalityColor("DOC"), "modality color ignores case")
	assert.NotEmpty(t, ModalityColor(""))

	assert.Equal(t, 7.0, NodeRadius(0))
	assert.Equal(t, 9.0, NodeRadius(4))
	assert.Equal(t, 11.0, NodeRadius(100), "radius growth caps at +4")

	assert.Equal(t, "#ffffff", Brighten("#ffffff", 0.5))
	assert.Equal(t, "#000000", Brighten("#000000", 0))
	assert.Equal(t, "#ffffff", Brighten("#000000", 1))
	assert.Equal(t, "not-a-color", Brighten("not-a-color", 0.5))

	assert.Equal(t, "—", FormatTimestamp(time.Time{}))
}

func TestSVGSurfaceOutput(t *testing.T) {
	scene, _ := testScene()
	scene.Selected = "a"

	surface := NewSVGSurface()
	New(surface, testCamera(), zap.NewNop()).Draw(scene)

	var sb strings.Builder
	_, err := surface.WriteTo(&sb)
	require.NoError(t, err)
	out := sb.String()

	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, "</svg>")
	assert.Contains(t, out, "<circle")
	assert.Contains(t, out, "<line")
	assert.Greater(t, surface.ElementCount(), 5)
}
