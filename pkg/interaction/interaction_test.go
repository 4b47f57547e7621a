package interaction

import (
	"testing"

	"github.com/kynelabs/graphscope/api/schemas"
	"github.com/kynelabs/graphscope/pkg/graphindex"
	"github.com/kynelabs/graphscope/pkg/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

// testWorld builds a camera at scale 1 centered on the origin, a three node
// graph and a session wired to record select/hover callbacks.
type testWorld struct {
	cam      *viewport.Camera
	session  *Session
	selects  []string
	hovers   []Hover
	idx      *graphindex.Index
	position map[string]r2.Vec
}

func newTestWorld(t *testing.T, locked bool) *testWorld {
	t.Helper()

	cam := viewport.New(viewport.Options{
		Width: 1000, Height: 1000, MinScale: 0.6, MaxScale: 4, Padding: 60, Locked: locked,
	})
	// Scale 1, pan (0,0): world origin sits at screen (500,500).

	snap := &schemas.Snapshot{
		Nodes: []schemas.Node{
			{ID: "a", Label: "Component", Title: "A"},
			{ID: "b", Label: "Doc", Modality: "doc", Title: "B"},
			{ID: "c", Label: "Doc", Modality: "doc", Title: "C"},
		},
		Edges: []schemas.Edge{
			{ID: "ab", Source: "a", Target: "b", Type: "DOCUMENTS"},
		},
	}
	idx := graphindex.New(snap, nil)
	positions := map[string]r2.Vec{
		"a": {X: 0, Y: 0},
		"b": {X: 200, Y: 0},
		"c": {X: 0, Y: 300},
	}

	w := &testWorld{cam: cam, idx: idx, position: positions}
	w.session = NewSession(Options{
		Camera:         cam,
		NodePickRadius: 18,
		EdgePickRadius: 14,
		DragThreshold:  1,
		OnSelect:       func(id string) { w.selects = append(w.selects, id) },
		OnHoverChange:  func(h Hover) { w.hovers = append(w.hovers, h) },
	})
	w.session.UpdateGraph(idx, positions)
	w.selects = nil
	w.hovers = nil
	return w
}

// screenAt maps a world point to screen coordinates for event synthesis.
func (w *testWorld) screenAt(world r2.Vec) r2.Vec {
	return w.cam.WorldToScreen(world)
}

func TestHitTestAtNodeCenter(t *testing.T) {
	w := newTestWorld(t, false)
	ht := NewHitTester(18, 14)
	ht.Update(w.idx, w.position)

	assert.Equal(t, "a", ht.NearestNode(r2.Vec{X: 0, Y: 0}), "exact center always picks the node")
	assert.Equal(t, "b", ht.NearestNode(r2.Vec{X: 205, Y: 4}))
	assert.Equal(t, "", ht.NearestNode(r2.Vec{X: 100, Y: -100}), "100 units away from all nodes picks none")
}

func TestHitTestEdgePick(t *testing.T) {
	w := newTestWorld(t, false)
	ht := NewHitTester(18, 14)
	ht.Update(w.idx, w.position)

	// Midpoint of the a-b segment, 10 units off axis: within the edge
	// threshold, well outside both node thresholds.
	assert.Equal(t, "ab", ht.NearestEdge(r2.Vec{X: 100, Y: 10}))
	assert.Equal(t, "", ht.NearestEdge(r2.Vec{X: 100, Y: 30}))
}

func TestClickWithoutDragSelects(t *testing.T) {
	w := newTestWorld(t, false)
	at := w.screenAt(r2.Vec{X: 0, Y: 0})

	w.session.PointerDown(at)
	// Sub-threshold movement: still a click.
	w.session.PointerMove(r2.Vec{X: at.X + 0.5, Y: at.Y})
	w.session.PointerUp(r2.Vec{X: at.X + 0.5, Y: at.Y})

	require.Equal(t, []string{"a"}, w.selects)
}

func TestClickOnEmptySpaceDeselects(t *testing.T) {
	w := newTestWorld(t, false)
	at := w.screenAt(r2.Vec{X: -400, Y: -400})

	w.session.PointerDown(at)
	w.session.PointerUp(at)

	require.Equal(t, []string{""}, w.selects)
}

func TestDragDoesNotSelect(t *testing.T) {
	w := newTestWorld(t, false)
	at := w.screenAt(r2.Vec{X: 0, Y: 0})
	panBefore := w.cam.State()

	w.session.PointerDown(at)
	w.session.PointerMove(r2.Vec{X: at.X + 6, Y: at.Y})
	w.session.PointerUp(r2.Vec{X: at.X + 6, Y: at.Y})

	assert.Empty(t, w.selects, "a >5px drag is pan-only")
	assert.NotEqual(t, panBefore, w.cam.State(), "the camera panned")
}

func TestLockedViewportClickStillSelects(t *testing.T) {
	w := newTestWorld(t, true)
	at := w.screenAt(r2.Vec{X: 0, Y: 0})
	before := w.cam.State()

	w.session.PointerDown(at)
	w.session.PointerMove(r2.Vec{X: at.X + 10, Y: at.Y})
	w.session.PointerUp(r2.Vec{X: at.X + 10, Y: at.Y})

	assert.Equal(t, before, w.cam.State(), "locked camera never moves")
	// moved stays false when locked, so the click still fires. The pointer
	// ended 10px right of the node center, still inside the pick radius.
	require.Equal(t, []string{"a"}, w.selects)
}

func TestHoverNodeSuppressesEdge(t *testing.T) {
	w := newTestWorld(t, false)

	// Directly over node b, which is also an endpoint of edge ab.
	w.session.PointerMove(w.screenAt(r2.Vec{X: 200, Y: 0}))
	h := w.session.HoverTarget()
	assert.Equal(t, "b", h.NodeID)
	assert.Empty(t, h.EdgeID)
	assert.Equal(t, StateHovering, w.session.State())

	// Over the middle of the edge, away from both nodes.
	w.session.PointerMove(w.screenAt(r2.Vec{X: 100, Y: 5}))
	h = w.session.HoverTarget()
	assert.Empty(t, h.NodeID)
	assert.Equal(t, "ab", h.EdgeID)
}

func TestPointerLeaveClearsHover(t *testing.T) {
	w := newTestWorld(t, false)

	w.session.PointerMove(w.screenAt(r2.Vec{X: 0, Y: 0}))
	require.Equal(t, "a", w.session.HoverTarget().NodeID)

	w.session.PointerLeave()
	assert.Equal(t, Hover{}, w.session.HoverTarget())
	assert.Equal(t, StateIdle, w.session.State())
}

func TestPointerCaptureLifecycle(t *testing.T) {
	w := newTestWorld(t, false)
	at := w.screenAt(r2.Vec{X: 0, Y: 0})

	w.session.PointerDown(at)
	assert.True(t, w.session.Captured())
	// Leaving the surface mid-drag does not break the gesture.
	w.session.PointerLeave()
	assert.Equal(t, StateDragging, w.session.State())

	w.session.PointerUp(at)
	assert.False(t, w.session.Captured())
}

func TestWheelZoomsUnlessLocked(t *testing.T) {
	w := newTestWorld(t, false)
	w.session.Wheel(r2.Vec{X: 500, Y: 500}, -250)
	assert.Greater(t, w.cam.State().Scale, 1.0, "negative deltaY zooms in")

	locked := newTestWorld(t, true)
	locked.session.Wheel(r2.Vec{X: 500, Y: 500}, -250)
	assert.Equal(t, 1.0, locked.cam.State().Scale)
}
