// -- pkg/interaction/pointer.go --

// Package interaction implements the pointer state machine that separates
// drag-pan from click-select, and the world-space hit-testing behind hover
// and selection.
package interaction

import (
	"math"

	"github.com/kynelabs/graphscope/pkg/graphindex"
	"github.com/kynelabs/graphscope/pkg/viewport"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
)

// PointerState is the interaction state machine's current state.
type PointerState int

const (
	StateIdle PointerState = iota
	StateHovering
	StateDragging
)

const wheelZoomRate = 0.001

// Hover describes what the pointer currently rests on. Node hover suppresses
// edge hover and vice versa; at most one of the two is set.
type Hover struct {
	NodeID string
	EdgeID string
}

// Options wires a Session to its collaborators.
type Options struct {
	Camera *viewport.Camera
	// NodePickRadius and EdgePickRadius are world-unit thresholds.
	NodePickRadius float64
	EdgePickRadius float64
	// DragThreshold is the screen-pixel movement (per axis) past which a
	// pointer gesture counts as a drag rather than a click.
	DragThreshold float64
	// OnSelect fires for a click that never dragged, with the picked node ID
	// or "" for a miss (deselect).
	OnSelect func(nodeID string)
	// OnHoverChange fires whenever the hover target changes.
	OnHoverChange func(Hover)
	Logger        *zap.Logger
}

// Session is the pointer event state machine. It is single-consumer and not
// goroutine safe, matching the event-driven host it serves.
type Session struct {
	cam   *viewport.Camera
	hit   *HitTester
	log   *zap.Logger
	state PointerState
	hover Hover

	dragThreshold float64
	dragStart     r2.Vec
	lastPointer   r2.Vec
	moved         bool
	captured      bool

	onSelect      func(string)
	onHoverChange func(Hover)
}

// NewSession creates an interaction session over a camera.
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	threshold := opts.DragThreshold
	if threshold <= 0 {
		threshold = 1
	}
	return &Session{
		cam:           opts.Camera,
		hit:           NewHitTester(opts.NodePickRadius, opts.EdgePickRadius),
		log:           logger.Named("interaction"),
		dragThreshold: threshold,
		onSelect:      opts.OnSelect,
		onHoverChange: opts.OnHoverChange,
	}
}

// UpdateGraph swaps in the new snapshot index and layout, clearing any hover
// that may point at entities that no longer exist.
func (s *Session) UpdateGraph(idx *graphindex.Index, positions map[string]r2.Vec) {
	s.hit.Update(idx, positions)
	s.setHover(Hover{})
	if s.state == StateHovering {
		s.state = StateIdle
	}
}

// State returns the current machine state.
func (s *Session) State() PointerState { return s.state }

// HoverTarget returns the current hover, if any.
func (s *Session) HoverTarget() Hover { return s.hover }

// Captured reports whether the session holds pointer capture, which it
// acquires on pointer-down so drag tracking survives the pointer leaving the
// surface mid-drag.
func (s *Session) Captured() bool { return s.captured }

// PointerDown begins a potential drag or click at a screen position.
func (s *Session) PointerDown(screen r2.Vec) {
	s.state = StateDragging
	s.captured = true
	s.dragStart = screen
	s.lastPointer = screen
	s.moved = false
}

// PointerMove handles pointer motion: panning while dragging, hover picking
// while idle.
func (s *Session) PointerMove(screen r2.Vec) {
	switch s.state {
	case StateDragging:
		dx := screen.X - s.lastPointer.X
		dy := screen.Y - s.lastPointer.Y
		s.lastPointer = screen
		if s.cam != nil && s.cam.Locked() {
			// The camera stays put, and the gesture still counts as a click
			// so pointer-up can select.
			return
		}
		if math.Abs(screen.X-s.dragStart.X) > s.dragThreshold ||
			math.Abs(screen.Y-s.dragStart.Y) > s.dragThreshold {
			s.moved = true
		}
		if s.moved && s.cam != nil {
			s.cam.PanBy(dx, dy)
		}
	case StateIdle, StateHovering:
		s.updateHover(screen)
	}
}

// PointerUp ends the gesture. A gesture that never crossed the drag
// threshold is a click: it fires a select event with the picked node, or ""
// when nothing was within reach.
func (s *Session) PointerUp(screen r2.Vec) {
	if s.state != StateDragging {
		return
	}
	s.captured = false
	s.state = StateIdle
	if s.moved {
		return
	}
	picked := ""
	if s.cam != nil {
		picked = s.hit.NearestNode(s.cam.ScreenToWorld(screen))
	}
	s.log.Debug("Click select", zap.String("node", picked))
	if s.onSelect != nil {
		s.onSelect(picked)
	}
	s.updateHover(screen)
}

// PointerLeave returns the machine to Idle and clears hover. A captured drag
// is unaffected; capture outlives the surface boundary.
func (s *Session) PointerLeave() {
	if s.state == StateDragging {
		return
	}
	s.state = StateIdle
	s.setHover(Hover{})
}

// Wheel zooms at the cursor with an exponential factor derived from the
// wheel delta. Ignored while the camera is locked.
func (s *Session) Wheel(screen r2.Vec, deltaY float64) {
	if s.cam == nil || s.cam.Locked() {
		return
	}
	s.cam.ZoomAt(screen, math.Exp(-deltaY*wheelZoomRate))
}

func (s *Session) updateHover(screen r2.Vec) {
	if s.cam == nil {
		return
	}
	world := s.cam.ScreenToWorld(screen)

	next := Hover{}
	if id := s.hit.NearestNode(world); id != "" {
		next.NodeID = id
	} else if id := s.hit.NearestEdge(world); id != "" {
		// Edges only win when no node is within its own threshold.
		next.EdgeID = id
	}

	if next == (Hover{}) {
		s.state = StateIdle
	} else {
		s.state = StateHovering
	}
	s.setHover(next)
}

func (s *Session) setHover(next Hover) {
	if next == s.hover {
		return
	}
	s.hover = next
	if s.onHoverChange != nil {
		s.onHoverChange(next)
	}
}
