// -- pkg/viewport/camera.go --

// Package viewport owns the pan/zoom transform between world space (layout
// coordinates) and screen space (surface pixels). Nothing else writes the
// view state; the renderer and interaction layers only read it through the
// coordinate transforms.
package viewport

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// State is the camera transform. PanX/PanY is the world point shown at the
// center of the screen.
type State struct {
	Scale float64
	PanX  float64
	PanY  float64
}

// Options bound the camera for one surface.
type Options struct {
	Width    float64
	Height   float64
	MinScale float64
	MaxScale float64
	Padding  float64
	// Locked disables user driven pan/zoom entirely; only automatic fit may
	// alter the state. Used in embedded/read-only contexts.
	Locked bool
}

// Camera maintains the view state for one drawing surface.
type Camera struct {
	opts  Options
	state State
}

// New creates a camera at the default view (origin centered, scale 1).
func New(opts Options) *Camera {
	if opts.MinScale <= 0 {
		opts.MinScale = 0.6
	}
	if opts.MaxScale < opts.MinScale {
		opts.MaxScale = 4.0
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}
	c := &Camera{opts: opts}
	c.Reset()
	return c
}

// Reset restores the default view.
func (c *Camera) Reset() {
	c.state = State{Scale: c.clampScale(1)}
}

// State returns a copy of the current view state.
func (c *Camera) State() State { return c.state }

// Locked reports whether user pan/zoom is disabled.
func (c *Camera) Locked() bool { return c.opts.Locked }

// Size returns the surface dimensions the camera was configured with.
func (c *Camera) Size() (w, h float64) { return c.opts.Width, c.opts.Height }

// SetSize updates the surface dimensions, e.g. after a host resize.
func (c *Camera) SetSize(w, h float64) {
	c.opts.Width, c.opts.Height = w, h
}

// WorldToScreen projects a world point into screen space.
func (c *Camera) WorldToScreen(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: (p.X-c.state.PanX)*c.state.Scale + c.opts.Width/2,
		Y: (p.Y-c.state.PanY)*c.state.Scale + c.opts.Height/2,
	}
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c *Camera) ScreenToWorld(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: (p.X-c.opts.Width/2)/c.state.Scale + c.state.PanX,
		Y: (p.Y-c.opts.Height/2)/c.state.Scale + c.state.PanY,
	}
}

// PanBy translates the view by a screen-space delta. No-op when locked.
func (c *Camera) PanBy(dx, dy float64) {
	if c.opts.Locked {
		return
	}
	c.state.PanX -= dx / c.state.Scale
	c.state.PanY -= dy / c.state.Scale
}

// ZoomAt rescales by factor while keeping the world point under the given
// screen cursor fixed. No-op when locked.
func (c *Camera) ZoomAt(cursor r2.Vec, factor float64) {
	if c.opts.Locked {
		return
	}
	anchor := c.ScreenToWorld(cursor)
	c.state.Scale = c.clampScale(c.state.Scale * factor)
	// Solve WorldToScreen(anchor) == cursor for the new pan.
	c.state.PanX = anchor.X - (cursor.X-c.opts.Width/2)/c.state.Scale
	c.state.PanY = anchor.Y - (cursor.Y-c.opts.Height/2)/c.state.Scale
}

// FocusNodes fits the view to the bounding box of the given world points,
// with the configured pixel padding on all sides. An empty input resets to
// the default view. Automatic fit works even on a locked camera.
func (c *Camera) FocusNodes(points []r2.Vec) {
	if len(points) == 0 {
		c.Reset()
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	// A degenerate bbox (single node, collinear stack) gets a minimum
	// dimension of 1 so the scale math never divides by zero.
	w := math.Max(maxX-minX, 1)
	h := math.Max(maxY-minY, 1)

	availW := c.opts.Width - 2*c.opts.Padding
	availH := c.opts.Height - 2*c.opts.Padding
	c.state.Scale = c.clampScale(math.Min(availW/w, availH/h))
	c.state.PanX = (minX + maxX) / 2
	c.state.PanY = (minY + maxY) / 2
}

func (c *Camera) clampScale(s float64) float64 {
	return math.Min(math.Max(s, c.opts.MinScale), c.opts.MaxScale)
}
