// -- pkg/render/surface.go --

// Package render draws one frame of the graph scene onto an abstract drawing
// surface. The engine core stays headless: anything that can fill circles,
// stroke lines and measure text can be a Surface. An SVG implementation is
// provided.
package render

import "gonum.org/v1/gonum/spatial/r2"

// FillStyle describes a solid fill.
type FillStyle struct {
	Color string // CSS color, e.g. "#7aa2f7"
	Alpha float64
}

// StrokeStyle describes an outline or line stroke.
type StrokeStyle struct {
	Color string
	Width float64
	Alpha float64
}

// TextStyle describes rendered text.
type TextStyle struct {
	Color string
	Size  float64
	Alpha float64
}

// Surface is the drawing abstraction the renderer targets. Coordinates are
// screen-space pixels; the renderer has already applied the camera transform.
type Surface interface {
	// Begin resets the surface for a new frame of the given size.
	Begin(width, height float64)
	// FillBackground floods the whole surface.
	FillBackground(color string)
	Line(a, b r2.Vec, style StrokeStyle)
	FillCircle(center r2.Vec, radius float64, style FillStyle)
	StrokeCircle(center r2.Vec, radius float64, style StrokeStyle)
	FillRect(topLeft r2.Vec, width, height float64, style FillStyle)
	Text(pos r2.Vec, text string, style TextStyle)
	// MeasureText returns the rendered width of text at the given font size.
	MeasureText(text string, size float64) float64
}
