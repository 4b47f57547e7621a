// -- pkg/render/svg.go --
package render

import (
	"fmt"
	"html"
	"io"
	"strings"
	"unicode/utf8"

	"gonum.org/v1/gonum/spatial/r2"
)

// avgGlyphWidthRatio approximates a monospace-ish glyph width as a fraction
// of the font size. Good enough for tooltip box sizing without a font stack.
const avgGlyphWidthRatio = 0.62

// SVGSurface renders a frame as an SVG document. It accumulates elements in
// draw order and writes them out on demand.
type SVGSurface struct {
	width, height float64
	elements      []string
}

var _ Surface = (*SVGSurface)(nil)

// NewSVGSurface creates an empty SVG surface.
func NewSVGSurface() *SVGSurface {
	return &SVGSurface{}
}

// Begin resets the document for a new frame.
func (s *SVGSurface) Begin(width, height float64) {
	s.width, s.height = width, height
	s.elements = s.elements[:0]
}

// FillBackground floods the whole surface.
func (s *SVGSurface) FillBackground(color string) {
	s.elements = append(s.elements, fmt.Sprintf(
		`<rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`,
		s.width, s.height, color))
}

// Line draws a stroked segment.
func (s *SVGSurface) Line(a, b r2.Vec, style StrokeStyle) {
	s.elements = append(s.elements, fmt.Sprintf(
		`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-opacity="%.2f"/>`,
		a.X, a.Y, b.X, b.Y, style.Color, style.Width, style.Alpha))
}

// FillCircle draws a filled circle.
func (s *SVGSurface) FillCircle(center r2.Vec, radius float64, style FillStyle) {
	s.elements = append(s.elements, fmt.Sprintf(
		`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f"/>`,
		center.X, center.Y, radius, style.Color, style.Alpha))
}

// StrokeCircle draws a circle outline.
func (s *SVGSurface) StrokeCircle(center r2.Vec, radius float64, style StrokeStyle) {
	s.elements = append(s.elements, fmt.Sprintf(
		`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="%.2f" stroke-opacity="%.2f"/>`,
		center.X, center.Y, radius, style.Color, style.Width, style.Alpha))
}

// FillRect draws a filled rectangle with slightly rounded corners.
func (s *SVGSurface) FillRect(topLeft r2.Vec, width, height float64, style FillStyle) {
	s.elements = append(s.elements, fmt.Sprintf(
		`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="3" fill="%s" fill-opacity="%.2f"/>`,
		topLeft.X, topLeft.Y, width, height, style.Color, style.Alpha))
}

// Text draws a text run anchored at its baseline start.
func (s *SVGSurface) Text(pos r2.Vec, text string, style TextStyle) {
	s.elements = append(s.elements, fmt.Sprintf(
		`<text x="%.2f" y="%.2f" font-family="monospace" font-size="%.1f" fill="%s" fill-opacity="%.2f">%s</text>`,
		pos.X, pos.Y, style.Size, style.Color, style.Alpha, html.EscapeString(text)))
}

// MeasureText approximates the rendered width of a text run.
func (s *SVGSurface) MeasureText(text string, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size * avgGlyphWidthRatio
}

// WriteTo writes the accumulated document.
func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		s.width, s.height, s.width, s.height)
	for _, el := range s.elements {
		sb.WriteString("  ")
		sb.WriteString(el)
		sb.WriteString("\n")
	}
	sb.WriteString("</svg>\n")

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// ElementCount reports how many elements the current frame holds. Exposed
// for the host's diagnostics hooks and tests.
func (s *SVGSurface) ElementCount() int { return len(s.elements) }
