// Package render draws emitted segments to SVG and PNG images.
package render

import (
	"image/color"
	"math"

	"github.com/josephg/hyperlines/pkg/ast"
)

// Options configures an output image.
type Options struct {
	Width       int
	Height      int
	Margin      float64 // in pixels, on every side
	StrokeWidth float64 // in pixels
	Stroke      color.Color
	Background  color.Color
}

// DefaultOptions returns a 512x512 black-on-white canvas.
func DefaultOptions() Options {
	return Options{
		Width:       512,
		Height:      512,
		Margin:      16,
		StrokeWidth: 1.5,
		Stroke:      color.Black,
		Background:  color.White,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = d.StrokeWidth
	}
	if o.Stroke == nil {
		o.Stroke = d.Stroke
	}
	if o.Background == nil {
		o.Background = d.Background
	}
	return o
}

// Viewport maps world coordinates onto a canvas. The world's bounding box
// is scaled uniformly to fit inside the margins and centered. y grows
// downwards in both spaces.
type Viewport struct {
	MinX, MinY float64
	Scale      float64
	OffsetX    float64
	OffsetY    float64
}

// Fit returns the viewport that frames every endpoint of lines on a
// width x height canvas. With no lines the unit square is framed; a box
// of zero width or height is widened to one unit around its center.
func Fit(lines []ast.Segment, width, height int, margin float64) Viewport {
	minX, minY, maxX, maxY := 0.0, 0.0, 1.0, 1.0
	if len(lines) > 0 {
		minX, minY = math.Inf(1), math.Inf(1)
		maxX, maxY = math.Inf(-1), math.Inf(-1)
		for _, s := range lines {
			for _, p := range [2]ast.Point{s.From, s.To} {
				minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
				minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
			}
		}
		if maxX-minX == 0 {
			minX, maxX = minX-0.5, maxX+0.5
		}
		if maxY-minY == 0 {
			minY, maxY = minY-0.5, maxY+0.5
		}
	}

	w, h := maxX-minX, maxY-minY
	availW := math.Max(float64(width)-2*margin, 1)
	availH := math.Max(float64(height)-2*margin, 1)
	scale := math.Min(availW/w, availH/h)

	return Viewport{
		MinX:    minX,
		MinY:    minY,
		Scale:   scale,
		OffsetX: (float64(width) - w*scale) / 2,
		OffsetY: (float64(height) - h*scale) / 2,
	}
}

// Map converts a world point to canvas coordinates.
func (v Viewport) Map(p ast.Point) (x, y float64) {
	return v.OffsetX + (p.X-v.MinX)*v.Scale, v.OffsetY + (p.Y-v.MinY)*v.Scale
}
