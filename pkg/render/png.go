package render

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/josephg/hyperlines/pkg/ast"
)

// Rasterize draws lines into a new RGBA image.
func Rasterize(lines []ast.Segment, opts Options) *image.RGBA {
	opts = opts.withDefaults()
	vp := Fit(lines, opts.Width, opts.Height, opts.Margin)

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	if len(lines) == 0 {
		return img
	}

	z := vector.NewRasterizer(opts.Width, opts.Height)
	z.DrawOp = draw.Over
	half := opts.StrokeWidth / 2
	for _, s := range lines {
		x1, y1 := vp.Map(s.From)
		x2, y2 := vp.Map(s.To)
		strokeSegment(z, x1, y1, x2, y2, half)
	}
	z.Draw(img, img.Bounds(), image.NewUniform(opts.Stroke), image.Point{})
	return img
}

// RasterizePNG draws lines and encodes the image as PNG.
func RasterizePNG(w io.Writer, lines []ast.Segment, opts Options) error {
	return png.Encode(w, Rasterize(lines, opts))
}

// strokeSegment adds the outline of a segment of half-width half as a
// closed path. The ends are extended by half, which gives square caps and
// a visible dot for zero-length segments. Every outline winds the same
// way so overlapping strokes accumulate.
func strokeSegment(z *vector.Rasterizer, x1, y1, x2, y2, half float64) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		dx, dy = 1, 0
	} else {
		dx, dy = dx/length, dy/length
	}
	// direction scaled to the half-width, and its normal
	ux, uy := dx*half, dy*half
	nx, ny := -uy, ux

	ax, ay := x1-ux, y1-uy
	bx, by := x2+ux, y2+uy

	z.MoveTo(float32(ax+nx), float32(ay+ny))
	z.LineTo(float32(bx+nx), float32(by+ny))
	z.LineTo(float32(bx-nx), float32(by-ny))
	z.LineTo(float32(ax-nx), float32(ay-ny))
	z.ClosePath()
}
