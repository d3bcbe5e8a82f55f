package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/josephg/hyperlines/pkg/ast"
)

// WriteSVG writes lines as an SVG document with one <line> element per
// segment.
func WriteSVG(w io.Writer, lines []ast.Segment, opts Options) error {
	opts = opts.withDefaults()
	vp := Fit(lines, opts.Width, opts.Height, opts.Margin)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		opts.Width, opts.Height, opts.Width, opts.Height)
	fmt.Fprintf(bw, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", hexColor(opts.Background))
	fmt.Fprintf(bw, `<g stroke="%s" stroke-width="%s" stroke-linecap="round" fill="none">`+"\n",
		hexColor(opts.Stroke), coord(opts.StrokeWidth))
	for _, s := range lines {
		x1, y1 := vp.Map(s.From)
		x2, y2 := vp.Map(s.To)
		fmt.Fprintf(bw, `<line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n", coord(x1), coord(y1), coord(x2), coord(y2))
	}
	bw.WriteString("</g>\n</svg>\n")
	return bw.Flush()
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func hexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", n.R, n.G, n.B, strconv.FormatFloat(float64(n.A)/255, 'f', 3, 64))
}
