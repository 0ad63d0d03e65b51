package main

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/tdewolff/minify/v2"
)

// Precision is the number of significant digits of coordinates written to SVG.
var Precision = 8

type num float64

func (f num) String() string {
	s := fmt.Sprintf("%.*g", Precision, f)
	if num(math.MaxInt32) < f || f < num(math.MinInt32) {
		if i := strings.IndexAny(s, ".eE"); i == -1 {
			s += ".0"
		}
	}
	return string(minify.Number([]byte(s), Precision))
}

type dec float64

func (f dec) String() string {
	s := fmt.Sprintf("%.*f", Precision, f)
	s = string(minify.Decimal([]byte(s), Precision))
	if dec(math.MaxInt32) < f || f < dec(math.MinInt32) {
		if i := strings.IndexByte(s, '.'); i == -1 {
			s += ".0"
		}
	}
	return s
}

func cssColor(c color.RGBA) string {
	if c.A == 0xff {
		return "#" + hex.EncodeToString([]byte{c.R, c.G, c.B})
	}
	buf := []byte("rgba(")
	buf = strconv.AppendInt(buf, int64(c.R), 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(c.G), 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(c.B), 10)
	buf = append(buf, ',')
	buf = strconv.AppendFloat(buf, float64(c.A)/0xff, 'g', 4, 64)
	buf = append(buf, ')')
	return string(buf)
}

////////////////////////////////////////////////////////////////

var (
	Black       = color.RGBA{0x00, 0x00, 0x00, 0xff}
	Transparent = color.RGBA{0x00, 0x00, 0x00, 0x00}
	Red         = color.RGBA{0xff, 0x00, 0x00, 0xff}
	Steelblue   = color.RGBA{0x46, 0x82, 0xb4, 0xff}
)

// svgStyle is the paint of a polyline.
type svgStyle struct {
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float64
	Dashed      bool
}

// svgWriter writes projected paths as a scalable vector graphic, with the Y axis pointing up.
type svgWriter struct {
	w             io.Writer
	origin        orb.Point
	width, height float64
}

// newSVGWriter starts a drawing that spans bounds grown by margin on all sides.
func newSVGWriter(w io.Writer, bounds orb.Bound, margin float64) *svgWriter {
	bounds = bounds.Pad(margin)
	width, height := bounds.Max[0]-bounds.Min[0], bounds.Max[1]-bounds.Min[1]
	fmt.Fprintf(w, `<svg version="1.1" width="%vmm" height="%vmm" viewBox="0 0 %v %v" xmlns="http://www.w3.org/2000/svg">`, dec(width), dec(height), dec(width), dec(height))
	return &svgWriter{
		w:      w,
		origin: bounds.Min,
		width:  width,
		height: height,
	}
}

func (r *svgWriter) point(pt orb.Point) (num, num) {
	return num(pt[0] - r.origin[0]), num(r.height - (pt[1] - r.origin[1]))
}

// Polyline draws the points, closing the shape when closed is set.
func (r *svgWriter) Polyline(ring orb.Ring, closed bool, style svgStyle) {
	if len(ring) < 2 {
		return
	}

	sb := strings.Builder{}
	for i, pt := range ring {
		x, y := r.point(pt)
		if i == 0 {
			fmt.Fprintf(&sb, "M%v %v", x, y)
		} else {
			fmt.Fprintf(&sb, "L%v %v", x, y)
		}
	}
	if closed {
		sb.WriteString("z")
	}
	fmt.Fprintf(r.w, `<path d="%s`, sb.String())

	if style.Fill.A == 0 || !closed {
		fmt.Fprintf(r.w, `" fill="none`)
	} else {
		fmt.Fprintf(r.w, `" fill="%s`, cssColor(style.Fill))
	}
	if style.Stroke.A != 0 && 0.0 < style.StrokeWidth {
		fmt.Fprintf(r.w, `" stroke="%s" stroke-width="%v`, cssColor(style.Stroke), dec(style.StrokeWidth))
		if style.Dashed {
			fmt.Fprintf(r.w, `" stroke-dasharray="%v %v`, dec(style.StrokeWidth*4.0), dec(style.StrokeWidth*2.0))
		}
	}
	fmt.Fprintf(r.w, `"/>`)
}

// Circle draws a filled dot.
func (r *svgWriter) Circle(pt orb.Point, radius float64, fill color.RGBA) {
	x, y := r.point(pt)
	fmt.Fprintf(r.w, `<circle cx="%v" cy="%v" r="%v" fill="%s"/>`, x, y, dec(radius), cssColor(fill))
}

// Close finishes the drawing.
func (r *svgWriter) Close() error {
	_, err := fmt.Fprintf(r.w, "</svg>")
	return err
}
