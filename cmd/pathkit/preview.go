package main

import (
	"context"
	"image/color"
	"io"

	"github.com/paulmach/orb"
	"github.com/tdewolff/paths"
)

// depthColor returns the fill for a closed path at the given nesting depth, holes are left empty.
func depthColor(info paths.InclusionInfo) color.RGBA {
	if info.Odd {
		return Transparent
	}
	a := uint8(0x40 + min(info.Depth, 4)*0x20)
	return color.RGBA{Steelblue.R, Steelblue.G, Steelblue.B, a}
}

// writePreview draws the paths seen from above, closed paths filled by nesting depth and holes dashed, with the crossings between all edges as dots.
func writePreview(ctx context.Context, w io.Writer, set *paths.PathSet, details *paths.EdgeIntersectionDetails, metas []paths.Metadata, tolerance float64) error {
	bounds := orb.Bound{}
	first := true
	for _, p := range set.Paths {
		if !p.IsValid() {
			continue
		}
		pr := p.BuildProjection(p.Up)
		if first {
			bounds, first = pr.Bounds, false
		} else {
			bounds = bounds.Union(pr.Bounds)
		}
	}
	if first {
		set.Logger.Warn("no paths to preview")
	}

	size := max(bounds.Max[0]-bounds.Min[0], bounds.Max[1]-bounds.Min[1], 1.0)
	strokeWidth := size / 400.0
	r := newSVGWriter(w, bounds, size/20.0)

	helper := set.Inclusion(tolerance)
	for i, p := range set.Paths {
		if !p.IsValid() {
			continue
		}
		style := svgStyle{
			Stroke:      Black,
			StrokeWidth: strokeWidth,
			Dashed:      paths.IsHole(metas[i]),
		}
		if info, ok := helper.Find(p.Idx); ok {
			style.Fill = depthColor(info)
		}
		r.Polyline(p.Projection().Points, p.ClosedLoop, style)
	}

	results, err := set.FindCrossings(ctx, details, nil, nil)
	if err != nil {
		return err
	}
	n := 0
	for i, edges := range results {
		pr := set.Paths[i].Projection()
		for _, crossings := range edges {
			if crossings == nil {
				continue
			}
			for _, c := range crossings.Crossings {
				r.Circle(pr.Project(c.Location), strokeWidth*3.0, Red)
				n++
			}
		}
	}
	set.Logger.Debug("preview", "paths", set.Len(), "crossings", n)
	return r.Close()
}
