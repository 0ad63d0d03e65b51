package paths

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dhconnelly/rtreego"
	"golang.org/x/sync/errgroup"
)

// rectMargin pads the broad phase rectangles, since the R-tree does not count touching rectangles as intersecting and flat paths have zero thickness.
const rectMargin = 1e-6

func boxRect(b Box) rtreego.Rect {
	lo, hi := b.Min(), b.Max()
	r, err := rtreego.NewRectFromPoints(
		rtreego.Point{lo.X - rectMargin, lo.Y - rectMargin, lo.Z - rectMargin},
		rtreego.Point{hi.X + rectMargin, hi.Y + rectMargin, hi.Z + rectMargin},
	)
	if err != nil {
		panic(fmt.Sprintf("bug: %v", err))
	}
	return r
}

type pathEntry struct {
	index int
	rect  rtreego.Rect
}

func (e *pathEntry) Bounds() rtreego.Rect {
	return e.rect
}

// PathHit is a closest position on one of the paths of a set.
type PathHit struct {
	ClosestPosition
	Path int // index of the path in the set, -1 when invalid
}

func (h PathHit) String() string {
	return fmt.Sprintf("PathHit(path=%d %v)", h.Path, h.ClosestPosition)
}

// PathSet runs queries over many paths, using an R-tree over the paths' bounds to skip paths that are too far away.
type PathSet struct {
	Paths  []*Path
	Logger *slog.Logger

	tree *rtreego.Rtree
}

// NewPathSet indexes paths. It numbers them by setting their Idx and IOIndex to their position in the set.
func NewPathSet(paths ...*Path) *PathSet {
	objs := make([]rtreego.Spatial, 0, len(paths))
	for i, p := range paths {
		p.Idx = i
		p.IOIndex = i
		if !p.Bounds.IsEmpty() {
			objs = append(objs, &pathEntry{i, boxRect(p.Bounds)})
		}
	}
	return &PathSet{
		Paths:  paths,
		Logger: slog.New(slog.DiscardHandler),
		tree:   rtreego.NewTree(3, 2, 8, objs...),
	}
}

// Len returns the number of paths.
func (s *PathSet) Len() int {
	return len(s.Paths)
}

// candidates returns the indices of the paths whose bounds intersect b, in increasing order.
func (s *PathSet) candidates(b Box) []int {
	if b.IsEmpty() || s.tree.Size() == 0 {
		return nil
	}
	indices := []int{}
	for _, obj := range s.tree.SearchIntersect(boxRect(b)) {
		i := obj.(*pathEntry).index
		if s.Paths[i].Bounds.Intersects(b) {
			indices = append(indices, i)
		}
	}
	slices.Sort(indices)
	return indices
}

// FindClosestIntersection returns the intersection of seg with any path that lies closest to seg.A, see Path.FindClosestIntersection. Of equally close intersections, the one on the path with the lowest index is kept.
func (s *PathSet) FindClosestIntersection(details *IntersectionDetails, seg Segment) PathHit {
	hit := PathHit{NewClosestPosition(seg.A), -1}
	for _, i := range s.candidates(seg.Bounds) {
		local := s.Paths[i].FindClosestIntersection(details, seg)
		if hit.UpdateFrom(local) {
			hit.Path = i
		}
	}
	return hit
}

// FindClosestIntersectionWithApproach is like FindClosestIntersection and also returns the nearest approach of any path to seg, see Path.FindClosestIntersectionWithApproach.
func (s *PathSet) FindClosestIntersectionWithApproach(details *IntersectionDetails, seg Segment) (PathHit, PathHit) {
	hit := PathHit{NewClosestPosition(seg.A), -1}
	approach := PathHit{NewClosestPosition(seg.A), -1}
	for _, i := range s.candidates(seg.Bounds) {
		localApproach := NewClosestPosition(seg.A)
		local := s.Paths[i].FindClosestIntersectionWithApproach(details, seg, &localApproach)
		if hit.UpdateFrom(local) {
			hit.Path = i
		}
		if approach.UpdateFrom(localApproach) {
			approach.Path = i
		}
	}
	return hit, approach
}

// Inclusion computes the nesting of all closed paths, see PathInclusionHelper.
func (s *PathSet) Inclusion(tolerance float64) *PathInclusionHelper {
	h := NewPathInclusionHelper()
	for _, p := range s.Paths {
		if p.ClosedLoop && p.IsValid() {
			h.AddPath(p, tolerance)
		}
	}
	s.Logger.Debug("inclusion", "paths", h.Len(), "ambiguous", len(h.Ambiguous()))
	return h
}

// FindCrossings finds for every edge of every path the crossings with edges of the other paths, and of the same path when details enables self intersection. The result is indexed by path and then edge, with a nil entry for edges without crossings; crossings are sorted along their edge.
//
// canCut[i][j] selects whether edge j of path i may cut other edges, and canBeCut[i][j] whether it may be cut. A nil canCut or canBeCut, or a nil entry, allows all edges. The selection of cutting edges is applied when building the paths' edge octrees, so it has no effect on paths whose octree was built before.
//
// Edge lengths and octrees are prepared for all paths first, after which paths are searched concurrently.
func (s *PathSet) FindCrossings(ctx context.Context, details *EdgeIntersectionDetails, canCut, canBeCut [][]bool) ([][]*PathEdgeCrossings, error) {
	lengths := make([]*LengthExtra, len(s.Paths))
	for i, p := range s.Paths {
		lengths[i] = NewLengthExtra(p)
		p.AddExtra(lengths[i], true)
		if mask := pathMask(canCut, i); mask != nil {
			p.BuildPartialEdgeOctree(mask)
		} else {
			p.BuildEdgeOctree()
		}
	}

	results := make([][]*PathEdgeCrossings, len(s.Paths))
	g, ctx := errgroup.WithContext(ctx)
	for i := range s.Paths {
		g.Go(func() error {
			crossings, err := s.findPathCrossings(ctx, i, details, lengths[i], pathMask(canBeCut, i))
			if err != nil {
				return fmt.Errorf("path %d: %w", i, err)
			}
			results[i] = crossings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func pathMask(masks [][]bool, i int) []bool {
	if masks == nil || len(masks) <= i {
		return nil
	}
	return masks[i]
}

func (s *PathSet) findPathCrossings(ctx context.Context, i int, details *EdgeIntersectionDetails, lengths *LengthExtra, canBeCut []bool) ([]*PathEdgeCrossings, error) {
	path := s.Paths[i]
	results := make([]*PathEdgeCrossings, path.NumEdges)
	n := 0
	for j, edge := range path.Edges {
		if err := ctx.Err(); err != nil {
			return nil, err
		} else if canBeCut != nil && !canBeCut[j] || !path.IsEdgeValid(edge) {
			continue
		}

		crossings := NewPathEdgeCrossings(j)
		for _, k := range s.candidates(edge.Bounds) {
			if k == i && !details.EnableSelfIntersection {
				continue
			}
			other := s.Paths[k]
			other.EdgeOctree().FindOverlapping(edge.Bounds, func(o int) bool {
				crossings.FindSplit(path, edge, lengths, other, other.Edges[o], details)
				return true
			})
		}
		if !crossings.IsEmpty() {
			crossings.SortByAlpha()
			results[j] = crossings
			n += len(crossings.Crossings)
		}
	}
	s.Logger.Debug("crossings", "path", i, "edges", path.NumEdges, "crossings", n)
	return results, nil
}
