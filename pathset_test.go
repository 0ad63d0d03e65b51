package paths

import (
	"context"
	"errors"
	"testing"

	"github.com/tdewolff/test"
)

func TestPathSet(t *testing.T) {
	set := NewPathSet(
		NewPath(Locations{V(7, -5, 0), V(7, 5, 0)}, false, 0.02),
		NewPath(Locations{V(3, -5, 0), V(3, 5, 0)}, false, 0.02),
		NewPath(Locations{V(0, 100, 0), V(10, 100, 0)}, false, 0.02),
		NewPath(Locations{V(1, 1, 1)}, false, 0.02),
	)
	test.T(t, set.Len(), 4)
	for i, p := range set.Paths {
		test.T(t, p.Idx, i)
		test.T(t, p.IOIndex, i)
	}
	test.T(t, set.candidates(BoxFromPoints(V(0, 0, 0), V(10, 0, 0))), []int{0, 1})
	test.T(t, set.candidates(BoxFromPoints(V(0, 100, 0), V(1, 100, 0))), []int{2})
	test.T(t, len(set.candidates(EmptyBox())), 0)

	details := DefaultIntersectionDetails()
	details.Tolerance = 0.01
	details.Init()

	hit := set.FindClosestIntersection(&details, NewSegment(V(0, 0, 0), V(10, 0, 0), 0.02))
	test.That(t, hit.Valid)
	test.T(t, hit.Path, 1)
	test.T(t, hit.Index, 0)
	testVector(t, hit.Location, V(3, 0, 0))

	hit = set.FindClosestIntersection(&details, NewSegment(V(10, 0, 0), V(0, 0, 0), 0.02))
	test.T(t, hit.Path, 0)
	testVector(t, hit.Location, V(7, 0, 0))

	hit = set.FindClosestIntersection(&details, NewSegment(V(0, 50, 0), V(10, 50, 0), 0.02))
	test.That(t, !hit.Valid)
	test.T(t, hit.Path, -1)
}

func TestPathSetApproach(t *testing.T) {
	set := NewPathSet(
		NewPath(Locations{V(0, 3, 0), V(10, 3, 0)}, false, 5.0),
		NewPath(Locations{V(0, 1, 0), V(10, 1, 0)}, false, 5.0),
	)
	details := DefaultIntersectionDetails()
	hit, approach := set.FindClosestIntersectionWithApproach(&details, NewSegment(V(0, 0, 0), V(10, 0, 0), 0.0))
	test.That(t, !hit.Valid)
	test.That(t, approach.Valid)
	test.T(t, approach.Path, 1)
	testVector(t, approach.Location, V(0, 1, 0))
	test.Float(t, approach.Distance(), 1.0)
}

func TestPathSetInclusion(t *testing.T) {
	set := NewPathSet(
		NewPath(Square(0, 0, 1), true, 0.0),
		NewPath(Square(0, 0, 10), true, 0.0),
		NewPath(Square(0, 0, 20), false, 0.0),
	)
	h := set.Inclusion(0.0)
	test.T(t, h.Len(), 2)
	info, _ := h.Find(0)
	test.T(t, info, InclusionInfo{Depth: 1, Odd: true})
	info, _ = h.Find(1)
	test.T(t, info, InclusionInfo{Children: 1})
	_, ok := h.Find(2)
	test.That(t, !ok, "open paths are skipped")
}

func crossingPaths() *PathSet {
	return NewPathSet(
		NewPath(Locations{V(0, 0, 0), V(10, 0, 0)}, false, 0.02),
		NewPath(Locations{V(5, -5, 0), V(5, 5, 0)}, false, 0.02),
	)
}

func TestPathSetFindCrossings(t *testing.T) {
	set := crossingPaths()
	results, err := set.FindCrossings(context.Background(), crossingDetails(0.01), nil, nil)
	test.Error(t, err)
	test.T(t, len(results), 2)

	for i, other := range []int{1, 0} {
		test.T(t, len(results[i]), 1)
		crossings := results[i][0]
		test.T(t, crossings.Index, 0)
		test.T(t, len(crossings.Crossings), 1)
		c := crossings.Crossings[0]
		test.Float(t, c.Alpha, 0.5)
		testVector(t, c.Location, V(5, 0, 0))
		test.T(t, c.PathIOIndex(), other)
		test.T(t, c.EdgeStart(), 0)
	}
}

func TestPathSetFindCrossingsMasks(t *testing.T) {
	set := crossingPaths()
	results, err := set.FindCrossings(context.Background(), crossingDetails(0.01), nil, [][]bool{{false}})
	test.Error(t, err)
	test.T(t, results[0][0] == nil, true)
	test.T(t, len(results[1][0].Crossings), 1)

	set = crossingPaths()
	results, err = set.FindCrossings(context.Background(), crossingDetails(0.01), [][]bool{nil, {false}}, nil)
	test.Error(t, err)
	test.T(t, results[0][0] == nil, true, "edge of path 1 cannot cut")
	test.T(t, len(results[1][0].Crossings), 1)
}

func TestPathSetSelfCrossings(t *testing.T) {
	bowtie := Locations{V(0, 0, 0), V(10, 10, 0), V(10, 0, 0), V(0, 10, 0)}
	details := crossingDetails(0.01)

	set := NewPathSet(NewPath(bowtie, true, 0.02))
	results, err := set.FindCrossings(context.Background(), details, nil, nil)
	test.Error(t, err)
	test.T(t, len(results[0]), 4)
	test.T(t, results[0][1] == nil, true)
	test.T(t, results[0][3] == nil, true)
	for _, edge := range []int{0, 2} {
		crossings := results[0][edge]
		test.T(t, len(crossings.Crossings), 1)
		test.T(t, crossings.Crossings[0].EdgeStart(), 2-edge)
		test.T(t, crossings.Crossings[0].PathIOIndex(), 0)
		testVector(t, crossings.Crossings[0].Location, V(5, 5, 0))
		test.Float(t, crossings.Crossings[0].Alpha, 0.5)
	}

	details.EnableSelfIntersection = false
	set = NewPathSet(NewPath(bowtie, true, 0.02))
	results, err = set.FindCrossings(context.Background(), details, nil, nil)
	test.Error(t, err)
	for _, crossings := range results[0] {
		test.T(t, crossings == nil, true)
	}
}

func TestPathSetFindCrossingsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := crossingPaths().FindCrossings(ctx, crossingDetails(0.01), nil, nil)
	test.That(t, errors.Is(err, context.Canceled))
}
