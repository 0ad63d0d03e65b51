package paths

import (
	"fmt"

	"github.com/golang/geo/r3"
)

const (
	octreeMaxItems = 16 // items per leaf before it splits
	octreeMaxDepth = 12
)

type octreeItem struct {
	index  int
	bounds Box
}

// octreeNode is a cube. Items are stored in the deepest node whose cube fully contains their bounds, so internal nodes keep the items that straddle their children.
type octreeNode struct {
	center   r3.Vector
	extent   float64 // half the side length
	depth    int
	children [8]int // index into EdgeOctree.nodes, zero when absent
	items    []octreeItem
	leaf     bool
}

func (n *octreeNode) box() Box {
	return BoxFromPoints(
		n.center.Sub(r3.Vector{X: n.extent, Y: n.extent, Z: n.extent}),
		n.center.Add(r3.Vector{X: n.extent, Y: n.extent, Z: n.extent}),
	)
}

// octant returns the child octant that fully contains b, or -1.
func (n *octreeNode) octant(b Box) int {
	o := 0
	for axis, iv := range [3][2]float64{{b.X.Lo, b.X.Hi}, {b.Y.Lo, b.Y.Hi}, {b.Z.Lo, b.Z.Hi}} {
		c := [3]float64{n.center.X, n.center.Y, n.center.Z}[axis]
		if c <= iv[0] {
			o |= 1 << axis
		} else if c < iv[1] {
			return -1
		}
	}
	return o
}

// EdgeOctree is a spatial index over the edges of a path, keyed by the edges' bounds. It stores edge indices, which stay valid as long as the path's edges are not rebuilt. Nodes are kept in a single slice and refer to each other by index.
type EdgeOctree struct {
	nodes []octreeNode
	n     int
}

// NewEdgeOctree returns an empty octree over the cube with the given center and half side length.
func NewEdgeOctree(center r3.Vector, extent float64) *EdgeOctree {
	return &EdgeOctree{
		nodes: []octreeNode{{center: center, extent: extent, leaf: true}},
	}
}

// Len returns the number of indexed items.
func (t *EdgeOctree) Len() int {
	return t.n
}

// Bounds returns the cube covered by the root node.
func (t *EdgeOctree) Bounds() Box {
	return t.nodes[0].box()
}

// Insert adds the edge index with its bounds. Bounds reaching outside the root cube are kept at the root.
func (t *EdgeOctree) Insert(index int, bounds Box) {
	t.n++
	item := octreeItem{index, bounds}
	i := 0
	for {
		node := &t.nodes[i]
		if node.leaf {
			node.items = append(node.items, item)
			if octreeMaxItems < len(node.items) && node.depth < octreeMaxDepth {
				t.split(i)
			}
			return
		}

		o := node.octant(bounds)
		if o < 0 || !node.box().ContainsBox(bounds) {
			node.items = append(node.items, item)
			return
		}
		i = t.child(i, o)
	}
}

func (t *EdgeOctree) child(i, o int) int {
	if c := t.nodes[i].children[o]; c != 0 {
		return c
	}
	parent := t.nodes[i]
	half := parent.extent / 2.0
	center := parent.center
	if o&1 != 0 {
		center.X += half
	} else {
		center.X -= half
	}
	if o&2 != 0 {
		center.Y += half
	} else {
		center.Y -= half
	}
	if o&4 != 0 {
		center.Z += half
	} else {
		center.Z -= half
	}
	t.nodes = append(t.nodes, octreeNode{center: center, extent: half, depth: parent.depth + 1, leaf: true})
	c := len(t.nodes) - 1
	t.nodes[i].children[o] = c
	return c
}

// split turns a full leaf into an internal node and pushes down the items that fit in a single child.
func (t *EdgeOctree) split(i int) {
	items := t.nodes[i].items
	t.nodes[i].items = nil
	t.nodes[i].leaf = false

	kept := items[:0:0]
	for _, item := range items {
		node := &t.nodes[i]
		o := node.octant(item.bounds)
		if o < 0 || !node.box().ContainsBox(item.bounds) {
			kept = append(kept, item)
			continue
		}
		c := t.child(i, o)
		t.nodes[c].items = append(t.nodes[c].items, item)
	}
	t.nodes[i].items = kept
}

// FindOverlapping calls fn for every item whose bounds intersect b, in a fixed traversal order. It stops when fn returns false.
func (t *EdgeOctree) FindOverlapping(b Box, fn func(index int) bool) {
	if b.IsEmpty() {
		return
	}
	t.find(0, b, fn)
}

func (t *EdgeOctree) find(i int, b Box, fn func(int) bool) bool {
	node := &t.nodes[i]
	for _, item := range node.items {
		if item.bounds.Intersects(b) && !fn(item.index) {
			return false
		}
	}
	for _, c := range node.children {
		if c != 0 && t.nodes[c].box().Intersects(b) {
			if !t.find(c, b, fn) {
				return false
			}
		}
	}
	return true
}

// Overlapping returns the indices of all items whose bounds intersect b.
func (t *EdgeOctree) Overlapping(b Box) []int {
	indices := []int{}
	t.FindOverlapping(b, func(index int) bool {
		indices = append(indices, index)
		return true
	})
	return indices
}

func (t *EdgeOctree) String() string {
	return fmt.Sprintf("EdgeOctree(items=%d nodes=%d)", t.n, len(t.nodes))
}
