package paths

import (
	"fmt"
)

// InclusionInfo describes how a closed path nests among the others.
type InclusionInfo struct {
	Depth    int  // number of paths containing this one
	Children int  // number of paths contained in this one
	Odd      bool // Depth is odd, the path is a hole under the even-odd rule
}

func (info InclusionInfo) String() string {
	return fmt.Sprintf("InclusionInfo(depth=%d children=%d odd=%t)", info.Depth, info.Children, info.Odd)
}

// PathInclusionHelper computes the nesting of closed paths by testing every pair once. Paths are identified by their Idx. It is not safe for concurrent use.
type PathInclusionHelper struct {
	paths     []*Path
	infos     map[int]*InclusionInfo
	ambiguous [][2]int
}

// NewPathInclusionHelper returns an empty helper.
func NewPathInclusionHelper() *PathInclusionHelper {
	return &PathInclusionHelper{
		infos: map[int]*InclusionInfo{},
	}
}

// AddPath tests path against all previously added paths, see Path.Contains for the meaning of tolerance. When an earlier path contains the new one, the new path's depth and the earlier path's children are incremented; otherwise, when the new path contains the earlier one, the reverse applies. Adding a path with an Idx that was seen before does nothing.
//
// When both paths contain each other, which happens for overlapping shapes at a high tolerance, the first case is recorded and the pair is reported by Ambiguous.
func (h *PathInclusionHelper) AddPath(path *Path, tolerance float64) {
	if _, ok := h.infos[path.Idx]; ok {
		return
	}

	info := &InclusionInfo{}
	for _, other := range h.paths {
		otherInfo := h.infos[other.Idx]
		if other.ContainsPath(path, tolerance) {
			info.Depth++
			info.Odd = info.Depth%2 != 0
			otherInfo.Children++
			if path.ContainsPath(other, tolerance) {
				h.ambiguous = append(h.ambiguous, [2]int{other.Idx, path.Idx})
			}
		} else if path.ContainsPath(other, tolerance) {
			otherInfo.Depth++
			otherInfo.Odd = otherInfo.Depth%2 != 0
			info.Children++
		}
	}
	h.paths = append(h.paths, path)
	h.infos[path.Idx] = info
}

// AddPaths adds all paths in order, see AddPath.
func (h *PathInclusionHelper) AddPaths(paths []*Path, tolerance float64) {
	for _, path := range paths {
		h.AddPath(path, tolerance)
	}
}

// Find returns the nesting of the path with identity idx, and false if no such path was added.
func (h *PathInclusionHelper) Find(idx int) (InclusionInfo, bool) {
	info, ok := h.infos[idx]
	if !ok {
		return InclusionInfo{}, false
	}
	return *info, true
}

// Len returns the number of added paths.
func (h *PathInclusionHelper) Len() int {
	return len(h.paths)
}

// Ambiguous returns the pairs of path identities, earlier path first, that were found to contain each other.
func (h *PathInclusionHelper) Ambiguous() [][2]int {
	return h.ambiguous
}
