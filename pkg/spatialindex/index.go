// Package spatialindex is a small reference spatial index, independent of
// pkg/bvh's own recursive walk, used by property tests to cross-check that
// a BVH traversal's result set is a superset of what an independently
// built structure considers "possibly hit".
package spatialindex

import (
	"github.com/dhconnelly/rtreego"

	"github.com/voxelforge/go-bvh/pkg/core"
)

const dimensions = 3

// boxedPrimitive adapts a core.AABB to rtreego.Spatial, carrying the
// caller's original index through the tree.
type boxedPrimitive struct {
	index int
	rect  rtreego.Rect
}

func (b *boxedPrimitive) Bounds() rtreego.Rect {
	return b.rect
}

// Index is an R-tree over a fixed set of AABBs, addressed by the same
// 0-based index convention as pkg/bvh.Primitive.
type Index struct {
	tree *rtreego.Rtree
}

// Build constructs an Index over boxes, addressed by their position in
// the slice. A non-finite or empty box is skipped; Intersecting never
// reports an index that was skipped.
func Build(boxes []core.AABB) (*Index, error) {
	tree := rtreego.NewTree(dimensions, 25, 50)
	for i, box := range boxes {
		if box.IsEmpty() || !box.IsFinite() {
			continue
		}
		rect, err := toRect(box)
		if err != nil {
			return nil, err
		}
		tree.Insert(&boxedPrimitive{index: i, rect: rect})
	}
	return &Index{tree: tree}, nil
}

// Intersecting returns the indices of every box inserted into the index
// whose AABB overlaps query.
func (idx *Index) Intersecting(query core.AABB) ([]int, error) {
	rect, err := toRect(query)
	if err != nil {
		return nil, err
	}
	results := idx.tree.SearchIntersect(rect)
	out := make([]int, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*boxedPrimitive).index)
	}
	return out, nil
}

// CrossCheck builds an Index over boxes and returns the indices whose box
// overlaps query, as a second, independently-computed reference for
// property tests that already check the result against a plain linear
// scan.
func CrossCheck(boxes []core.AABB, query core.AABB) ([]int, error) {
	idx, err := Build(boxes)
	if err != nil {
		return nil, err
	}
	return idx.Intersecting(query)
}

// degenerateLength is the width given to a zero-width dimension of a box,
// since rtreego.NewRect rejects lengths that are not strictly positive.
const degenerateLength = 1e-9

func toRect(box core.AABB) (rtreego.Rect, error) {
	point := rtreego.Point{box.Min.X, box.Min.Y, box.Min.Z}
	lengths := [dimensions]float64{
		box.Max.X - box.Min.X,
		box.Max.Y - box.Min.Y,
		box.Max.Z - box.Min.Z,
	}
	for i, l := range lengths {
		if l == 0 {
			lengths[i] = degenerateLength
		}
	}
	return rtreego.NewRect(point, lengths[:])
}
