package bvh

import (
	"math"

	"github.com/voxelforge/go-bvh/pkg/core"
)

// Traverse walks the tree depth-first, left-first, and returns the
// primitive indices of every leaf whose subtree AABB was hit by ray. The
// test is against the tree's own stored AABBs, not primitives[i].AABB() —
// primitives is accepted for interface symmetry with the host's
// traversal callback (spec.md §6) but the BVH never re-derives a box it
// already owns.
//
// The returned order is depth-first left-first; it is not sorted by hit
// distance along the ray.
func (t *Tree) Traverse(ray core.Ray, primitives []Primitive) []int {
	if len(t.nodes) == 0 {
		return nil
	}

	var hits []int
	var walk func(i int)
	walk = func(i int) {
		n := &t.nodes[i]
		if n.kind == kindLeaf {
			if ray.Hit(n.leafAABB, 0, math.Inf(1)) {
				hits = append(hits, n.primitiveIndex)
			}
			return
		}
		if ray.Hit(n.leftAABB, 0, math.Inf(1)) {
			walk(n.leftIndex)
		}
		if ray.Hit(n.rightAABB, 0, math.Inf(1)) {
			walk(n.rightIndex)
		}
	}
	walk(RootIndex)
	return hits
}
