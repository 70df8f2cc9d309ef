package bvh

import (
	"math"

	"github.com/voxelforge/go-bvh/pkg/core"
)

// epsilon bounds the floating-point slack allowed when comparing an
// interior node's stored child AABB against an independently recomputed
// union of the same subtree's leaf AABBs — the two are mathematically
// identical but may associate floating-point unions in a different order.
const epsilon = 1e-9

// IsConsistent is a debug predicate verifying invariants 1-5: tree shape,
// parent/child consistency, AABB containment, recomputable depth, and
// primitive coverage. primitives is used only to check that each leaf's
// stored AABB contains the corresponding primitive's current AABB; pass
// nil to skip that check.
func (t *Tree) IsConsistent(primitives []Primitive) bool {
	n := t.primitiveCount
	if n == 0 {
		return len(t.nodes) == 0
	}
	if len(t.nodes) != 2*n-1 {
		return false
	}

	seenPrimitive := make([]bool, n)
	leafCount, interiorCount := 0, 0
	visited := make([]bool, len(t.nodes))

	var recur func(i, parent, depth int) (core.AABB, bool)
	recur = func(i, parent, depth int) (core.AABB, bool) {
		if i < 0 || i >= len(t.nodes) {
			return core.AABB{}, false
		}
		if visited[i] {
			// A node visited twice means the "tree" is not acyclic /
			// not every non-root node has exactly one parent.
			return core.AABB{}, false
		}
		visited[i] = true

		nd := &t.nodes[i]
		if nd.parent != parent {
			return core.AABB{}, false
		}
		if nd.depth != depth {
			return core.AABB{}, false
		}

		if nd.kind == kindLeaf {
			leafCount++
			if nd.primitiveIndex < 0 || nd.primitiveIndex >= n || seenPrimitive[nd.primitiveIndex] {
				return core.AABB{}, false
			}
			seenPrimitive[nd.primitiveIndex] = true
			if primitives != nil && !containsBox(nd.leafAABB, primitives[nd.primitiveIndex].AABB()) {
				return core.AABB{}, false
			}
			return nd.leafAABB, true
		}

		interiorCount++
		leftActual, leftOK := recur(nd.leftIndex, i, depth+1)
		rightActual, rightOK := recur(nd.rightIndex, i, depth+1)
		if !leftOK || !rightOK {
			return core.AABB{}, false
		}
		if !almostEqualAABB(nd.leftAABB, leftActual) || !almostEqualAABB(nd.rightAABB, rightActual) {
			return core.AABB{}, false
		}
		return nd.leftAABB.Union(nd.rightAABB), true
	}

	if _, ok := recur(RootIndex, t.nodes[RootIndex].parent, 0); !ok {
		return false
	}
	if leafCount != n || interiorCount != n-1 {
		return false
	}
	for _, seen := range seenPrimitive {
		if !seen {
			return false
		}
	}
	for _, v := range visited {
		if !v {
			return false
		}
	}
	return true
}

// containsBox reports whether outer contains every corner of inner.
func containsBox(outer, inner core.AABB) bool {
	if inner.IsEmpty() {
		return true
	}
	return outer.Contains(inner.Min) && outer.Contains(inner.Max)
}

func almostEqualAABB(a, b core.AABB) bool {
	return almostEqual(a.Min.X, b.Min.X) && almostEqual(a.Min.Y, b.Min.Y) && almostEqual(a.Min.Z, b.Min.Z) &&
		almostEqual(a.Max.X, b.Max.X) && almostEqual(a.Max.Y, b.Max.Y) && almostEqual(a.Max.Z, b.Max.Z)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon*(1+math.Abs(a)+math.Abs(b))
}
