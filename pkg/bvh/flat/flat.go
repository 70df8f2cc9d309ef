// Package flat linearizes a pointer-linked bvh.Tree into a flat array of
// fixed-size records for stackless traversal, following the entry/exit
// sentinel convention: a leaf's exit_index names the next node to visit
// after it, and an interior node's entry_index/exit_index name where to go
// on a ray hit/miss of its AABB respectively.
package flat

import (
	"math"

	"github.com/voxelforge/go-bvh/pkg/bvh"
	"github.com/voxelforge/go-bvh/pkg/core"
)

// Node is one fixed-size flat BVH record.
//
// Leaf: EntryIndex == -1 (sentinel), PrimitiveIndex is the external
// primitive index, ExitIndex is the next node to visit after this leaf.
//
// Interior: PrimitiveIndex == -1 (unused), EntryIndex is the node to visit
// on a ray hit of AABB, ExitIndex is the node to visit on a miss.
type Node struct {
	AABB           core.AABB
	EntryIndex     int
	ExitIndex      int
	PrimitiveIndex int
}

// FlatBVH is an immutable snapshot of a bvh.Tree, safe for concurrent
// read-only traversal.
type FlatBVH struct {
	Nodes []Node
}

// Build flattens t via a single pre-order walk. It does not mutate or
// otherwise invalidate t; the pointer tree remains independently usable.
func Build(t *bvh.Tree) *FlatBVH {
	n := t.NodeCount()
	if n == 0 {
		return &FlatBVH{}
	}

	sizes := make([]int, n)
	var computeSizes func(i int) int
	computeSizes = func(i int) int {
		if t.IsLeaf(i) {
			sizes[i] = 1
			return 1
		}
		leftIdx, _, rightIdx, _ := t.Children(i)
		size := 1 + computeSizes(leftIdx) + computeSizes(rightIdx)
		sizes[i] = size
		return size
	}
	computeSizes(bvh.RootIndex)

	nodes := make([]Node, 0, n)
	var emit func(i, next int)
	emit = func(i, next int) {
		if t.IsLeaf(i) {
			nodes = append(nodes, Node{
				AABB:           t.LeafAABB(i),
				EntryIndex:     -1,
				ExitIndex:      next,
				PrimitiveIndex: t.PrimitiveIndex(i),
			})
			return
		}

		cursor := len(nodes)
		leftIdx, _, rightIdx, _ := t.Children(i)
		nodes = append(nodes, Node{
			AABB:           t.AABB(i),
			EntryIndex:     cursor + 1,
			ExitIndex:      next,
			PrimitiveIndex: -1,
		})

		rightPos := cursor + 1 + sizes[leftIdx]
		emit(leftIdx, rightPos)
		emit(rightIdx, next)
	}
	emit(bvh.RootIndex, -1)

	return &FlatBVH{Nodes: nodes}
}

// Traverse walks the flat array stacklessly and returns the primitive
// indices of every leaf whose own AABB was hit — a leaf is reached via its
// interior ancestors' (wider, unioned) boxes, so its own box is still
// tested before it is accepted. primitives is accepted for interface
// symmetry with bvh.Tree.Traverse; the flat array already owns the AABBs
// it tests against.
func (f *FlatBVH) Traverse(ray core.Ray, primitives []bvh.Primitive) []int {
	if len(f.Nodes) == 0 {
		return nil
	}

	var hits []int
	index := 0
	for index != -1 {
		n := &f.Nodes[index]
		if n.EntryIndex < 0 {
			if rayHitsFlatAABB(ray, n.AABB) {
				hits = append(hits, n.PrimitiveIndex)
			}
			index = n.ExitIndex
			continue
		}
		if rayHitsFlatAABB(ray, n.AABB) {
			index = n.EntryIndex
		} else {
			index = n.ExitIndex
		}
	}
	return hits
}

func rayHitsFlatAABB(ray core.Ray, box core.AABB) bool {
	return ray.Hit(box, 0, math.Inf(1))
}
