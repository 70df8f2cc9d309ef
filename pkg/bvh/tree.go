package bvh

import (
	"github.com/google/uuid"

	"github.com/voxelforge/go-bvh/pkg/bvhlog"
	"github.com/voxelforge/go-bvh/pkg/core"
)

// DefaultBinCount is the number of SAH bins used when no WithBinCount
// option is supplied. Correctness does not depend on this value; it only
// trades build time for split quality.
const DefaultBinCount = 6

// Tree is a BVH's pointer-linked node array. Nodes live in a single
// growable slice; identity is a node index into that slice, and the root
// is always at index 0. Tree is mutated only by Optimize; Traverse and
// IsConsistent never modify it.
type Tree struct {
	nodes          []node
	primitiveCount int

	// leafOfPrimitive[p] is the node index of the leaf holding primitive p.
	// It stays valid across Optimize because rotations move subtrees by
	// rewriting parent/child indices, never by relocating a leaf's own
	// array slot.
	leafOfPrimitive []int32

	binCount int
	logger   bvhlog.Logger
	buildID  uuid.UUID
}

// Option configures a Tree at build time.
type Option func(*buildConfig)

type buildConfig struct {
	binCount int
	logger   bvhlog.Logger
}

// WithBinCount overrides DefaultBinCount. Any value >= 2 is valid.
func WithBinCount(n int) Option {
	return func(c *buildConfig) {
		if n >= 2 {
			c.binCount = n
		}
	}
}

// WithLogger attaches a diagnostics logger. Build logs each chosen SAH
// split with its cost, and a node-count summary, at Debug level; per-bin
// scores are not logged. Optimize logs applied rotations at Debug
// level and out-of-range indices at Warning level.
func WithLogger(l bvhlog.Logger) Option {
	return func(c *buildConfig) {
		c.logger = l
	}
}

// PrimitiveCount returns the number of primitives the tree was built from.
func (t *Tree) PrimitiveCount() int {
	return t.primitiveCount
}

// NodeCount returns the number of live node slots (2N-1 for N>0, 0 for N=0).
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// BuildID identifies one build/optimize lineage for log correlation.
func (t *Tree) BuildID() uuid.UUID {
	return t.buildID
}

// RootIndex is always 0; it is defined as a named constant for readers of
// call sites rather than a literal 0.
const RootIndex = 0

// IsLeaf reports whether node i is a leaf.
func (t *Tree) IsLeaf(i int) bool {
	return t.nodes[i].kind == kindLeaf
}

// PrimitiveIndex returns the external primitive index stored at leaf i.
// It panics if i is not a leaf.
func (t *Tree) PrimitiveIndex(i int) int {
	n := &t.nodes[i]
	if n.kind != kindLeaf {
		panic("bvh: PrimitiveIndex of an interior node")
	}
	return n.primitiveIndex
}

// LeafAABB returns the stored AABB of leaf i. It panics if i is not a leaf.
func (t *Tree) LeafAABB(i int) core.AABB {
	n := &t.nodes[i]
	if n.kind != kindLeaf {
		panic("bvh: LeafAABB of an interior node")
	}
	return n.leafAABB
}

// Children returns interior node i's left/right child indices and their
// stored AABBs. It panics if i is a leaf.
func (t *Tree) Children(i int) (leftIndex int, leftAABB core.AABB, rightIndex int, rightAABB core.AABB) {
	n := &t.nodes[i]
	if n.kind != kindInterior {
		panic("bvh: Children of a leaf node")
	}
	return n.leftIndex, n.leftAABB, n.rightIndex, n.rightAABB
}

// AABB returns node i's own bounding box (the leaf's AABB, or the union of
// an interior node's two stored child AABBs).
func (t *Tree) AABB(i int) core.AABB {
	return t.nodes[i].aabb()
}

// Depth returns node i's advisory depth (root = 0).
func (t *Tree) Depth(i int) int {
	return t.nodes[i].depth
}

// Parent returns node i's parent index. The root is its own parent.
func (t *Tree) Parent(i int) int {
	return t.nodes[i].parent
}
