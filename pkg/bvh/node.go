package bvh

import "github.com/voxelforge/go-bvh/pkg/core"

// kind tags which of the two node shapes a node array slot holds.
type kind uint8

const (
	kindLeaf kind = iota
	kindInterior
)

// noParent marks the root, which is conventionally its own parent index.
const noParent = 0

// node is the tagged-variant BVH node: leaf and interior share one array so
// that rotations are local index rewrites rather than pointer chasing.
//
// An interior node stores the AABBs of its two children rather than its own
// AABB; the node's own AABB (when one is needed, e.g. at the root) is the
// union of leftAABB and rightAABB. This duplication is what makes rotation
// scoring O(1): re-scoring a candidate swap never requires re-walking a
// subtree to recompute a surface area.
type node struct {
	kind   kind
	parent int
	depth  int

	// leaf fields
	primitiveIndex int
	leafAABB       core.AABB

	// interior fields
	leftIndex  int
	leftAABB   core.AABB
	rightIndex int
	rightAABB  core.AABB
}

// aabb returns the node's own bounding box: the leaf's AABB, or the union
// of an interior node's two stored child AABBs.
func (n *node) aabb() core.AABB {
	if n.kind == kindLeaf {
		return n.leafAABB
	}
	return n.leftAABB.Union(n.rightAABB)
}
