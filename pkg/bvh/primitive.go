package bvh

import "github.com/voxelforge/go-bvh/pkg/core"

// Primitive is the host's geometry, opaque to the BVH beyond its current
// AABB. Primitives are addressed by their 0-based position in the slice
// passed to Build, not by any identity the primitive itself carries.
type Primitive interface {
	AABB() core.AABB
}
