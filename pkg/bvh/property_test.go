package bvh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelforge/go-bvh/pkg/core"
	"github.com/voxelforge/go-bvh/pkg/spatialindex"
)

// TestProperty_CrossCheckedSuperset is S3 run against a second,
// independently-built reference index (pkg/spatialindex) rather than the
// plain linear scan already covered by TestTraverse_SupersetOfLinearScan,
// so a bug shared between the tree's own recursive walk and a hand-rolled
// linear scan is less likely to go unnoticed.
func TestProperty_CrossCheckedSuperset(t *testing.T) {
	const n = 5000
	prims := randomCubes(n, 2024)
	tree := Build(prims)
	require.True(t, tree.IsConsistent(prims), "freshly built tree must be consistent")

	boxes := make([]core.AABB, n)
	for i, p := range prims {
		boxes[i] = p.AABB()
	}

	rng := newTestRNG(2025)
	for i := 0; i < 200; i++ {
		ray := randomRay(rng)
		bvhHits := toSet(tree.Traverse(ray, prims))

		// A query AABB enclosing the ray's path through the scene gives the
		// reference index something to test against, the same shape of
		// query a spatial index is meant to answer. The index returns every
		// box overlapping that query box, a superset of the boxes the ray
		// itself hits, so only candidates passing the ray's slab test are
		// required to appear in the BVH result.
		far := ray.At(2000)
		query := core.NewAABB(ray.Origin.Min(far), ray.Origin.Max(far))

		refHits, err := spatialindex.CrossCheck(boxes, query)
		require.NoError(t, err)

		for _, idx := range refHits {
			if !ray.Hit(boxes[idx], 0, 1e12) {
				continue
			}
			assert.True(t, bvhHits[idx], "ray %d: BVH missed primitive %d found by the reference index", i, idx)
		}
	}
}

func TestProperty_OptimizeKeepsTreeConsistent(t *testing.T) {
	mutable := movablePrimitives(300, 9)
	prims := asPrimitives(mutable)
	tree := Build(prims)

	for round := 0; round < 10; round++ {
		idx := round % len(mutable)
		mutable[idx].box = unitCubeAt(core.NewVec3(float64(round)*137.0, float64(round)*-61.0, float64(round)*23.0)).AABB()

		require.NoError(t, tree.Optimize([]int{idx}, prims))
		assert.True(t, tree.IsConsistent(prims), "round %d: tree must remain consistent", round)
	}
}
