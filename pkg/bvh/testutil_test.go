package bvh

import (
	"math/rand"

	"github.com/voxelforge/go-bvh/pkg/core"
)

func newTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// randomRay returns a ray with a random origin near the scene bounds used
// by randomCubes and a random unit-ish direction, including axis-parallel
// directions often enough to exercise the infinite inv_direction component
// path in the slab test.
func randomRay(rng *rand.Rand) core.Ray {
	origin := core.NewVec3(rng.Float64()*1200-600, rng.Float64()*1200-600, rng.Float64()*1200-600)

	var dir core.Vec3
	switch rng.Intn(4) {
	case 0:
		dir = core.NewVec3(1, 0, 0)
	case 1:
		dir = core.NewVec3(0, 1, 0)
	case 2:
		dir = core.NewVec3(0, 0, 1)
	default:
		dir = core.NewVec3(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1).Normalize()
	}
	return core.NewRay(origin, dir)
}
