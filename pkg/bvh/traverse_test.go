package bvh

import (
	"testing"

	"github.com/voxelforge/go-bvh/pkg/core"
)

func TestTraverse_SinglePrimitive(t *testing.T) {
	prims := []Primitive{unitCubeAt(core.NewVec3(0, 0, 0))}
	tree := Build(prims)

	ray := core.NewRay(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1))
	got := tree.Traverse(ray, prims)
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("expected [0], got %v", got)
	}
}

func TestTraverse_TwoDisjointPrimitives(t *testing.T) {
	prims := []Primitive{
		unitCubeAt(core.NewVec3(-10, 0, 0)),
		unitCubeAt(core.NewVec3(10, 0, 0)),
	}
	tree := Build(prims)

	rayLeft := core.NewRay(core.NewVec3(-10, 0, -1), core.NewVec3(0, 0, 1))
	if got := tree.Traverse(rayLeft, prims); len(got) != 1 || got[0] != 0 {
		t.Errorf("ray through (-10,0,*): expected [0], got %v", got)
	}

	rayRight := core.NewRay(core.NewVec3(10, 0, -1), core.NewVec3(0, 0, 1))
	if got := tree.Traverse(rayRight, prims); len(got) != 1 || got[0] != 1 {
		t.Errorf("ray through (10,0,*): expected [1], got %v", got)
	}
}

// linearScan is the spec-mandated reference: every primitive whose AABB is
// hit directly, with no acceleration structure.
func linearScan(ray core.Ray, prims []Primitive) []int {
	var hits []int
	for i, p := range prims {
		if ray.Hit(p.AABB(), 0, 1e12) {
			hits = append(hits, i)
		}
	}
	return hits
}

func TestTraverse_SupersetOfLinearScan(t *testing.T) {
	prims := randomCubes(2000, 99)
	tree := Build(prims)
	if !tree.IsConsistent(prims) {
		t.Fatal("tree should be consistent")
	}

	rng := newTestRNG(123)
	for i := 0; i < 200; i++ {
		ray := randomRay(rng)
		bvhHits := toSet(tree.Traverse(ray, prims))
		linearHits := linearScan(ray, prims)

		for _, idx := range linearHits {
			if !bvhHits[idx] {
				t.Fatalf("ray %d: BVH missed primitive %d found by linear scan", i, idx)
			}
		}
	}
}

func toSet(xs []int) map[int]bool {
	m := make(map[int]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}

