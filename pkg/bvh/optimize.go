package bvh

import (
	"github.com/samber/lo"

	"github.com/voxelforge/go-bvh/pkg/bvh/bvherr"
	"github.com/voxelforge/go-bvh/pkg/core"
)

// Optimize repairs the tree in place after the primitives named by changed
// have had their AABBs mutated by the host. It refits every ancestor of a
// touched leaf bottom-up and, at each ancestor, evaluates the four
// structure-preserving rotations described by the optimizer design,
// applying at most one rotation per node visited and propagating the
// change upward until no node remains marked for reconsideration.
//
// An out-of-range index or a non-finite primitive AABB is a precondition
// violation: Optimize returns a wrapped bvherr sentinel and leaves the tree
// unchanged. An out-of-range index is also logged at Warning level; a
// non-finite AABB is not logged.
//
// As a rule of thumb (not enforced here — the policy is the caller's),
// rebuilding from scratch tends to beat Optimize once more than half the
// primitives have moved since the last build.
func (t *Tree) Optimize(changed []int, primitives []Primitive) error {
	if len(changed) == 0 {
		return nil
	}

	changed = lo.Uniq(changed)
	for _, p := range changed {
		if p < 0 || p >= t.primitiveCount {
			t.logger.Warningf("optimize %s: primitive index %d out of range (n=%d)", t.buildID, p, t.primitiveCount)
			return bvherr.WrapIndexOutOfRange(p, t.primitiveCount)
		}
	}

	boxes := make(map[int]core.AABB, len(changed))
	for _, p := range changed {
		box := primitives[p].AABB()
		if !box.IsFinite() {
			return bvherr.WrapNonFiniteAABB(p)
		}
		boxes[p] = box
	}
	for p, box := range boxes {
		t.nodes[t.leafOfPrimitive[p]].leafAABB = box
	}

	if len(t.nodes) <= 1 {
		// Single-leaf (or empty) tree: nothing to refit above the leaf, no
		// rotations are possible.
		return nil
	}

	dirty := map[int]bool{}
	for _, p := range changed {
		leaf := int(t.leafOfPrimitive[p])
		for n := t.nodes[leaf].parent; !dirty[n]; n = t.nodes[n].parent {
			dirty[n] = true
			if n == RootIndex {
				break
			}
		}
	}

	for len(dirty) > 0 {
		p := t.deepestDirty(dirty)
		delete(dirty, p)
		rotated := t.refitAndRotate(p)
		if rotated && p != RootIndex {
			dirty[t.nodes[p].parent] = true
		}
	}

	t.recomputeDepths()
	return nil
}

func (t *Tree) deepestDirty(dirty map[int]bool) int {
	best, bestDepth := -1, -1
	for idx := range dirty {
		if t.nodes[idx].depth > bestDepth {
			bestDepth, best = t.nodes[idx].depth, idx
		}
	}
	return best
}

// refitAndRotate recomputes P's two stored child AABBs from its children's
// current geometry, then evaluates the four candidate rotations (L<->RL,
// L<->RR, R<->LL, R<->LR), applying the single best one if it strictly
// reduces the surface-area sum at P. It reports whether a rotation was
// applied.
func (t *Tree) refitAndRotate(p int) bool {
	n := &t.nodes[p]
	n.leftAABB = t.nodes[n.leftIndex].aabb()
	n.rightAABB = t.nodes[n.rightIndex].aabb()

	currentCost := n.leftAABB.SurfaceArea() + n.rightAABB.SurfaceArea()
	bestCost := currentCost
	bestCandidate := 0

	leftInterior := t.nodes[n.leftIndex].kind == kindInterior
	rightInterior := t.nodes[n.rightIndex].kind == kindInterior

	if rightInterior {
		r := &t.nodes[n.rightIndex]
		if cost := r.leftAABB.SurfaceArea() + n.leftAABB.Union(r.rightAABB).SurfaceArea(); cost < bestCost {
			bestCost, bestCandidate = cost, 1 // swap L <-> RL
		}
		if cost := r.rightAABB.SurfaceArea() + r.leftAABB.Union(n.leftAABB).SurfaceArea(); cost < bestCost {
			bestCost, bestCandidate = cost, 2 // swap L <-> RR
		}
	}
	if leftInterior {
		l := &t.nodes[n.leftIndex]
		if cost := n.rightAABB.Union(l.rightAABB).SurfaceArea() + l.leftAABB.SurfaceArea(); cost < bestCost {
			bestCost, bestCandidate = cost, 3 // swap R <-> LL
		}
		if cost := l.leftAABB.Union(n.rightAABB).SurfaceArea() + l.rightAABB.SurfaceArea(); cost < bestCost {
			bestCost, bestCandidate = cost, 4 // swap R <-> LR
		}
	}

	if bestCandidate == 0 {
		return false
	}

	switch bestCandidate {
	case 1: // swap L <-> RL
		r := &t.nodes[n.rightIndex]
		lIdx, rlIdx := n.leftIndex, r.leftIndex
		t.nodes[lIdx].parent = n.rightIndex
		t.nodes[rlIdx].parent = p
		r.leftIndex, n.leftIndex = lIdx, rlIdx
		r.leftAABB = t.nodes[lIdx].aabb()
		n.leftAABB = t.nodes[rlIdx].aabb()
		n.rightAABB = r.leftAABB.Union(r.rightAABB)
	case 2: // swap L <-> RR
		r := &t.nodes[n.rightIndex]
		lIdx, rrIdx := n.leftIndex, r.rightIndex
		t.nodes[lIdx].parent = n.rightIndex
		t.nodes[rrIdx].parent = p
		r.rightIndex, n.leftIndex = lIdx, rrIdx
		r.rightAABB = t.nodes[lIdx].aabb()
		n.leftAABB = t.nodes[rrIdx].aabb()
		n.rightAABB = r.leftAABB.Union(r.rightAABB)
	case 3: // swap R <-> LL
		l := &t.nodes[n.leftIndex]
		rIdx, llIdx := n.rightIndex, l.leftIndex
		t.nodes[rIdx].parent = n.leftIndex
		t.nodes[llIdx].parent = p
		l.leftIndex, n.rightIndex = rIdx, llIdx
		l.leftAABB = t.nodes[rIdx].aabb()
		n.rightAABB = t.nodes[llIdx].aabb()
		n.leftAABB = l.leftAABB.Union(l.rightAABB)
	case 4: // swap R <-> LR
		l := &t.nodes[n.leftIndex]
		rIdx, lrIdx := n.rightIndex, l.rightIndex
		t.nodes[rIdx].parent = n.leftIndex
		t.nodes[lrIdx].parent = p
		l.rightIndex, n.rightIndex = rIdx, lrIdx
		l.rightAABB = t.nodes[rIdx].aabb()
		n.rightAABB = t.nodes[lrIdx].aabb()
		n.leftAABB = l.leftAABB.Union(l.rightAABB)
	}

	t.logger.Debugf("optimize %s: rotation %d at node %d, cost %.4f -> %.4f", t.buildID, bestCandidate, p, currentCost, bestCost)
	return true
}
