package bvh

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/voxelforge/go-bvh/pkg/bvhlog"
	"github.com/voxelforge/go-bvh/pkg/core"
)

// auxPrimitive is the builder's working record: the primitive's external
// index, its AABB, and its centroid, kept together so the partition step
// can reorder primitives without losing track of which external index
// each one is.
type auxPrimitive struct {
	index    int
	aabb     core.AABB
	centroid core.Vec3
}

// Build constructs a BVH from primitives via top-down binned-SAH
// partitioning. N=0 yields an empty tree; N=1 yields a single-leaf tree
// whose root (index 0) is that leaf.
func Build(primitives []Primitive, opts ...Option) *Tree {
	cfg := buildConfig{binCount: DefaultBinCount, logger: bvhlog.NoOp()}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(primitives)
	t := &Tree{
		primitiveCount: n,
		binCount:       cfg.binCount,
		logger:         cfg.logger,
		buildID:        uuid.New(),
	}
	if n == 0 {
		return t
	}

	aux := make([]auxPrimitive, n)
	for i, p := range primitives {
		box := p.AABB()
		aux[i] = auxPrimitive{index: i, aabb: box, centroid: box.Center()}
	}

	nodes := make([]node, 0, 2*n-1)
	buildSubtree(&nodes, aux, noParent, 0, cfg.binCount, cfg.logger)
	t.nodes = nodes
	t.recomputeDepths()

	t.leafOfPrimitive = make([]int32, n)
	for i := range t.nodes {
		if t.nodes[i].kind == kindLeaf {
			t.leafOfPrimitive[t.nodes[i].primitiveIndex] = int32(i)
		}
	}

	t.logger.Debugf("build %s: n=%d nodes=%d", t.buildID, n, len(t.nodes))
	return t
}

// buildSubtree recursively partitions aux, appending leaf/interior nodes to
// *nodes, and returns the index of the node it created for this range.
func buildSubtree(nodes *[]node, aux []auxPrimitive, parent, depth, binCount int, logger bvhlog.Logger) int {
	if len(aux) == 1 {
		idx := len(*nodes)
		*nodes = append(*nodes, node{
			kind:           kindLeaf,
			parent:         parent,
			depth:          depth,
			primitiveIndex: aux[0].index,
			leafAABB:       aux[0].aabb,
		})
		return idx
	}

	idx := len(*nodes)
	*nodes = append(*nodes, node{kind: kindInterior, parent: parent, depth: depth})

	centroidBox := core.EmptyAABB()
	for _, p := range aux {
		centroidBox = centroidBox.UnionPoint(p.centroid)
	}
	axis := centroidBox.LargestAxis()

	var mid int
	if centroidBox.Size().Component(axis) == 0 {
		mid = medianSplit(aux)
	} else {
		mid = binnedSAHSplit(aux, axis, centroidBox, binCount, logger)
		if mid <= 0 || mid >= len(aux) {
			mid = medianSplit(aux)
		}
	}

	leftIdx := buildSubtree(nodes, aux[:mid], idx, depth+1, binCount, logger)
	rightIdx := buildSubtree(nodes, aux[mid:], idx, depth+1, binCount, logger)

	leftAABB := (*nodes)[leftIdx].aabb()
	rightAABB := (*nodes)[rightIdx].aabb()
	(*nodes)[idx].leftIndex = leftIdx
	(*nodes)[idx].leftAABB = leftAABB
	(*nodes)[idx].rightIndex = rightIdx
	(*nodes)[idx].rightAABB = rightAABB

	return idx
}

// medianSplit is the fallback for a zero-extent centroid AABB (all
// centroids coincide on the split axis) or a degenerate binned-SAH result:
// sort by the primitive's original index and split the count in half.
func medianSplit(aux []auxPrimitive) int {
	sort.Slice(aux, func(i, j int) bool { return aux[i].index < aux[j].index })
	return len(aux) / 2
}

// binnedSAHSplit buckets aux into binCount bins along axis, scores every
// candidate boundary with cost(k) = count_L*area(L) + count_R*area(R), and
// partitions aux in place so left-of-split primitives come first. It
// returns the split position (count of primitives placed left).
func binnedSAHSplit(aux []auxPrimitive, axis int, centroidBox core.AABB, binCount int, logger bvhlog.Logger) int {
	cmin := centroidBox.Min.Component(axis)
	extent := centroidBox.Max.Component(axis) - cmin

	binOf := make([]int, len(aux))
	for i, p := range aux {
		b := int(float64(binCount) * (p.centroid.Component(axis) - cmin) / extent)
		if b < 0 {
			b = 0
		}
		if b >= binCount {
			b = binCount - 1
		}
		binOf[i] = b
	}

	counts := make([]int, binCount)
	boxes := make([]core.AABB, binCount)
	for b := range boxes {
		boxes[b] = core.EmptyAABB()
	}
	for i, p := range aux {
		b := binOf[i]
		counts[b]++
		boxes[b] = boxes[b].Union(p.aabb)
	}

	leftCounts := make([]int, binCount+1)
	leftBoxes := make([]core.AABB, binCount+1)
	leftBoxes[0] = core.EmptyAABB()
	for b := 0; b < binCount; b++ {
		leftCounts[b+1] = leftCounts[b] + counts[b]
		leftBoxes[b+1] = leftBoxes[b].Union(boxes[b])
	}

	rightCounts := make([]int, binCount+1)
	rightBoxes := make([]core.AABB, binCount+1)
	rightBoxes[binCount] = core.EmptyAABB()
	for b := binCount - 1; b >= 0; b-- {
		rightCounts[b] = rightCounts[b+1] + counts[b]
		rightBoxes[b] = rightBoxes[b+1].Union(boxes[b])
	}

	bestK := 1
	bestCost := math.Inf(1)
	for k := 1; k < binCount; k++ {
		cost := float64(leftCounts[k])*leftBoxes[k].SurfaceArea() + float64(rightCounts[k])*rightBoxes[k].SurfaceArea()
		if cost < bestCost {
			bestCost = cost
			bestK = k
		}
	}
	logger.Debugf("binned SAH: axis=%d bins=%d bestK=%d cost=%f", axis, binCount, bestK, bestCost)

	return hoarePartition(aux, binOf, bestK)
}

// hoarePartition reorders aux (and binOf in lockstep) so that every element
// with binOf < bestK precedes every element with binOf >= bestK, and
// returns the split position. Relative order within each side may change;
// this is allowed, primitive identity is preserved via auxPrimitive.index.
func hoarePartition(aux []auxPrimitive, binOf []int, bestK int) int {
	i, j := 0, len(aux)-1
	for i <= j {
		for i <= j && binOf[i] < bestK {
			i++
		}
		for i <= j && binOf[j] >= bestK {
			j--
		}
		if i < j {
			aux[i], aux[j] = aux[j], aux[i]
			binOf[i], binOf[j] = binOf[j], binOf[i]
			i++
			j--
		}
	}
	return i
}

// recomputeDepths recomputes every node's depth field in a single top-down
// pass from the root, per spec.md step 4 of the build algorithm.
func (t *Tree) recomputeDepths() {
	if len(t.nodes) == 0 {
		return
	}
	var walk func(i, depth int)
	walk = func(i, depth int) {
		t.nodes[i].depth = depth
		if t.nodes[i].kind == kindInterior {
			walk(t.nodes[i].leftIndex, depth+1)
			walk(t.nodes[i].rightIndex, depth+1)
		}
	}
	walk(RootIndex, 0)
}
