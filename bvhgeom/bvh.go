package bvhgeom

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// leafSize is the maximum primitive count a leaf may hold even when the
	// SAH estimate favors leafing; above it we always recurse.
	leafSize = 24
	// traversalCost is the relative cost of descending one more interior
	// node in the SAH cost model, versus testing one more primitive.
	traversalCost = 10.0
	// sahBuckets is the number of SAH evaluation buckets along the split
	// axis.
	sahBuckets = 12
)

// Node is a flattened BVH node. A leaf has NPrims > 0 and Next is the index
// of its first primitive (primitives [Next, Next+NPrims) are contiguous
// after Build's reordering). An interior node has NPrims == 0; its first
// child is at the node's own index + 1, and its second child is at Next.
type Node struct {
	Bounds Bounds
	NPrims int32
	Next   int32
	Axis   uint8
}

// IsLeaf reports whether n is a leaf node.
func (n Node) IsLeaf() bool { return n.NPrims > 0 }

// BVH is a flat, read-only bounding-volume hierarchy over a triangle list.
// It is built once after scene assembly and never mutated afterward.
type BVH struct {
	Nodes     []Node
	Triangles []Triangle
}

type primInfo struct {
	index    int
	bounds   Bounds
	centroid float64 // not set or read; Build keeps triangle centroids in its separate centroids slice
}

// Build constructs a BVH over tris using a recursive surface-area-heuristic
// split along the longest centroid-extent axis, bucketed into 12 buckets.
// Triangles (and any parallel per-triangle arrays the caller owns) must be
// reordered according to the returned permutation: permutation[i] is the
// original index of the triangle now stored at position i.
func Build(tris []Triangle) (*BVH, []int) {
	n := len(tris)
	infos := make([]primInfo, n)
	centroids := make([]r3.Vec, n)
	for i, t := range tris {
		infos[i] = primInfo{index: i, bounds: t.Bounds()}
		centroids[i] = t.Centroid()
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	b := &BVH{}
	reordered := make([]Triangle, 0, n)
	permutation := make([]int, 0, n)

	var recurse func(idxs []int) int
	recurse = func(idxs []int) int {
		nodeIdx := len(b.Nodes)
		b.Nodes = append(b.Nodes, Node{})

		bounds := EmptyBounds()
		centroidBounds := EmptyBounds()
		for _, i := range idxs {
			bounds.ExtendBounds(infos[i].bounds)
			centroidBounds.ExtendPoint(centroids[i])
		}

		makeLeaf := func() {
			start := len(reordered)
			for _, i := range idxs {
				reordered = append(reordered, tris[i])
				permutation = append(permutation, i)
			}
			b.Nodes[nodeIdx] = Node{Bounds: bounds, NPrims: int32(len(idxs)), Next: int32(start)}
		}

		if len(idxs) <= 4 {
			if len(idxs) <= 1 {
				makeLeaf()
				return nodeIdx
			}
			axis := centroidBounds.LongestAxis()
			sort.Slice(idxs, func(a, bb int) bool {
				return AxisValue(centroids[idxs[a]], axis) < AxisValue(centroids[idxs[bb]], axis)
			})
			mid := len(idxs) / 2
			left := append([]int(nil), idxs[:mid]...)
			right := append([]int(nil), idxs[mid:]...)
			b.Nodes[nodeIdx] = Node{Bounds: bounds, Axis: uint8(axis)}
			recurse(left)
			nextIdx := len(b.Nodes)
			recurse(right)
			b.Nodes[nodeIdx].Next = int32(nextIdx)
			return nodeIdx
		}

		axis := centroidBounds.LongestAxis()
		extent := centroidBounds.Extent()
		axisExtent := AxisValue(extent, axis)
		if axisExtent <= 0 {
			// All centroids coincide on this axis: fall back to a median
			// split, since bucketing would degenerate.
			sort.Slice(idxs, func(a, bb int) bool {
				return AxisValue(centroids[idxs[a]], axis) < AxisValue(centroids[idxs[bb]], axis)
			})
			mid := len(idxs) / 2
			left := append([]int(nil), idxs[:mid]...)
			right := append([]int(nil), idxs[mid:]...)
			b.Nodes[nodeIdx] = Node{Bounds: bounds, Axis: uint8(axis)}
			recurse(left)
			nextIdx := len(b.Nodes)
			recurse(right)
			b.Nodes[nodeIdx].Next = int32(nextIdx)
			return nodeIdx
		}

		type bucket struct {
			count  int
			bounds Bounds
		}
		buckets := make([]bucket, sahBuckets)
		for i := range buckets {
			buckets[i].bounds = EmptyBounds()
		}
		bucketOf := func(i int) int {
			cmin := AxisValue(centroidBounds.Min, axis)
			off := (AxisValue(centroids[i], axis) - cmin) / axisExtent
			bi := int(off * float64(sahBuckets))
			if bi < 0 {
				bi = 0
			}
			if bi >= sahBuckets {
				bi = sahBuckets - 1
			}
			return bi
		}
		for _, i := range idxs {
			bi := bucketOf(i)
			buckets[bi].count++
			buckets[bi].bounds.ExtendBounds(infos[i].bounds)
		}

		parentSA := bounds.SurfaceArea()
		bestCost := -1.0
		bestSplit := -1
		for split := 0; split < sahBuckets-1; split++ {
			lb, rb := EmptyBounds(), EmptyBounds()
			lc, rc := 0, 0
			for i := 0; i <= split; i++ {
				lb.ExtendBounds(buckets[i].bounds)
				lc += buckets[i].count
			}
			for i := split + 1; i < sahBuckets; i++ {
				rb.ExtendBounds(buckets[i].bounds)
				rc += buckets[i].count
			}
			if lc == 0 || rc == 0 {
				continue
			}
			cost := traversalCost + (float64(lc)*lb.SurfaceArea()+float64(rc)*rb.SurfaceArea())/parentSA
			if bestSplit < 0 || cost < bestCost {
				bestCost = cost
				bestSplit = split
			}
		}

		leafCost := float64(len(idxs))
		if bestSplit < 0 || (bestCost > leafCost && len(idxs) <= leafSize) {
			makeLeaf()
			return nodeIdx
		}
		if bestSplit < 0 {
			// No viable split found (shouldn't happen with axisExtent>0 and
			// >4 prims) but guard against an infinite loop by leafing.
			makeLeaf()
			return nodeIdx
		}

		var left, right []int
		for _, i := range idxs {
			if bucketOf(i) <= bestSplit {
				left = append(left, i)
			} else {
				right = append(right, i)
			}
		}
		if len(left) == 0 || len(right) == 0 {
			// Degenerate bucketing: fall back to a median split rather than
			// recursing forever on an unsplit set.
			sort.Slice(idxs, func(a, bb int) bool {
				return AxisValue(centroids[idxs[a]], axis) < AxisValue(centroids[idxs[bb]], axis)
			})
			mid := len(idxs) / 2
			left = append([]int(nil), idxs[:mid]...)
			right = append([]int(nil), idxs[mid:]...)
		}

		b.Nodes[nodeIdx] = Node{Bounds: bounds, Axis: uint8(axis)}
		recurse(left)
		nextIdx := len(b.Nodes)
		recurse(right)
		b.Nodes[nodeIdx].Next = int32(nextIdx)
		return nodeIdx
	}

	if n > 0 {
		recurse(order)
	}
	b.Triangles = reordered
	return b, permutation
}
