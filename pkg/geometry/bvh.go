package geometry

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/material"
)

// BVHNode is a node in the Bounding Volume Hierarchy. A node holding a single
// shape stores it as both children.
type BVHNode struct {
	Box   core.AABB
	Left  Shape
	Right Shape
	leaf  bool
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root  *BVHNode
	count int
}

// NewBVH constructs a BVH over bounded shapes.
//
// The split axis of every node is drawn from random rather than from the
// shapes' extents. This keeps construction cheap at the cost of tree quality.
func NewBVH(shapes []Shape, random *rand.Rand) (*BVH, error) {
	if len(shapes) == 0 {
		return &BVH{}, nil
	}

	for _, shape := range shapes {
		if _, ok := shape.BoundingBox(); !ok {
			return nil, fmt.Errorf("bvh: shape %q has no bounding box", shape.Name())
		}
	}

	// Sorting reorders the slice, keep the caller's copy intact
	work := make([]Shape, len(shapes))
	copy(work, shapes)

	return &BVH{
		Root:  buildBVH(work, 0, len(work), random),
		count: len(work),
	}, nil
}

// buildBVH recursively partitions shapes[start:end]
func buildBVH(shapes []Shape, start, end int, random *rand.Rand) *BVHNode {
	axis := random.Intn(3)
	span := end - start
	node := &BVHNode{}

	switch span {
	case 1:
		node.Left, node.Right = shapes[start], shapes[start]
		node.leaf = true
	case 2:
		if boxMin(shapes[start+1], axis) < boxMin(shapes[start], axis) {
			node.Left, node.Right = shapes[start+1], shapes[start]
		} else {
			node.Left, node.Right = shapes[start], shapes[start+1]
		}
	default:
		sortShapesByAxis(shapes[start:end], axis)
		mid := start + span/2
		node.Left = buildBVH(shapes, start, mid, random)
		node.Right = buildBVH(shapes, mid, end, random)
	}

	node.Box = enclosingBox(node.Left, node.Right)
	return node
}

// enclosingBox unions the children's boxes, skipping a boundless child
func enclosingBox(left, right Shape) core.AABB {
	leftBox, leftOK := left.BoundingBox()
	rightBox, rightOK := right.BoundingBox()

	switch {
	case leftOK && rightOK:
		return core.SurroundingBox(leftBox, rightBox)
	case leftOK:
		return leftBox
	case rightOK:
		return rightBox
	default:
		return core.EmptyAABB()
	}
}

// boxMin returns the minimum corner of a shape's box along axis
func boxMin(shape Shape, axis int) float64 {
	box, _ := shape.BoundingBox()
	return box.Min.Component(axis)
}

// sortShapesByAxis sorts shapes by the minimum coordinate of their boxes along axis
func sortShapesByAxis(shapes []Shape, axis int) {
	sort.Slice(shapes, func(i, j int) bool {
		return boxMin(shapes[i], axis) < boxMin(shapes[j], axis)
	})
}

// Name identifies BVH nodes in diagnostics
func (n *BVHNode) Name() string { return "bvh" }

// BoundingBox returns the box enclosing both subtrees
func (n *BVHNode) BoundingBox() (core.AABB, bool) {
	return n.Box, true
}

// Hit tests the left subtree, then the right subtree limited to the left's hit distance
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	if !n.Box.Hit(ray, tMin, tMax) {
		return false
	}

	hitLeft := n.Left.Hit(ray, tMin, tMax, rec)
	if n.leaf {
		return hitLeft
	}

	if hitLeft {
		tMax = rec.T
	}
	hitRight := n.Right.Hit(ray, tMin, tMax, rec)

	return hitLeft || hitRight
}

// Hit tests if a ray intersects any shape in the BVH
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	if bvh.Root == nil {
		return false
	}
	return bvh.Root.Hit(ray, tMin, tMax, rec)
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() (core.AABB, bool) {
	if bvh.Root == nil {
		return core.AABB{}, false
	}
	return bvh.Root.Box, true
}

// Name identifies the hierarchy in diagnostics
func (bvh *BVH) Name() string { return "bvh" }

// Len returns the number of shapes in the hierarchy
func (bvh *BVH) Len() int { return bvh.count }

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	TotalNodes  int
	LeafNodes   int
	MaxDepth    int
	TotalShapes int
}

// Stats walks the hierarchy and returns statistics about its structure
func (bvh *BVH) Stats() BVHStats {
	var stats BVHStats
	if bvh.Root != nil {
		collectStats(bvh.Root, 0, &stats)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	if node.leaf {
		stats.LeafNodes++
		stats.TotalShapes++
		return
	}

	for _, child := range [2]Shape{node.Left, node.Right} {
		if inner, ok := child.(*BVHNode); ok {
			collectStats(inner, depth+1, stats)
		} else {
			stats.TotalShapes++
		}
	}
}
