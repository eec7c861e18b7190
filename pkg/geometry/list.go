package geometry

import (
	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/material"
)

// List is an ordered collection of shapes searched by linear scan.
// It holds shapes that cannot enter a BVH and serves as the reference
// nearest-hit oracle.
type List struct {
	shapes []Shape
	name   string
}

// NewList creates a list from the given shapes
func NewList(name string, shapes ...Shape) *List {
	return &List{shapes: append([]Shape(nil), shapes...), name: name}
}

// Name returns the list name
func (l *List) Name() string { return l.name }

// Add appends a shape
func (l *List) Add(shape Shape) {
	l.shapes = append(l.shapes, shape)
}

// Shapes returns the shapes in insertion order
func (l *List) Shapes() []Shape {
	return l.shapes
}

// Len returns the number of shapes
func (l *List) Len() int {
	return len(l.shapes)
}

// Hit returns the nearest hit among all shapes
func (l *List) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	hitAnything := false
	closestSoFar := tMax

	for _, shape := range l.shapes {
		if shape.Hit(ray, tMin, closestSoFar, rec) {
			hitAnything = true
			closestSoFar = rec.T
		}
	}

	return hitAnything
}

// BoundingBox unions the members' boxes. An empty list or one containing an
// unbounded shape has no bound.
func (l *List) BoundingBox() (core.AABB, bool) {
	if len(l.shapes) == 0 {
		return core.AABB{}, false
	}

	box := core.EmptyAABB()
	for _, shape := range l.shapes {
		b, ok := shape.BoundingBox()
		if !ok {
			return core.AABB{}, false
		}
		box = core.SurroundingBox(box, b)
	}
	return box, true
}
