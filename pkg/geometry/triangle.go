package geometry

import (
	"math"

	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/material"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   *material.Material
	name       string

	// Cached values
	edge1, edge2 core.Vec3
	edgeScale    float64 // |edge1|·|edge2|
	normal       core.Vec3
	bbox         core.AABB
	degenerate   bool // zero area, never hit
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(name string, v0, v1, v2 core.Vec3, mat *material.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
		name:     name,
		edge1:    v1.Subtract(v0),
		edge2:    v2.Subtract(v0),
		bbox:     core.NewAABBFromPoints(v0, v1, v2).Pad(1e-4),
	}

	t.edgeScale = t.edge1.Length() * t.edge2.Length()
	cross := t.edge1.Cross(t.edge2)
	t.degenerate = cross.Length() <= epsilon*t.edgeScale
	t.normal = cross.Normalize()
	return t
}

// Name returns the triangle's name
func (t *Triangle) Name() string { return t.name }

// Normal returns the triangle's face normal (zero for degenerate triangles)
func (t *Triangle) Normal() core.Vec3 { return t.normal }

// IsDegenerate reports whether the triangle has zero area
func (t *Triangle) IsDegenerate() bool { return t.degenerate }

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	if t.degenerate {
		return false
	}

	h := ray.Direction.Cross(t.edge2)
	a := t.edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if math.Abs(a) < epsilon*t.edgeScale*ray.Direction.Length() {
		return false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false
	}

	q := s.Cross(t.edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false
	}

	tHit := f * t.edge2.Dot(q)
	if tHit < tMin || tHit > tMax {
		return false
	}

	surfaceHit{
		t:       tHit,
		point:   ray.At(tHit),
		outward: t.normal,
		uv:      core.NewVec2(u, v),
	}.fill(ray, t.Material, t.name, rec)
	return true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() (core.AABB, bool) {
	return t.bbox, true
}
