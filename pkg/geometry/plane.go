package geometry

import (
	"math"

	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3 // A point on the plane
	Normal   core.Vec3 // Unit normal
	Material *material.Material
	name     string

	tangent   core.Vec3 // Planar texture axes
	bitangent core.Vec3
}

// NewPlane creates a new plane
func NewPlane(name string, point, normal core.Vec3, mat *material.Material) *Plane {
	n := normal.Normalize()
	u, v := orthonormalBasis(n)
	return &Plane{
		Point:     point,
		Normal:    n,
		Material:  mat,
		name:      name,
		tangent:   u,
		bitangent: v,
	}
}

// Name returns the plane's name
func (p *Plane) Name() string { return p.name }

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel rays never intersect
	if math.Abs(denominator) < epsilon*ray.Direction.Length() {
		return false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return false
	}

	point := ray.At(t)
	local := point.Subtract(p.Point)

	surfaceHit{
		t:       t,
		point:   point,
		outward: p.Normal,
		uv:      core.NewVec2(local.Dot(p.tangent), local.Dot(p.bitangent)),
	}.fill(ray, p.Material, p.name, rec)
	return true
}

// BoundingBox reports that a plane has no finite bound
func (p *Plane) BoundingBox() (core.AABB, bool) {
	return core.AABB{}, false
}
