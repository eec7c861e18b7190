package geometry

import (
	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/material"
)

// Epsilon used to reject near-degenerate intersections
const epsilon = 1e-8

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit reports the nearest intersection with t in [tMin, tMax].
	// rec is only written when the method returns true.
	Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool

	// BoundingBox returns false for shapes with no finite bound
	BoundingBox() (core.AABB, bool)

	// Name identifies the shape for picking and diagnostics
	Name() string
}

// surfaceHit is a candidate intersection kept on the stack while a shape
// compares several of its parts (body, caps)
type surfaceHit struct {
	t       float64
	point   core.Vec3
	outward core.Vec3
	uv      core.Vec2
}

// fill writes the candidate into rec and orients its normal against the ray
func (s surfaceHit) fill(ray core.Ray, mat *material.Material, name string, rec *material.HitRecord) {
	rec.T = s.t
	rec.Point = s.point
	rec.UV = s.uv
	rec.Material = mat
	rec.Name = name
	rec.SetFaceNormal(ray, s.outward)
}
