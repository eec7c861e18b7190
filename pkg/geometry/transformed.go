package geometry

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/material"
	"github.com/df07/go-raytrace-engine/pkg/transform"
)

// Transformed places a child shape in the world through an affine transform.
// Intersection math runs in the child's local frame.
type Transformed struct {
	child        Shape
	xf           transform.Affine
	normalMatrix mgl64.Mat4 // inverse-transpose, carries normals to world space
}

// NewTransformed wraps child with the given transform. The node owns child.
func NewTransformed(child Shape, xf transform.Affine) *Transformed {
	return &Transformed{
		child:        child,
		xf:           xf,
		normalMatrix: xf.NormalMatrix(),
	}
}

// Name returns the child's name
func (tr *Transformed) Name() string { return tr.child.Name() }

// Child returns the wrapped shape
func (tr *Transformed) Child() Shape { return tr.child }

// Transform returns the forward/inverse pair
func (tr *Transformed) Transform() transform.Affine { return tr.xf }

// Hit maps the ray into the local frame, delegates, and maps the hit back.
//
// The local direction is not renormalized, so t has the same value in both
// frames and the interval [tMin, tMax] passes through unchanged.
func (tr *Transformed) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	local := core.NewRay(tr.xf.InversePoint(ray.Origin), tr.xf.InverseVector(ray.Direction))

	if !tr.child.Hit(local, tMin, tMax, rec) {
		return false
	}

	rec.Point = tr.xf.Point(rec.Point)

	// n·d is invariant under the pair (M⁻ᵀn, Md), so the face orientation
	// chosen in the local frame still holds in world space
	rec.Normal = transform.MulVector(tr.normalMatrix, rec.Normal).Normalize()
	return true
}

// BoundingBox transforms the corners of the child's box
func (tr *Transformed) BoundingBox() (core.AABB, bool) {
	box, ok := tr.child.BoundingBox()
	if !ok {
		return core.AABB{}, false
	}

	corners := box.Corners()
	for i := range corners {
		corners[i] = tr.xf.Point(corners[i])
	}
	return core.NewAABBFromPoints(corners[:]...), true
}
