package geometry

import (
	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/material"
)

// Cylinder represents a finite cylinder standing on Base and extending Height along Axis
type Cylinder struct {
	Base     core.Vec3
	Axis     core.Vec3 // Unit vector from base to top
	Radius   float64
	Height   float64
	Capped   bool // Whether the circular ends are closed
	Material *material.Material
	name     string
}

// NewCylinder creates a new cylinder
func NewCylinder(name string, base, axis core.Vec3, radius, height float64, capped bool, mat *material.Material) *Cylinder {
	return &Cylinder{
		Base:     base,
		Axis:     axis.Normalize(),
		Radius:   radius,
		Height:   height,
		Capped:   capped,
		Material: mat,
		name:     name,
	}
}

// Name returns the cylinder's name
func (c *Cylinder) Name() string { return c.name }

// Top returns the center of the top end
func (c *Cylinder) Top() core.Vec3 {
	return c.Base.Add(c.Axis.Multiply(c.Height))
}

// BoundingBox returns a conservative box: the axis segment grown by the radius on every axis
func (c *Cylinder) BoundingBox() (core.AABB, bool) {
	return core.NewAABBFromPoints(c.Base, c.Top()).Expand(c.Radius), true
}

// Hit tests if a ray intersects with the cylinder body and, if capped, its ends
func (c *Cylinder) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	var best surfaceHit
	found := false
	closest := tMax

	if body, ok := c.hitBody(ray, tMin, closest); ok {
		best, found, closest = body, true, body.t
	}

	if c.Capped {
		ends := [2]struct {
			center core.Vec3
			normal core.Vec3
		}{
			{c.Base, c.Axis.Negate()},
			{c.Top(), c.Axis},
		}
		for _, end := range ends {
			if t, point, ok := hitDisc(ray, end.center, end.normal, c.Radius, tMin, closest); ok {
				best = surfaceHit{
					t:       t,
					point:   point,
					outward: end.normal,
					uv:      discUV(point, end.center, c.Axis, c.Radius),
				}
				found, closest = true, t
			}
		}
	}

	if !found {
		return false
	}
	best.fill(ray, c.Material, c.name, rec)
	return true
}

// hitBody intersects the curved side
func (c *Cylinder) hitBody(ray core.Ray, tMin, tMax float64) (surfaceHit, bool) {
	delta := ray.Origin.Subtract(c.Base)
	dv := ray.Direction.Dot(c.Axis)
	deltaV := delta.Dot(c.Axis)

	// |D|² - (D·V)² vanishes for rays parallel to the axis
	a := ray.Direction.LengthSquared() - dv*dv
	b := 2.0 * (delta.Dot(ray.Direction) - deltaV*dv)
	cc := delta.LengthSquared() - deltaV*deltaV - c.Radius*c.Radius

	t0, t1, ok := solveQuadratic(a, b, cc, ray.Direction.LengthSquared())
	if !ok {
		return surfaceHit{}, false
	}

	for _, t := range [2]float64{t0, t1} {
		if t < tMin || t > tMax {
			continue
		}
		point := ray.At(t)
		h := point.Subtract(c.Base).Dot(c.Axis)
		if h < 0 || h > c.Height {
			continue
		}
		radial := point.Subtract(c.Base.Add(c.Axis.Multiply(h)))
		return surfaceHit{
			t:       t,
			point:   point,
			outward: radial.Normalize(),
			uv:      cylindricalUV(radial, c.Axis, h, c.Height),
		}, true
	}
	return surfaceHit{}, false
}
