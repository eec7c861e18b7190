package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/material"
)

// Cone represents a finite cone opening from Apex along Axis
type Cone struct {
	Apex      core.Vec3
	Axis      core.Vec3 // Unit vector from apex towards the base
	HalfAngle float64   // Radians between the axis and the surface
	Height    float64   // Distance from apex to base along the axis
	Capped    bool      // Whether the base is closed
	Material  *material.Material
	name      string

	// Cached derived values
	tan2       float64 // tan²(HalfAngle)
	baseRadius float64
}

// NewCone creates a new cone
func NewCone(name string, apex, axis core.Vec3, halfAngle, height float64, capped bool, mat *material.Material) (*Cone, error) {
	if halfAngle <= 0 || halfAngle >= math.Pi/2 {
		return nil, fmt.Errorf("cone %q: half angle must be in (0, π/2), got %f", name, halfAngle)
	}
	if height <= 0 {
		return nil, fmt.Errorf("cone %q: height must be positive, got %f", name, height)
	}
	if axis.LengthSquared() == 0 {
		return nil, fmt.Errorf("cone %q: axis must be non-zero", name)
	}

	tan := math.Tan(halfAngle)
	return &Cone{
		Apex:       apex,
		Axis:       axis.Normalize(),
		HalfAngle:  halfAngle,
		Height:     height,
		Capped:     capped,
		Material:   mat,
		name:       name,
		tan2:       tan * tan,
		baseRadius: height * tan,
	}, nil
}

// Name returns the cone's name
func (c *Cone) Name() string { return c.name }

// BaseCenter returns the center of the base disc
func (c *Cone) BaseCenter() core.Vec3 {
	return c.Apex.Add(c.Axis.Multiply(c.Height))
}

// BaseRadius returns the radius of the base disc
func (c *Cone) BaseRadius() float64 {
	return c.baseRadius
}

// BoundingBox returns a conservative box: apex and base center grown by the base radius
func (c *Cone) BoundingBox() (core.AABB, bool) {
	return core.NewAABBFromPoints(c.Apex, c.BaseCenter()).Expand(c.baseRadius), true
}

// Hit tests if a ray intersects with the cone body and, if capped, its base
func (c *Cone) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	best, found := c.hitBody(ray, tMin, tMax)
	closest := tMax
	if found {
		closest = best.t
	}

	if c.Capped {
		center := c.BaseCenter()
		if t, point, ok := hitDisc(ray, center, c.Axis, c.baseRadius, tMin, closest); ok {
			best = surfaceHit{
				t:       t,
				point:   point,
				outward: c.Axis,
				uv:      discUV(point, center, c.Axis, c.baseRadius),
			}
			found = true
		}
	}

	if !found {
		return false
	}
	best.fill(ray, c.Material, c.name, rec)
	return true
}

// hitBody intersects the curved surface between apex and base
func (c *Cone) hitBody(ray core.Ray, tMin, tMax float64) (surfaceHit, bool) {
	co := ray.Origin.Subtract(c.Apex)
	dv := ray.Direction.Dot(c.Axis)
	cov := co.Dot(c.Axis)
	k := 1 + c.tan2

	// The leading coefficient vanishes for rays parallel to a surface line;
	// solveQuadratic then returns the single linear root.
	a := ray.Direction.LengthSquared() - k*dv*dv
	b := 2.0 * (ray.Direction.Dot(co) - k*dv*cov)
	cc := co.LengthSquared() - k*cov*cov

	t0, t1, ok := solveQuadratic(a, b, cc, ray.Direction.LengthSquared())
	if !ok {
		return surfaceHit{}, false
	}

	for _, t := range [2]float64{t0, t1} {
		if t < tMin || t > tMax {
			continue
		}
		point := ray.At(t)
		// h < 0 is the mirrored nappe behind the apex
		h := point.Subtract(c.Apex).Dot(c.Axis)
		if h < 0 || h > c.Height {
			continue
		}

		radial := point.Subtract(c.Apex.Add(c.Axis.Multiply(h)))
		outward := radial.Subtract(c.Axis.Multiply(c.tan2 * h)).Normalize()
		if outward.LengthSquared() == 0 {
			outward = c.Axis.Negate()
		}

		return surfaceHit{
			t:       t,
			point:   point,
			outward: outward,
			uv:      cylindricalUV(radial, c.Axis, h, c.Height),
		}, true
	}
	return surfaceHit{}, false
}
