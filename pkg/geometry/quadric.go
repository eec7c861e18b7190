package geometry

import (
	"math"

	"github.com/df07/go-raytrace-engine/pkg/core"
)

// solveQuadratic returns the real roots of a*t² + b*t + c = 0 in ascending
// order. A vanishing leading coefficient falls back to the linear root.
// dirLengthSquared is |D|² of the ray the coefficients came from; a and b are
// compared against it so the tests do not depend on the ray's scale.
func solveQuadratic(a, b, c, dirLengthSquared float64) (t0, t1 float64, ok bool) {
	if math.Abs(a) < epsilon*dirLengthSquared {
		if math.Abs(b) < epsilon*math.Sqrt(dirLengthSquared) {
			return 0, 0, false
		}
		t := -c / b
		return t, t, true
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	t0 = (-b - sqrtD) / (2 * a)
	t1 = (-b + sqrtD) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}

// orthonormalBasis returns two unit vectors perpendicular to axis and to each other
func orthonormalBasis(axis core.Vec3) (u, v core.Vec3) {
	helper := core.NewVec3(1, 0, 0)
	if math.Abs(axis.X) > 0.9 {
		helper = core.NewVec3(0, 1, 0)
	}
	u = helper.Cross(axis).Normalize()
	v = axis.Cross(u)
	return u, v
}

// hitDisc intersects a ray with a filled circle
func hitDisc(ray core.Ray, center, normal core.Vec3, radius, tMin, tMax float64) (float64, core.Vec3, bool) {
	denom := ray.Direction.Dot(normal)
	if math.Abs(denom) < epsilon*ray.Direction.Length() {
		return 0, core.Vec3{}, false
	}

	t := center.Subtract(ray.Origin).Dot(normal) / denom
	if t < tMin || t > tMax {
		return 0, core.Vec3{}, false
	}

	point := ray.At(t)
	if point.Subtract(center).LengthSquared() > radius*radius {
		return 0, core.Vec3{}, false
	}
	return t, point, true
}

// discUV projects a point on a disc onto [0,1]² texture space
func discUV(point, center, axis core.Vec3, radius float64) core.Vec2 {
	bu, bv := orthonormalBasis(axis)
	local := point.Subtract(center)
	return core.NewVec2(
		0.5+local.Dot(bu)/(2*radius),
		0.5+local.Dot(bv)/(2*radius),
	)
}

// cylindricalUV maps the angle around axis to u and the normalized height to v
func cylindricalUV(radial, axis core.Vec3, h, height float64) core.Vec2 {
	bu, bv := orthonormalBasis(axis)
	phi := math.Atan2(radial.Dot(bv), radial.Dot(bu))
	return core.NewVec2((phi+math.Pi)/(2*math.Pi), h/height)
}
