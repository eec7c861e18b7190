// Package transform builds forward/inverse affine matrix pairs used to place
// shapes in a scene. Every constructor produces both matrices analytically so
// that no general 4x4 inversion is needed at scene setup time.
package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-raytrace-engine/pkg/core"
)

// Affine is a forward matrix (local to world) paired with its inverse
// (world to local). Inverse*Forward ≈ I is the constructor's responsibility.
type Affine struct {
	Forward mgl64.Mat4
	Inverse mgl64.Mat4
}

// Identity returns the identity transform
func Identity() Affine {
	return Affine{Forward: mgl64.Ident4(), Inverse: mgl64.Ident4()}
}

// FromMatrices pairs an explicit forward matrix with its inverse.
// The pair is not validated.
func FromMatrices(forward, inverse mgl64.Mat4) Affine {
	return Affine{Forward: forward, Inverse: inverse}
}

// Translate moves by offset
func Translate(offset core.Vec3) Affine {
	return Affine{
		Forward: mgl64.Translate3D(offset.X, offset.Y, offset.Z),
		Inverse: mgl64.Translate3D(-offset.X, -offset.Y, -offset.Z),
	}
}

// RotateX rotates by angle radians about the X axis
func RotateX(angle float64) Affine {
	return Affine{Forward: mgl64.HomogRotate3DX(angle), Inverse: mgl64.HomogRotate3DX(-angle)}
}

// RotateY rotates by angle radians about the Y axis
func RotateY(angle float64) Affine {
	return Affine{Forward: mgl64.HomogRotate3DY(angle), Inverse: mgl64.HomogRotate3DY(-angle)}
}

// RotateZ rotates by angle radians about the Z axis
func RotateZ(angle float64) Affine {
	return Affine{Forward: mgl64.HomogRotate3DZ(angle), Inverse: mgl64.HomogRotate3DZ(-angle)}
}

// RotateAxis rotates by angle radians about an arbitrary axis. The rotation
// is built from a unit quaternion and inverted through its conjugate.
func RotateAxis(axis core.Vec3, angle float64) Affine {
	q := mgl64.QuatRotate(angle, toMgl(axis.Normalize())).Normalize()
	return Affine{Forward: q.Mat4(), Inverse: q.Conjugate().Mat4()}
}

// Scale scales each axis independently. Zero factors produce a singular
// transform, which is not checked.
func Scale(factors core.Vec3) Affine {
	return Affine{
		Forward: mgl64.Scale3D(factors.X, factors.Y, factors.Z),
		Inverse: mgl64.Scale3D(1/factors.X, 1/factors.Y, 1/factors.Z),
	}
}

// Shear builds x' = x + xy*y + xz*z, y' = y + yx*x + yz*z, z' = z + zx*x + zy*y.
//
// The inverse negates the coefficients. This is only a first-order
// approximation: Inverse*Forward deviates from identity by terms quadratic in
// the coefficients, so callers must not rely on exact inversion for large shear.
func Shear(xy, xz, yx, yz, zx, zy float64) Affine {
	return Affine{
		Forward: shearMatrix(xy, xz, yx, yz, zx, zy),
		Inverse: shearMatrix(-xy, -xz, -yx, -yz, -zx, -zy),
	}
}

func shearMatrix(xy, xz, yx, yz, zx, zy float64) mgl64.Mat4 {
	// column-major
	return mgl64.Mat4{
		1, yx, zx, 0,
		xy, 1, zy, 0,
		xz, yz, 1, 0,
		0, 0, 0, 1,
	}
}

// Reflect mirrors space across the plane through point with the given normal.
// A reflection is its own inverse.
func Reflect(point, normal core.Vec3) Affine {
	n := normal.Normalize()
	d := 2 * point.Dot(n)

	m := mgl64.Ident4()
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			m.Set(row, col, m.At(row, col)-2*n.Component(row)*n.Component(col))
		}
	}
	m.Set(0, 3, d*n.X)
	m.Set(1, 3, d*n.Y)
	m.Set(2, 3, d*n.Z)

	return Affine{Forward: m, Inverse: m}
}

// Compose applies scale, then rotate, then translate:
// Forward = T·R·S and Inverse = S⁻¹·R⁻¹·T⁻¹.
func Compose(scale, rotate, translate Affine) Affine {
	return Affine{
		Forward: translate.Forward.Mul4(rotate.Forward).Mul4(scale.Forward),
		Inverse: scale.Inverse.Mul4(rotate.Inverse).Mul4(translate.Inverse),
	}
}

// Then returns the transform that applies a first and next afterwards
func (a Affine) Then(next Affine) Affine {
	return Affine{
		Forward: next.Forward.Mul4(a.Forward),
		Inverse: a.Inverse.Mul4(next.Inverse),
	}
}

// Inverted swaps the forward and inverse matrices
func (a Affine) Inverted() Affine {
	return Affine{Forward: a.Inverse, Inverse: a.Forward}
}

// NormalMatrix returns the inverse-transpose used to carry normals from the
// local frame to the world frame
func (a Affine) NormalMatrix() mgl64.Mat4 {
	return a.Inverse.Transpose()
}

// Point maps a local point to world space
func (a Affine) Point(p core.Vec3) core.Vec3 {
	return MulPoint(a.Forward, p)
}

// Vector maps a local direction to world space, ignoring translation
func (a Affine) Vector(v core.Vec3) core.Vec3 {
	return MulVector(a.Forward, v)
}

// InversePoint maps a world point to the local frame
func (a Affine) InversePoint(p core.Vec3) core.Vec3 {
	return MulPoint(a.Inverse, p)
}

// InverseVector maps a world direction to the local frame, ignoring translation
func (a Affine) InverseVector(v core.Vec3) core.Vec3 {
	return MulVector(a.Inverse, v)
}

// Residual returns the largest absolute deviation of Inverse*Forward from identity
func (a Affine) Residual() float64 {
	product := a.Inverse.Mul4(a.Forward)
	ident := mgl64.Ident4()
	worst := 0.0
	for i := range product {
		worst = math.Max(worst, math.Abs(product[i]-ident[i]))
	}
	return worst
}

// MulPoint multiplies a point (w=1) by m
func MulPoint(m mgl64.Mat4, p core.Vec3) core.Vec3 {
	return fromMgl(m.Mul4x1(toMgl(p).Vec4(1)).Vec3())
}

// MulVector multiplies a direction (w=0) by m
func MulVector(m mgl64.Mat4, v core.Vec3) core.Vec3 {
	return fromMgl(m.Mul4x1(toMgl(v).Vec4(0)).Vec3())
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
