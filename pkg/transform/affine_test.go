package transform

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-raytrace-engine/pkg/core"
)

const identityTolerance = 1e-9

func randomVec(random *rand.Rand, scale float64) core.Vec3 {
	return core.NewVec3(
		(random.Float64()*2-1)*scale,
		(random.Float64()*2-1)*scale,
		(random.Float64()*2-1)*scale,
	)
}

func randomScale(random *rand.Rand) core.Vec3 {
	// keep factors away from zero so the transform stays well conditioned
	pick := func() float64 {
		s := 0.2 + random.Float64()*4.8
		if random.Intn(2) == 0 {
			return -s
		}
		return s
	}
	return core.NewVec3(pick(), pick(), pick())
}

func assertIdentity(t *testing.T, name string, a Affine) {
	t.Helper()
	product := a.Inverse.Mul4(a.Forward)
	if !product.ApproxEqualThreshold(mgl64.Ident4(), identityTolerance) {
		t.Errorf("%s: inverse*forward is not identity (residual %g)", name, a.Residual())
	}
}

func TestAffine_InverseTimesForwardIsIdentity(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		translation := Translate(randomVec(random, 50))
		rotX := RotateX(random.Float64() * 2 * math.Pi)
		rotY := RotateY(random.Float64() * 2 * math.Pi)
		rotZ := RotateZ(random.Float64() * 2 * math.Pi)
		axis := randomVec(random, 1)
		if axis.Length() < 1e-3 {
			axis = core.NewVec3(0, 1, 0)
		}
		rotAxis := RotateAxis(axis, random.Float64()*2*math.Pi)
		scale := Scale(randomScale(random))
		reflect := Reflect(randomVec(random, 10), randomVec(random, 1).Add(core.NewVec3(0, 0, 2)))

		assertIdentity(t, "translate", translation)
		assertIdentity(t, "rotate x", rotX)
		assertIdentity(t, "rotate y", rotY)
		assertIdentity(t, "rotate z", rotZ)
		assertIdentity(t, "rotate axis", rotAxis)
		assertIdentity(t, "scale", scale)
		assertIdentity(t, "reflect", reflect)
		assertIdentity(t, "compose", Compose(scale, rotAxis, translation))
		assertIdentity(t, "then chain", scale.Then(rotX).Then(reflect).Then(translation))
	}
}

func TestAffine_MatchesGeneralInverse(t *testing.T) {
	random := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		a := Compose(
			Scale(randomScale(random)),
			RotateAxis(core.NewVec3(1, 2, 3), random.Float64()*math.Pi),
			Translate(randomVec(random, 20)),
		)
		if !a.Inverse.ApproxEqualThreshold(a.Forward.Inv(), 1e-9) {
			t.Fatalf("analytic inverse differs from mgl64 Inv():\n%v\n%v", a.Inverse, a.Forward.Inv())
		}
	}
}

func TestAffine_ComposeOrder(t *testing.T) {
	a := Compose(
		Scale(core.NewVec3(2, 2, 2)),
		RotateZ(math.Pi/2),
		Translate(core.NewVec3(10, 0, 0)),
	)

	// (1,0,0) scaled to (2,0,0), rotated to (0,2,0), translated to (10,2,0)
	got := a.Point(core.NewVec3(1, 0, 0))
	if !got.ApproxEqual(core.NewVec3(10, 2, 0), 1e-12) {
		t.Errorf("Expected (10,2,0), got %v", got)
	}

	back := a.InversePoint(got)
	if !back.ApproxEqual(core.NewVec3(1, 0, 0), 1e-12) {
		t.Errorf("Expected round trip to (1,0,0), got %v", back)
	}

	// directions ignore translation
	dir := a.Vector(core.NewVec3(1, 0, 0))
	if !dir.ApproxEqual(core.NewVec3(0, 2, 0), 1e-12) {
		t.Errorf("Expected direction (0,2,0), got %v", dir)
	}
}

func TestAffine_RotateAxisMatchesPrincipalRotation(t *testing.T) {
	for _, angle := range []float64{0.1, 1.0, math.Pi / 2, 2.5} {
		quat := RotateAxis(core.NewVec3(0, 0, 3), angle)
		principal := RotateZ(angle)
		if !quat.Forward.ApproxEqualThreshold(principal.Forward, 1e-12) {
			t.Errorf("angle %f: quaternion rotation differs from RotateZ", angle)
		}
	}
}

func TestAffine_Reflect(t *testing.T) {
	// mirror across the plane y = 1
	a := Reflect(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))

	got := a.Point(core.NewVec3(3, 4, 5))
	if !got.ApproxEqual(core.NewVec3(3, -2, 5), 1e-12) {
		t.Errorf("Expected (3,-2,5), got %v", got)
	}

	onPlane := a.Point(core.NewVec3(-7, 1, 2))
	if !onPlane.ApproxEqual(core.NewVec3(-7, 1, 2), 1e-12) {
		t.Errorf("Points on the mirror plane must stay fixed, got %v", onPlane)
	}
}

func TestAffine_ShearInverseIsApproximate(t *testing.T) {
	small := Shear(1e-4, 0, 0, 0, 0, 0)
	if small.Residual() > 1e-12 {
		t.Errorf("single-coefficient shear should invert exactly, residual %g", small.Residual())
	}

	coupled := Shear(1e-3, 0, 1e-3, 0, 0, 0)
	if r := coupled.Residual(); r > 1e-5 {
		t.Errorf("small coupled shear residual should be second order, got %g", r)
	}

	large := Shear(0.8, 0, 0.8, 0, 0, 0)
	if r := large.Residual(); r < 0.1 {
		t.Errorf("large coupled shear is expected to invert only approximately, residual %g", r)
	}

	p := core.NewVec3(1, 2, 3)
	sheared := Shear(0.5, 0, 0, 0, 0, 0).Point(p)
	if !sheared.ApproxEqual(core.NewVec3(2, 2, 3), 1e-12) {
		t.Errorf("Expected x' = x + 0.5y, got %v", sheared)
	}
}

func TestAffine_NormalMatrixUnderNonUniformScale(t *testing.T) {
	a := Scale(core.NewVec3(2, 1, 1))

	// The 45° normal of the plane x + y = 0 in local space
	normal := core.NewVec3(1, 1, 0).Normalize()
	tangent := core.NewVec3(1, -1, 0)

	worldNormal := MulVector(a.NormalMatrix(), normal)
	worldTangent := a.Vector(tangent)

	if d := worldNormal.Dot(worldTangent); math.Abs(d) > 1e-12 {
		t.Errorf("transformed normal must stay perpendicular to transformed surface, dot=%g", d)
	}
}
