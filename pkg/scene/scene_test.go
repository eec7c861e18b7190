package scene

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/geometry"
	"github.com/df07/go-raytrace-engine/pkg/integrator"
	"github.com/df07/go-raytrace-engine/pkg/lights"
	"github.com/df07/go-raytrace-engine/pkg/material"
)

// newSphereOverPlane builds a unit sphere at the origin cut by the plane y=0,
// lit by a directional light pointing straight down
func newSphereOverPlane(t *testing.T) *Scene {
	t.Helper()
	s := New(DefaultConfig())
	red := s.AddMaterial(material.NewPhong("red", core.NewVec3(0.8, 0.1, 0.1), 0.1, 0.5, 32))
	grey := s.AddMaterial(material.NewPhong("grey", core.NewVec3(0.5, 0.5, 0.5), 0.1, 0, 1))
	s.Add(
		geometry.NewSphere("sphere", core.Vec3{}, 1, red),
		geometry.NewPlane("plane", core.Vec3{}, core.NewVec3(0, 1, 0), grey),
	)
	s.AddLight(lights.NewDirectionalLight(core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)))
	if err := s.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func TestScene_SphereOverPlane(t *testing.T) {
	s := newSphereOverPlane(t)
	ray := core.NewRayTo(core.NewVec3(0, 5, 0), core.Vec3{})

	var rec material.HitRecord
	if !s.Hit(ray, 1e-4, math.Inf(1), &rec) {
		t.Fatal("Expected hit")
	}
	if rec.Name != "sphere" {
		t.Errorf("Expected sphere hit, got %q", rec.Name)
	}
	if math.Abs(rec.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got t=%f", rec.T)
	}
	if !rec.Normal.ApproxEqual(core.NewVec3(0, 1, 0), 1e-9) {
		t.Errorf("Expected normal (0,1,0), got %v", rec.Normal)
	}
}

func TestScene_RemoveSphereRevealsPlane(t *testing.T) {
	s := newSphereOverPlane(t)
	if err := s.Remove("sphere"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !s.Dirty() {
		t.Error("Expected scene to be dirty after removal")
	}
	if err := s.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	var rec material.HitRecord
	if !s.Hit(core.NewRayTo(core.NewVec3(0, 5, 0), core.Vec3{}), 1e-4, math.Inf(1), &rec) {
		t.Fatal("Expected hit")
	}
	if rec.Name != "plane" || math.Abs(rec.T-5) > 1e-9 {
		t.Errorf("Expected plane at t=5, got %q at t=%f", rec.Name, rec.T)
	}

	if err := s.Remove("sphere"); !errors.Is(err, ErrShapeNotFound) {
		t.Errorf("Expected ErrShapeNotFound, got %v", err)
	}
}

func TestScene_HitMatchesList(t *testing.T) {
	s := New(DefaultConfig())
	mat := material.NewPhong("m", core.NewVec3(1, 1, 1), 0.1, 0, 1)
	random := rand.New(rand.NewSource(21))

	var shapes []geometry.Shape
	for i := 0; i < 40; i++ {
		center := core.NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
		shapes = append(shapes, geometry.NewSphere(string(rune('A'+i)), center, 0.3+random.Float64()*0.5, mat))
	}
	shapes = append(shapes, geometry.NewPlane("floor", core.NewVec3(0, -4, 0), core.NewVec3(0, 1, 0), mat))
	s.Add(shapes...)
	if err := s.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	oracle := geometry.NewList("oracle", shapes...)
	for i := 0; i < 1000; i++ {
		origin := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		ray := core.NewRayTo(origin, core.NewVec3(random.Float64()*4-2, random.Float64()*4-2, random.Float64()*4-2))

		var got, want material.HitRecord
		gotHit := s.Hit(ray, 1e-4, math.Inf(1), &got)
		wantHit := oracle.Hit(ray, 1e-4, math.Inf(1), &want)
		if gotHit != wantHit {
			t.Fatalf("ray %d: scene hit=%t, list hit=%t", i, gotHit, wantHit)
		}
		if gotHit && (got.Name != want.Name || math.Abs(got.T-want.T) > 1e-9) {
			t.Errorf("ray %d: scene hit %q at %f, list hit %q at %f", i, got.Name, got.T, want.Name, want.T)
		}
	}
}

func TestScene_BuildOnlyWhenDirty(t *testing.T) {
	s := New(DefaultConfig())
	s.Add(geometry.NewSphere("a", core.Vec3{}, 1, nil))
	if err := s.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	first := s.BVH()

	if err := s.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.BVH() != first {
		t.Error("Expected clean scene to keep its BVH")
	}

	s.Add(geometry.NewSphere("b", core.NewVec3(3, 0, 0), 1, nil))
	if err := s.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.BVH() == first || s.BVH().Len() != 2 {
		t.Error("Expected a rebuilt BVH holding both spheres")
	}
}

func TestScene_EmptySceneMisses(t *testing.T) {
	s := New(DefaultConfig())
	if err := s.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	var rec material.HitRecord
	if s.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 1e-4, math.Inf(1), &rec) {
		t.Error("Expected empty scene to miss")
	}
}

func TestScene_SetLightEnabled(t *testing.T) {
	s := New(DefaultConfig())
	index := s.AddLight(lights.NewAmbientLight(core.NewVec3(1, 1, 1)))

	if err := s.SetLightEnabled(index, false); err != nil {
		t.Fatalf("SetLightEnabled: %v", err)
	}
	if s.Lights()[index].Enabled() {
		t.Error("Expected light to be disabled")
	}

	for _, bad := range []int{-1, 1} {
		if err := s.SetLightEnabled(bad, true); !errors.Is(err, ErrLightIndex) {
			t.Errorf("index %d: expected ErrLightIndex, got %v", bad, err)
		}
	}
}

func TestScene_Materials(t *testing.T) {
	s := New(DefaultConfig())
	red := s.AddMaterial(material.NewPhong("red", core.NewVec3(1, 0, 0), 0.1, 0, 1))

	got, err := s.Material("red")
	if err != nil || got != red {
		t.Errorf("Expected registered material, got %v %v", got, err)
	}
	if _, err := s.Material("missing"); !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("Expected ErrUnknownMaterial, got %v", err)
	}
}

func TestScene_PrimitiveCount(t *testing.T) {
	s, err := NewDefaultScene()
	if err != nil {
		t.Fatalf("NewDefaultScene: %v", err)
	}
	// ground, sphere, globe, egg, log, cone, lamp + 6 pyramid triangles
	if got := s.PrimitiveCount(); got != 13 {
		t.Errorf("Expected 13 primitives, got %d", got)
	}
}

func TestDefaultScene_Builds(t *testing.T) {
	s, err := NewDefaultScene()
	if err != nil {
		t.Fatalf("NewDefaultScene: %v", err)
	}
	if err := s.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	types := map[lights.LightType]bool{}
	for _, l := range s.Lights() {
		types[l.Type()] = true
	}
	for _, want := range []lights.LightType{lights.LightTypePoint, lights.LightTypeSpot, lights.LightTypeDirectional, lights.LightTypeAmbient} {
		if !types[want] {
			t.Errorf("Expected a %s light in the default scene", want)
		}
	}

	// Looking straight down onto the center sphere
	var rec material.HitRecord
	if !s.Hit(core.NewRayTo(core.NewVec3(0, 10, 0), core.Vec3{}), 1e-4, math.Inf(1), &rec) {
		t.Fatal("Expected hit")
	}
	if rec.Name != "sphere" || math.Abs(rec.T-8) > 1e-9 {
		t.Errorf("Expected sphere top at t=8, got %q at t=%f", rec.Name, rec.T)
	}
}

func TestDefaultScene_PointLightReachesSphereTop(t *testing.T) {
	s, err := NewDefaultScene()
	if err != nil {
		t.Fatalf("NewDefaultScene: %v", err)
	}
	if err := s.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	pointIndex := -1
	for i, l := range s.Lights() {
		if l.Type() == lights.LightTypePoint {
			pointIndex = i
			continue
		}
		if err := s.SetLightEnabled(i, false); err != nil {
			t.Fatalf("SetLightEnabled: %v", err)
		}
	}
	if pointIndex < 0 {
		t.Fatal("Expected a point light in the default scene")
	}
	light := s.Lights()[pointIndex]

	ray := core.NewRayTo(core.NewVec3(0, 10, 0), core.Vec3{})
	var rec material.HitRecord
	if !s.Hit(ray, 1e-4, math.Inf(1), &rec) || rec.Name != "sphere" {
		t.Fatalf("Expected to hit the sphere top, got %q", rec.Name)
	}

	// Nothing lies between the sphere top and the light
	config := integrator.DefaultConfig()
	origin := rec.Point.Add(rec.Normal.Multiply(config.ShadowBias))
	var blocker material.HitRecord
	if s.Hit(core.NewRay(origin, light.Direction(rec.Point)), config.TMin, light.Distance(rec.Point)-config.TMin, &blocker) {
		t.Errorf("Expected a clear path to the point light, blocked by %q", blocker.Name)
	}

	phong := integrator.NewPhongIntegrator(config)
	lit := phong.Shade(ray, &rec, s)
	if err := s.SetLightEnabled(pointIndex, false); err != nil {
		t.Fatalf("SetLightEnabled: %v", err)
	}
	dark := phong.Shade(ray, &rec, s)

	// red diffuse 0.8 · N·L 0.47 · attenuated intensity 0.74 adds about 0.28
	if lit.X-dark.X < 0.2 {
		t.Errorf("Expected the point light to brighten the sphere top, got %v lit vs %v unlit", lit, dark)
	}
}

func TestCylinderScene_LeaningPillarsAndTextures(t *testing.T) {
	s, err := NewCylinderScene()
	if err != nil {
		t.Fatalf("NewCylinderScene: %v", err)
	}
	if err := s.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Shear 0.3 over height 1.8 moves each top cap 0.54 toward the middle
	tests := []struct {
		name string
		x    float64
	}{
		{"pillar-left", -0.46},
		{"pillar-right", 0.46},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec material.HitRecord
			if !s.Hit(core.NewRay(core.NewVec3(tt.x, 5, -2.5), core.NewVec3(0, -1, 0)), 1e-4, math.Inf(1), &rec) {
				t.Fatal("Expected hit")
			}
			if rec.Name != tt.name || math.Abs(rec.T-3.2) > 1e-9 {
				t.Errorf("Expected %s top at t=3.2, got %q at t=%f", tt.name, rec.Name, rec.T)
			}
			if !rec.Normal.ApproxEqual(core.NewVec3(0, 1, 0), 1e-9) {
				t.Errorf("Expected cap normal (0,1,0), got %v", rec.Normal)
			}
		})
	}

	// Eight checks of 8 texels run around the 64-texel tower. Hits 45° apart
	// land in the middle of neighbouring checks.
	first := towerColorAt(t, s, math.Pi/8)
	second := towerColorAt(t, s, 3*math.Pi/8)
	if first.ApproxEqual(second, 1e-9) {
		t.Errorf("Expected neighbouring checks to differ, got %v on both", first)
	}
}

// towerColorAt returns the tower's diffuse color at mid height, angle radians
// from +Z toward +X
func towerColorAt(t *testing.T, s *Scene, angle float64) core.Vec3 {
	t.Helper()
	center := core.NewVec3(1.8, 1.1, 0)
	origin := center.Add(core.NewVec3(math.Sin(angle), 0, math.Cos(angle)).Multiply(3))
	var rec material.HitRecord
	if !s.Hit(core.NewRayTo(origin, center), 1e-4, math.Inf(1), &rec) || rec.Name != "tower" {
		t.Fatalf("Expected to hit the tower, got %q", rec.Name)
	}
	if rec.Material.Name != "red-checks" {
		t.Errorf("Expected the checkerboard material, got %q", rec.Material.Name)
	}
	return rec.Material.DiffuseAt(rec.UV, rec.Point)
}

func TestCatalog(t *testing.T) {
	infos := ListScenes()
	if len(infos) != len(builtinScenes) {
		t.Fatalf("Expected %d scenes, got %d", len(builtinScenes), len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].DisplayName > infos[i].DisplayName {
			t.Errorf("Scenes not sorted: %q before %q", infos[i-1].DisplayName, infos[i].DisplayName)
		}
	}

	for _, info := range infos {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Load(info.ID)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if err := s.Build(); err != nil {
				t.Fatalf("Build: %v", err)
			}
			if len(s.Shapes()) == 0 || len(s.Lights()) == 0 {
				t.Error("Expected shapes and lights")
			}
		})
	}

	if _, err := Load("nope"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestOklchToRGB_InRange(t *testing.T) {
	for h := 0.0; h < 360; h += 30 {
		c := oklchToRGB(0.65, 0.25, h)
		if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
			t.Errorf("hue %f: color out of range %v", h, c)
		}
	}
}
