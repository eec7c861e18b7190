package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/geometry"
	"github.com/df07/go-raytrace-engine/pkg/lights"
	"github.com/df07/go-raytrace-engine/pkg/material"
)

// testWorld is a minimal World backed by a linear shape list
type testWorld struct {
	*geometry.List
	lights []lights.Light
	top    core.Vec3
	bottom core.Vec3
}

func (w *testWorld) Lights() []lights.Light { return w.lights }

func (w *testWorld) BackgroundColors() (core.Vec3, core.Vec3) { return w.top, w.bottom }

func newTestWorld(shapes []geometry.Shape, ls ...lights.Light) *testWorld {
	return &testWorld{
		List:   geometry.NewList("world", shapes...),
		lights: ls,
		top:    core.NewVec3(0.5, 0.7, 1.0),
		bottom: core.NewVec3(1, 1, 1),
	}
}

var (
	grey       = material.NewPhong("grey", core.NewVec3(0.5, 0.5, 0.5), 0.1, 0.5, 32)
	downRay    = core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	whiteLight = core.NewVec3(1, 1, 1)
)

func ground() geometry.Shape {
	return geometry.NewPlane("ground", core.Vec3{}, core.NewVec3(0, 1, 0), grey)
}

func assertColor(t *testing.T, expected, got core.Vec3) {
	t.Helper()
	if !got.ApproxEqual(expected, 1e-9) {
		t.Errorf("Expected color %v, got %v", expected, got)
	}
}

func TestPhong_UnobstructedPointLight(t *testing.T) {
	light := lights.NewPointLight(core.NewVec3(0, 4, 0), whiteLight, lights.NoAttenuation)
	world := newTestWorld([]geometry.Shape{ground()}, light)

	// ambient 0.1·0.5 + diffuse 0.5·1 + specular 0.5·1
	got := NewPhongIntegrator(DefaultConfig()).RayColor(downRay, world)
	assertColor(t, core.NewVec3(1.05, 1.05, 1.05), got)
}

func TestPhong_BlockerCastsShadow(t *testing.T) {
	light := lights.NewPointLight(core.NewVec3(0, 4, 0), whiteLight, lights.NoAttenuation)
	blocker := geometry.NewSphere("blocker", core.NewVec3(0, 2.5, 0), 0.5, grey)
	world := newTestWorld([]geometry.Shape{ground(), blocker}, light)

	// The camera ray starts below the blocker, so it still sees the ground
	got := NewPhongIntegrator(DefaultConfig()).RayColor(downRay, world)
	assertColor(t, core.NewVec3(0.05, 0.05, 0.05), got)
}

func TestPhong_BlockerBeyondLightDoesNotShadow(t *testing.T) {
	light := lights.NewPointLight(core.NewVec3(0, 4, 0), whiteLight, lights.NoAttenuation)
	above := geometry.NewSphere("above", core.NewVec3(0, 6, 0), 0.5, grey)
	world := newTestWorld([]geometry.Shape{ground(), above}, light)

	got := NewPhongIntegrator(DefaultConfig()).RayColor(downRay, world)
	assertColor(t, core.NewVec3(1.05, 1.05, 1.05), got)
}

func TestPhong_DirectionalLightShadow(t *testing.T) {
	sun := lights.NewDirectionalLight(core.NewVec3(0, -1, 0), whiteLight)
	cloud := geometry.NewSphere("cloud", core.NewVec3(0, 1000, 0), 10, grey)

	clear := NewPhongIntegrator(DefaultConfig()).RayColor(downRay, newTestWorld([]geometry.Shape{ground()}, sun))
	assertColor(t, core.NewVec3(1.05, 1.05, 1.05), clear)

	shadowed := NewPhongIntegrator(DefaultConfig()).RayColor(downRay, newTestWorld([]geometry.Shape{ground(), cloud}, sun))
	assertColor(t, core.NewVec3(0.05, 0.05, 0.05), shadowed)
}

func TestPhong_NoLights(t *testing.T) {
	glowing := &material.Material{
		Name:     "glow",
		Diffuse:  material.NewSolidColor(core.NewVec3(0.5, 0.5, 0.5)),
		Ambient:  0.2,
		Emission: core.NewVec3(0.1, 0, 0),
	}
	plane := geometry.NewPlane("glow", core.Vec3{}, core.NewVec3(0, 1, 0), glowing)
	world := newTestWorld([]geometry.Shape{plane})

	got := NewPhongIntegrator(DefaultConfig()).RayColor(downRay, world)
	assertColor(t, core.NewVec3(0.2, 0.1, 0.1), got)
}

func TestPhong_LightBelowSurface(t *testing.T) {
	light := lights.NewPointLight(core.NewVec3(0, -4, 0), whiteLight, lights.NoAttenuation)
	world := newTestWorld([]geometry.Shape{ground()}, light)

	got := NewPhongIntegrator(DefaultConfig()).RayColor(downRay, world)
	assertColor(t, core.NewVec3(0.05, 0.05, 0.05), got)
}

func TestPhong_DisabledLight(t *testing.T) {
	light := lights.NewPointLight(core.NewVec3(0, 4, 0), whiteLight, lights.NoAttenuation)
	light.SetEnabled(false)
	world := newTestWorld([]geometry.Shape{ground()}, light)

	got := NewPhongIntegrator(DefaultConfig()).RayColor(downRay, world)
	assertColor(t, core.NewVec3(0.05, 0.05, 0.05), got)
}

func TestPhong_AmbientLightIgnoresBlockers(t *testing.T) {
	ambient := lights.NewAmbientLight(core.NewVec3(1, 0.5, 0))
	blocker := geometry.NewSphere("blocker", core.NewVec3(0, 2.5, 0), 0.5, grey)
	world := newTestWorld([]geometry.Shape{ground(), blocker}, ambient)

	// material ambient 0.05 plus 0.1·0.5·(1, 0.5, 0)
	got := NewPhongIntegrator(DefaultConfig()).RayColor(downRay, world)
	assertColor(t, core.NewVec3(0.1, 0.075, 0.05), got)
}

func TestPhong_SpecularHighlightOffAxis(t *testing.T) {
	shiny := material.NewPhong("shiny", core.Vec3{}, 0, 1, 4)
	plane := geometry.NewPlane("shiny", core.Vec3{}, core.NewVec3(0, 1, 0), shiny)
	light := lights.NewPointLight(core.NewVec3(1, 1, 0), whiteLight, lights.NoAttenuation)
	world := newTestWorld([]geometry.Shape{plane}, light)

	// L = (1,1,0)/√2, V = (0,1,0); N·H = cos(22.5°)
	got := NewPhongIntegrator(DefaultConfig()).RayColor(downRay, world)
	expected := math.Pow(math.Cos(math.Pi/8), 4)
	assertColor(t, core.NewVec3(expected, expected, expected), got)
}

func TestPhong_Background(t *testing.T) {
	world := newTestWorld(nil)
	integrator := NewPhongIntegrator(Config{})

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), world.top},
		{"straight down", core.NewVec3(0, -1, 0), world.bottom},
		{"horizon", core.NewVec3(1, 0, 0), world.top.Add(world.bottom).Multiply(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := integrator.RayColor(core.NewRay(core.Vec3{}, tt.direction), world)
			assertColor(t, tt.expected, got)
		})
	}
}

func TestNewPhongIntegrator_Defaults(t *testing.T) {
	cfg := NewPhongIntegrator(Config{}).Config()
	if cfg.ShadowBias != 1e-4 || cfg.TMin != 1e-4 {
		t.Errorf("Expected default offsets, got %+v", cfg)
	}
}
