package scene

import (
	"math"

	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/geometry"
	"github.com/df07/go-raytrace-engine/pkg/lights"
	"github.com/df07/go-raytrace-engine/pkg/material"
	"github.com/df07/go-raytrace-engine/pkg/transform"
)

// NewDefaultScene creates a demo scene with one of every primitive and light type
func NewDefaultScene() (*Scene, error) {
	s := New(DefaultConfig())
	s.View = View{
		LookFrom: core.NewVec3(0, 3, 8),
		LookAt:   core.NewVec3(0, 0.8, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40,
	}

	// Create materials
	ground := s.AddMaterial(material.NewTexturedPhong("ground",
		material.NewChecker(core.NewVec3(0.85, 0.85, 0.85), core.NewVec3(0.25, 0.25, 0.3), 1.0),
		0.3, 0.1, 8))
	red := s.AddMaterial(material.NewPhong("red", core.NewVec3(0.8, 0.15, 0.1), 0.2, 0.6, 64))
	gold := s.AddMaterial(material.NewPhong("gold", core.NewVec3(0.8, 0.6, 0.2), 0.2, 0.9, 128))
	blue := s.AddMaterial(material.NewPhong("blue", core.NewVec3(0.1, 0.2, 0.6), 0.2, 0.3, 16))
	green := s.AddMaterial(material.NewPhong("green", core.NewVec3(0.2, 0.6, 0.25), 0.2, 0.2, 8))
	uvDebug := s.AddMaterial(material.NewTexturedPhong("uv", material.NewUVDebugTexture(64, 32), 0.3, 0.4, 32))
	lamp := s.AddMaterial(material.NewEmissive("lamp", core.NewVec3(1.0, 0.9, 0.6)))

	// Ground plane (unbounded, kept out of the BVH)
	s.Add(geometry.NewPlane("ground", core.Vec3{}, core.NewVec3(0, 1, 0), ground))

	// Center sphere resting on the ground
	s.Add(geometry.NewSphere("sphere", core.NewVec3(0, 1, 0), 1, red))

	// Textured sphere on the left
	s.Add(geometry.NewSphere("globe", core.NewVec3(-2.5, 0.75, 0.5), 0.75, uvDebug))

	// Ellipsoid: unit sphere squashed and moved into place
	s.Add(geometry.NewTransformed(
		geometry.NewSphere("egg", core.Vec3{}, 1, gold),
		transform.Compose(
			transform.Scale(core.NewVec3(0.5, 0.8, 0.5)),
			transform.RotateX(0.3),
			transform.Translate(core.NewVec3(2.6, 0.8, 1.2)),
		),
	))

	// Cylinder lying on its side along X
	s.Add(geometry.NewTransformed(
		geometry.NewCylinder("log", core.Vec3{}, core.NewVec3(0, 1, 0), 0.35, 1.6, true, blue),
		transform.RotateZ(-math.Pi/2).Then(transform.Translate(core.NewVec3(1.2, 0.35, 2.2))),
	))

	// Cone standing on its base with the apex up
	cone, err := geometry.NewCone("cone", core.NewVec3(-1.2, 2.0, -2), core.NewVec3(0, -1, 0), math.Pi/9, 2.0, true, green)
	if err != nil {
		return nil, err
	}
	s.Add(cone)

	pyramid, err := newPyramid("pyramid", core.NewVec3(1.8, 0, -2), 1.4, 1.5, gold)
	if err != nil {
		return nil, err
	}
	s.Add(pyramid)

	// Small emissive marker above the point light, clear of its shadow rays
	pointLight := core.NewVec3(4, 5, 4)
	s.Add(geometry.NewSphere("lamp", pointLight.Add(core.NewVec3(0, 0.6, 0)), 0.15, lamp))

	s.AddLight(lights.NewPointLight(pointLight, core.NewVec3(0.9, 0.9, 0.85),
		lights.Attenuation{Constant: 1, Linear: 0.02, Quadratic: 0.002}))
	s.AddLight(lights.NewSpotLight(core.NewVec3(-4, 6, 3), core.NewVec3(0, 0, 0), core.NewVec3(0.6, 0.5, 0.4),
		25, 6, lights.NoAttenuation))
	s.AddLight(lights.NewDirectionalLight(core.NewVec3(-1, -2, -1), core.NewVec3(0.25, 0.25, 0.3)))
	s.AddLight(lights.NewAmbientLight(core.NewVec3(0.3, 0.3, 0.3)))

	return s, nil
}

// newPyramid builds a square pyramid mesh standing on baseCenter
func newPyramid(name string, baseCenter core.Vec3, size, height float64, mat *material.Material) (*geometry.Mesh, error) {
	h := size / 2
	vertices := []core.Vec3{
		baseCenter.Add(core.NewVec3(-h, 0, -h)),
		baseCenter.Add(core.NewVec3(h, 0, -h)),
		baseCenter.Add(core.NewVec3(h, 0, h)),
		baseCenter.Add(core.NewVec3(-h, 0, h)),
		baseCenter.Add(core.NewVec3(0, height, 0)), // apex
	}
	faces := []int{
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		3, 0, 4,
		0, 2, 1, // base
		0, 3, 2,
	}
	return geometry.NewMesh(name, vertices, faces, mat)
}
