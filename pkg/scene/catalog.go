package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/geometry"
	"github.com/df07/go-raytrace-engine/pkg/lights"
	"github.com/df07/go-raytrace-engine/pkg/material"
	"github.com/df07/go-raytrace-engine/pkg/transform"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Unique identifier, used on the command line
	DisplayName string
	Description string
}

type builtinScene struct {
	info  SceneInfo
	build func() (*Scene, error)
}

var builtinScenes = []builtinScene{
	{
		info:  SceneInfo{ID: "default", DisplayName: "Default", Description: "One of every primitive and light type"},
		build: NewDefaultScene,
	},
	{
		info:  SceneInfo{ID: "sphere-grid", DisplayName: "Sphere Grid", Description: "20x20 colored spheres on a plane"},
		build: NewSphereGridScene,
	},
	{
		info:  SceneInfo{ID: "cylinders", DisplayName: "Cylinders", Description: "Capped, open, textured and sheared cylinders"},
		build: NewCylinderScene,
	},
}

// ListScenes returns the built-in scenes sorted by display name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		scenes = append(scenes, b.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes
}

// Load builds the built-in scene with the given ID
func Load(id string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.build()
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a scene with a 20x20 grid of spheres
func NewSphereGridScene() (*Scene, error) {
	s := New(DefaultConfig())
	s.View = View{
		LookFrom: core.NewVec3(4.5, 6, 18),
		LookAt:   core.NewVec3(4.5, 0.8, 4.5),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40,
	}

	grey := s.AddMaterial(material.NewPhong("grey", core.NewVec3(0.5, 0.5, 0.5), 0.3, 0.1, 8))
	s.Add(geometry.NewPlane("ground", core.Vec3{}, core.NewVec3(0, 1, 0), grey))

	gridSize := 20
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			// Hue varies across X, chroma across Z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			// Shinier spheres along the diagonal bands
			shininess := 16.0 * float64(1+(i+j)%3)
			name := fmt.Sprintf("sphere-%d-%d", i, j)
			mat := s.AddMaterial(material.NewPhong(name, oklchToRGB(lightness, chroma, hue), 0.2, 0.7, shininess))

			s.Add(geometry.NewSphere(name, core.NewVec3(x, sphereRadius, z), sphereRadius, mat))
		}
	}

	s.AddLight(lights.NewPointLight(core.NewVec3(20, 25, 20), core.NewVec3(1.0, 0.95, 0.85), lights.NoAttenuation))
	s.AddLight(lights.NewAmbientLight(core.NewVec3(0.25, 0.25, 0.3)))

	return s, nil
}

// NewCylinderScene creates a simple scene with cylinders
func NewCylinderScene() (*Scene, error) {
	s := New(DefaultConfig())
	s.View = View{
		LookFrom: core.NewVec3(0, 1.5, 4),
		LookAt:   core.NewVec3(0, 1, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     50,
	}

	grey := s.AddMaterial(material.NewPhong("grey", core.NewVec3(0.5, 0.5, 0.5), 0.3, 0.1, 8))
	red := s.AddMaterial(material.NewTexturedPhong("red-checks",
		material.NewCheckerboardTexture(64, 32, 8, core.NewVec3(0.8, 0.2, 0.2), core.NewVec3(0.9, 0.9, 0.85)), 0.2, 0.4, 32))
	blue := s.AddMaterial(material.NewTexturedPhong("blue-fade",
		material.NewGradientTexture(8, 32, core.NewVec3(0.5, 0.6, 1.0), core.NewVec3(0.1, 0.1, 0.5)), 0.2, 0.4, 32))
	gold := s.AddMaterial(material.NewPhong("gold", core.NewVec3(0.8, 0.6, 0.2), 0.2, 0.9, 128))
	green := s.AddMaterial(material.NewPhong("green", core.NewVec3(0.2, 0.6, 0.25), 0.2, 0.3, 16))

	s.Add(geometry.NewPlane("ground", core.Vec3{}, core.NewVec3(0, 1, 0), grey))

	// Center: gold tube angled toward the camera, open so it can be looked through
	tubeBase := core.NewVec3(-0.3, 1.0, -1.5)
	tubeTop := core.NewVec3(0, 1.2, 2.0)
	tubeAxis := tubeTop.Subtract(tubeBase)
	s.Add(geometry.NewCylinder("tube", tubeBase, tubeAxis, 0.35, tubeAxis.Length(), false, gold))

	// Right: tall capped cylinder standing upright
	s.Add(geometry.NewCylinder("tower", core.NewVec3(1.8, 0, 0), core.NewVec3(0, 1, 0), 0.5, 2, true, red))

	// Left: horizontal capped cylinder along X
	s.Add(geometry.NewCylinder("roller", core.NewVec3(-2.5, 0.3, 0), core.NewVec3(1, 0, 0), 0.3, 1, true, blue))

	// Back: a pair of pillars leaning toward each other. The second uses the
	// inverse shear, which leans the opposite way.
	lean := transform.FromMatrices(shearXByY(0.3), shearXByY(-0.3))
	pillar := func(name string) geometry.Shape {
		return geometry.NewCylinder(name, core.Vec3{}, core.NewVec3(0, 1, 0), 0.25, 1.8, true, green)
	}
	s.Add(
		geometry.NewTransformed(pillar("pillar-left"), lean.Then(transform.Translate(core.NewVec3(-1, 0, -2.5)))),
		geometry.NewTransformed(pillar("pillar-right"), lean.Inverted().Then(transform.Translate(core.NewVec3(1, 0, -2.5)))),
	)

	s.AddLight(lights.NewPointLight(core.NewVec3(3, 5, 3), core.NewVec3(1, 1, 1), lights.NoAttenuation))
	s.AddLight(lights.NewAmbientLight(core.NewVec3(0.3, 0.3, 0.3)))

	return s, nil
}

// shearXByY returns the matrix mapping (x, y, z) to (x + k·y, y, z)
func shearXByY(k float64) mgl64.Mat4 {
	m := mgl64.Ident4()
	m.Set(0, 1, k)
	return m
}
