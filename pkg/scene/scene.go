package scene

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/geometry"
	"github.com/df07/go-raytrace-engine/pkg/lights"
	"github.com/df07/go-raytrace-engine/pkg/log"
	"github.com/df07/go-raytrace-engine/pkg/material"
)

// View is the camera placement a scene suggests to the renderer
type View struct {
	LookFrom core.Vec3
	LookAt   core.Vec3
	Up       core.Vec3
	VFov     float64 // Vertical field of view in degrees
}

// Config holds scene-wide settings
type Config struct {
	BVHSeed     int64     // Seed for the BVH's random split axes
	TopColor    core.Vec3 // Sky color straight up
	BottomColor core.Vec3 // Sky color straight down
}

// DefaultConfig returns a blue-to-white sky and a fixed BVH seed
func DefaultConfig() Config {
	return Config{
		BVHSeed:     1,
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Scene contains all the elements needed for rendering.
//
// A scene must not be mutated while a render is in progress. Any change to
// the shape set marks it dirty and the next Build rebuilds the BVH.
type Scene struct {
	View View

	config    Config
	shapes    []geometry.Shape
	lights    []lights.Light
	materials map[string]*material.Material

	bvh       *geometry.BVH  // Acceleration structure over bounded shapes
	unbounded *geometry.List // Planes and other shapes without a box
	dirty     bool

	logger log.Logger
}

// New creates an empty scene
func New(config Config) *Scene {
	return &Scene{
		View: View{
			LookFrom: core.NewVec3(0, 1, 5),
			LookAt:   core.NewVec3(0, 0, 0),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     45,
		},
		config:    config,
		materials: make(map[string]*material.Material),
		unbounded: geometry.NewList("unbounded"),
		bvh:       &geometry.BVH{},
		logger:    log.New("scene"),
	}
}

// Config returns the scene configuration
func (s *Scene) Config() Config {
	return s.config
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.shapes = append(s.shapes, shapes...)
	s.dirty = true
}

// Remove deletes every shape with the given name
func (s *Scene) Remove(name string) error {
	kept := s.shapes[:0]
	for _, shape := range s.shapes {
		if shape.Name() != name {
			kept = append(kept, shape)
		}
	}
	if len(kept) == len(s.shapes) {
		return fmt.Errorf("%w: %q", ErrShapeNotFound, name)
	}

	// Clear the tail so removed shapes can be collected
	for i := len(kept); i < len(s.shapes); i++ {
		s.shapes[i] = nil
	}
	s.shapes = kept
	s.dirty = true
	return nil
}

// Shapes returns the scene's shapes in insertion order
func (s *Scene) Shapes() []geometry.Shape {
	return s.shapes
}

// AddLight appends a light and returns its index
func (s *Scene) AddLight(light lights.Light) int {
	s.lights = append(s.lights, light)
	return len(s.lights) - 1
}

// Lights returns every light, enabled or not
func (s *Scene) Lights() []lights.Light {
	return s.lights
}

// SetLightEnabled toggles the light at index
func (s *Scene) SetLightEnabled(index int, enabled bool) error {
	if index < 0 || index >= len(s.lights) {
		return fmt.Errorf("%w: %d of %d", ErrLightIndex, index, len(s.lights))
	}
	s.lights[index].SetEnabled(enabled)
	return nil
}

// AddMaterial registers a material under its name, replacing any previous one
func (s *Scene) AddMaterial(mat *material.Material) *material.Material {
	s.materials[mat.Name] = mat
	return mat
}

// Material looks up a registered material by name
func (s *Scene) Material(name string) (*material.Material, error) {
	mat, ok := s.materials[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	return mat, nil
}

// BackgroundColors returns the sky gradient colors
func (s *Scene) BackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.config.TopColor, s.config.BottomColor
}

// Dirty reports whether the shape set changed since the last Build
func (s *Scene) Dirty() bool {
	return s.dirty
}

// Build rebuilds the BVH over bounded shapes if the shape set changed.
// Unbounded shapes go to a list tested after the BVH.
func (s *Scene) Build() error {
	if !s.dirty {
		return nil
	}

	start := time.Now()
	bounded := make([]geometry.Shape, 0, len(s.shapes))
	unbounded := geometry.NewList("unbounded")
	for _, shape := range s.shapes {
		if _, ok := shape.BoundingBox(); ok {
			bounded = append(bounded, shape)
		} else {
			unbounded.Add(shape)
		}
	}

	bvh, err := geometry.NewBVH(bounded, rand.New(rand.NewSource(s.config.BVHSeed)))
	if err != nil {
		return fmt.Errorf("scene: building BVH: %w", err)
	}

	s.bvh = bvh
	s.unbounded = unbounded
	s.dirty = false

	stats := bvh.Stats()
	s.logger.Debugf("rebuilt BVH over %d shapes (%d unbounded) in %s: %d nodes, depth %d",
		len(bounded), unbounded.Len(), time.Since(start), stats.TotalNodes, stats.MaxDepth)
	return nil
}

// BVH returns the current acceleration structure
func (s *Scene) BVH() *geometry.BVH {
	return s.bvh
}

// Hit finds the nearest intersection across the BVH and the unbounded shapes.
// Build must have been called after the last change to the shape set.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	hitAnything := false
	if s.bvh.Hit(ray, tMin, tMax, rec) {
		hitAnything = true
		tMax = rec.T
	}
	if s.unbounded.Hit(ray, tMin, tMax, rec) {
		hitAnything = true
	}
	return hitAnything
}

// PrimitiveCount returns the total number of primitives, counting mesh triangles
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, shape := range s.shapes {
		count += countPrimitivesInShape(shape)
	}
	return count
}

// countPrimitivesInShape counts primitives in a single shape, looking through wrappers
func countPrimitivesInShape(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.Mesh:
		return obj.TriangleCount()
	case *geometry.Transformed:
		return countPrimitivesInShape(obj.Child())
	case *geometry.List:
		count := 0
		for _, child := range obj.Shapes() {
			count += countPrimitivesInShape(child)
		}
		return count
	default:
		return 1
	}
}
