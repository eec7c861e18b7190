package integrator

import (
	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/lights"
	"github.com/df07/go-raytrace-engine/pkg/material"
)

// World is the read-only view of a scene the shading engine needs
type World interface {
	// Hit finds the nearest intersection in [tMin, tMax]
	Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool

	// Lights returns every light, enabled or not
	Lights() []lights.Light

	// BackgroundColors returns the sky gradient's top and bottom colors
	BackgroundColors() (topColor, bottomColor core.Vec3)
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the unclamped color seen along ray
	RayColor(ray core.Ray, world World) core.Vec3
}
