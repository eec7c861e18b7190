package integrator

import (
	"math"

	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/lights"
	"github.com/df07/go-raytrace-engine/pkg/material"
)

// Config controls ray offsets used by the shading engine
type Config struct {
	ShadowBias float64 // Offset along the normal for shadow ray origins
	TMin       float64 // Minimum accepted t for primary and shadow rays
}

// DefaultConfig returns the offsets used when none are configured
func DefaultConfig() Config {
	return Config{
		ShadowBias: 1e-4,
		TMin:       1e-4,
	}
}

// PhongIntegrator shades the first surface a ray hits with the Blinn-Phong
// model and binary shadow rays. It never recurses.
type PhongIntegrator struct {
	config Config
}

// NewPhongIntegrator creates a new Phong integrator
func NewPhongIntegrator(config Config) *PhongIntegrator {
	if config.ShadowBias <= 0 {
		config.ShadowBias = DefaultConfig().ShadowBias
	}
	if config.TMin <= 0 {
		config.TMin = DefaultConfig().TMin
	}
	return &PhongIntegrator{config: config}
}

// Config returns the integrator's offsets
func (p *PhongIntegrator) Config() Config {
	return p.config
}

// RayColor shades the nearest hit or returns the sky when nothing is hit
func (p *PhongIntegrator) RayColor(ray core.Ray, world World) core.Vec3 {
	var hit material.HitRecord
	if !world.Hit(ray, p.config.TMin, math.Inf(1), &hit) {
		return p.Background(ray, world)
	}
	return p.Shade(ray, &hit, world)
}

// Background returns a vertical gradient based on ray direction
func (p *PhongIntegrator) Background(ray core.Ray, world World) core.Vec3 {
	topColor, bottomColor := world.BackgroundColors()

	// Map the y-component from [-1,1] to [0,1]
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return bottomColor.Lerp(topColor, t)
}

// Shade evaluates local illumination at hit:
// emission + ambient·diffuse + Σ lights (diffuse·N·L + specular·(N·H)^shininess)·I
func (p *PhongIntegrator) Shade(ray core.Ray, hit *material.HitRecord, world World) core.Vec3 {
	mat := hit.Material
	if mat == nil {
		return core.Vec3{}
	}

	diffuse := mat.DiffuseAt(hit.UV, hit.Point)
	view := ray.Direction.Negate().Normalize()
	color := mat.Emission.Add(diffuse.Multiply(mat.Ambient))

	for _, light := range world.Lights() {
		if !light.Enabled() {
			continue
		}

		if light.Type() == lights.LightTypeAmbient {
			color = color.Add(diffuse.MultiplyVec(light.Intensity(hit.Point)).Multiply(mat.Ambient))
			continue
		}

		toLight := light.Direction(hit.Point)
		nDotL := hit.Normal.Dot(toLight)
		if nDotL <= 0 {
			continue
		}
		if p.occluded(hit, toLight, light.Distance(hit.Point), world) {
			continue
		}

		intensity := light.Intensity(hit.Point)
		color = color.Add(diffuse.MultiplyVec(intensity).Multiply(nDotL))

		if mat.Specular > 0 {
			halfway := toLight.Add(view).Normalize()
			if nDotH := hit.Normal.Dot(halfway); nDotH > 0 {
				color = color.Add(intensity.Multiply(mat.Specular * math.Pow(nDotH, mat.Shininess)))
			}
		}
	}

	return color
}

// occluded casts a shadow ray from the biased hit point toward the light.
// Any intersection short of the light blocks it completely.
func (p *PhongIntegrator) occluded(hit *material.HitRecord, toLight core.Vec3, distance float64, world World) bool {
	origin := hit.Point.Add(hit.Normal.Multiply(p.config.ShadowBias))
	shadowRay := core.NewRay(origin, toLight)

	var blocker material.HitRecord
	return world.Hit(shadowRay, p.config.TMin, distance-p.config.TMin, &blocker)
}
