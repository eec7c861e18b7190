package lights

import (
	"math"

	"github.com/df07/go-raytrace-engine/pkg/core"
)

// farDistance places a directional light's reported position well outside any scene
const farDistance = 1e6

// DirectionalLight shines along a constant direction from infinitely far away
type DirectionalLight struct {
	toggle
	direction core.Vec3 // Direction light travels, normalized
	intensity core.Vec3
}

// NewDirectionalLight creates a light travelling along direction
func NewDirectionalLight(direction, intensity core.Vec3) *DirectionalLight {
	return &DirectionalLight{
		direction: direction.Normalize(),
		intensity: intensity,
	}
}

func (dl *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// Direction is the same for every point: opposite the travel direction
func (dl *DirectionalLight) Direction(point core.Vec3) core.Vec3 {
	return dl.direction.Negate()
}

// Distance is infinite, shadow rays run to the end of the scene
func (dl *DirectionalLight) Distance(point core.Vec3) float64 {
	return math.Inf(1)
}

// Intensity does not attenuate
func (dl *DirectionalLight) Intensity(point core.Vec3) core.Vec3 {
	return dl.intensity
}

func (dl *DirectionalLight) Position() core.Vec3 {
	return dl.direction.Multiply(-farDistance)
}
