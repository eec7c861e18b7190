package lights

import (
	"github.com/df07/go-raytrace-engine/pkg/core"
)

// Attenuation holds the coefficients of 1 / (constant + linear·d + quadratic·d²)
type Attenuation struct {
	Constant  float64
	Linear    float64
	Quadratic float64
}

// NoAttenuation keeps intensity constant with distance
var NoAttenuation = Attenuation{Constant: 1}

// Factor returns the attenuation multiplier at distance d
func (a Attenuation) Factor(d float64) float64 {
	denominator := a.Constant + a.Linear*d + a.Quadratic*d*d
	if denominator <= 0 {
		return 1
	}
	return 1 / denominator
}

// PointLight radiates equally in all directions from a single position
type PointLight struct {
	toggle
	position    core.Vec3
	intensity   core.Vec3
	attenuation Attenuation
}

// NewPointLight creates a point light
func NewPointLight(position, intensity core.Vec3, attenuation Attenuation) *PointLight {
	return &PointLight{
		position:    position,
		intensity:   intensity,
		attenuation: attenuation,
	}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Direction returns the unit vector from point to the light
func (pl *PointLight) Direction(point core.Vec3) core.Vec3 {
	return pl.position.Subtract(point).Normalize()
}

// Distance returns the Euclidean distance from point to the light
func (pl *PointLight) Distance(point core.Vec3) float64 {
	return pl.position.Subtract(point).Length()
}

// Intensity returns the attenuated intensity at point
func (pl *PointLight) Intensity(point core.Vec3) core.Vec3 {
	return pl.intensity.Multiply(pl.attenuation.Factor(pl.Distance(point)))
}

// Position returns the light position
func (pl *PointLight) Position() core.Vec3 {
	return pl.position
}

// SetPosition moves the light
func (pl *PointLight) SetPosition(position core.Vec3) {
	pl.position = position
}
