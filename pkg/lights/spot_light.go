package lights

import (
	"math"

	"github.com/df07/go-raytrace-engine/pkg/core"
)

// SpotLight is a point light restricted to a cone around its aim direction
type SpotLight struct {
	PointLight
	direction       core.Vec3 // Normalized direction vector (from -> to)
	cosTotalWidth   float64   // Cosine of total cone angle (outer edge)
	cosFalloffStart float64   // Cosine of falloff start angle (inner cone)
}

// NewSpotLight creates a new spot light
// from: light position
// to: point the light is aimed at
// intensity: light intensity/color
// coneAngleDegrees: total cone angle in degrees
// coneDeltaAngleDegrees: falloff transition angle in degrees
func NewSpotLight(from, to, intensity core.Vec3, coneAngleDegrees, coneDeltaAngleDegrees float64, attenuation Attenuation) *SpotLight {
	totalWidthRadians := coneAngleDegrees * math.Pi / 180.0
	falloffStartRadians := (coneAngleDegrees - coneDeltaAngleDegrees) * math.Pi / 180.0

	return &SpotLight{
		PointLight:      *NewPointLight(from, intensity, attenuation),
		direction:       to.Subtract(from).Normalize(),
		cosTotalWidth:   math.Cos(totalWidthRadians),
		cosFalloffStart: math.Cos(falloffStartRadians),
	}
}

func (sl *SpotLight) Type() LightType {
	return LightTypeSpot
}

// Aim returns the normalized cone axis
func (sl *SpotLight) Aim() core.Vec3 {
	return sl.direction
}

// Intensity applies distance attenuation and the cone falloff
func (sl *SpotLight) Intensity(point core.Vec3) core.Vec3 {
	lightToPoint := point.Subtract(sl.position).Normalize()
	return sl.PointLight.Intensity(point).Multiply(sl.falloff(sl.direction.Dot(lightToPoint)))
}

// falloff calculates the spot light falloff
// Based on the cosine of the angle between light direction and direction to point
func (sl *SpotLight) falloff(cosAngle float64) float64 {
	// Outside the total cone width
	if cosAngle < sl.cosTotalWidth {
		return 0.0
	}

	// Inside the inner cone (full intensity)
	if cosAngle >= sl.cosFalloffStart {
		return 1.0
	}

	// Linear position within the transition band, shaped by a quartic curve
	delta := (cosAngle - sl.cosTotalWidth) / (sl.cosFalloffStart - sl.cosTotalWidth)
	return delta * delta * delta * delta
}
