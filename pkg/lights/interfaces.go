package lights

import "github.com/df07/go-raytrace-engine/pkg/core"

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeSpot        LightType = "spot"
	LightTypeDirectional LightType = "directional"
	LightTypeAmbient     LightType = "ambient"
)

// Light is a punctual or scene-wide light source evaluated by the shading engine
type Light interface {
	Type() LightType

	// Direction returns the unit vector from point toward the light.
	// Ambient lights return the zero vector.
	Direction(point core.Vec3) core.Vec3

	// Distance returns the distance from point to the light, +Inf for lights at infinity
	Distance(point core.Vec3) float64

	// Intensity returns the radiance arriving at point after attenuation and falloff
	Intensity(point core.Vec3) core.Vec3

	// Position returns the light's location. Directional lights report a
	// far-away point opposite their direction.
	Position() core.Vec3

	Enabled() bool
	SetEnabled(enabled bool)
}

// toggle holds the on/off state shared by every light
type toggle struct {
	disabled bool
}

// Enabled reports whether the light contributes to shading
func (t *toggle) Enabled() bool { return !t.disabled }

// SetEnabled turns the light on or off
func (t *toggle) SetEnabled(enabled bool) { t.disabled = !enabled }
