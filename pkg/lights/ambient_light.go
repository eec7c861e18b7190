package lights

import (
	"math"

	"github.com/df07/go-raytrace-engine/pkg/core"
)

// AmbientLight adds uniform, unshadowed illumination to every surface
type AmbientLight struct {
	toggle
	intensity core.Vec3
}

// NewAmbientLight creates a scene-wide ambient light
func NewAmbientLight(intensity core.Vec3) *AmbientLight {
	return &AmbientLight{intensity: intensity}
}

func (al *AmbientLight) Type() LightType {
	return LightTypeAmbient
}

// Direction is undefined for ambient light
func (al *AmbientLight) Direction(point core.Vec3) core.Vec3 {
	return core.Vec3{}
}

func (al *AmbientLight) Distance(point core.Vec3) float64 {
	return math.Inf(1)
}

func (al *AmbientLight) Intensity(point core.Vec3) core.Vec3 {
	return al.intensity
}

func (al *AmbientLight) Position() core.Vec3 {
	return core.Vec3{}
}
