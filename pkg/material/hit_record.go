package material

import (
	"github.com/df07/go-raytrace-engine/pkg/core"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T         float64   // Parameter t along the ray
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, facing the incoming ray
	FrontFace bool      // Whether ray hit the front face
	UV        core.Vec2 // Texture coordinates
	Material  *Material // Material of the hit object
	Name      string    // Name of the hit object, for picking and diagnostics
}

// SetFaceNormal orients the normal against the ray and records which side was hit.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
