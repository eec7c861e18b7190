package material

import (
	"github.com/df07/go-raytrace-engine/pkg/core"
)

// Material holds the Phong reflectance coefficients of a surface.
// One Material is shared by pointer between every shape that uses it.
type Material struct {
	Name      string
	Diffuse   ColorSource // Diffuse reflectance (solid, procedural or image)
	Ambient   float64     // Fraction of the diffuse color reflected as ambient light
	Specular  float64     // Specular highlight coefficient
	Shininess float64     // Phong exponent
	Emission  core.Vec3   // Self-emitted radiance, added unconditionally
}

// NewPhong creates a material with a solid diffuse color
func NewPhong(name string, color core.Vec3, ambient, specular, shininess float64) *Material {
	return &Material{
		Name:      name,
		Diffuse:   NewSolidColor(color),
		Ambient:   ambient,
		Specular:  specular,
		Shininess: shininess,
	}
}

// NewTexturedPhong creates a material whose diffuse color comes from a ColorSource
func NewTexturedPhong(name string, diffuse ColorSource, ambient, specular, shininess float64) *Material {
	return &Material{
		Name:      name,
		Diffuse:   diffuse,
		Ambient:   ambient,
		Specular:  specular,
		Shininess: shininess,
	}
}

// NewEmissive creates a material that only emits light
func NewEmissive(name string, emission core.Vec3) *Material {
	return &Material{
		Name:     name,
		Diffuse:  NewSolidColor(core.Vec3{}),
		Emission: emission,
	}
}

// DiffuseAt evaluates the diffuse color at a hit
func (m *Material) DiffuseAt(uv core.Vec2, point core.Vec3) core.Vec3 {
	if m.Diffuse == nil {
		return core.Vec3{}
	}
	return m.Diffuse.Evaluate(uv, point)
}
