package material

import (
	"github.com/lucent-render/lucent/pkg/core"
)

// Metal represents a reflective material with optional fuzziness
type Metal struct {
	Albedo core.Vec3 // Reflectance color
	Fuzz   float64   // Fuzziness factor, 0 is a perfect mirror
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	if fuzz > 1 {
		fuzz = 1
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

// reflect computes the mirror reflection of v about normal n
func reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Scatter implements the Material interface for metallic reflection
func (m *Metal) Scatter(rayIn core.Ray, hit SurfaceInteraction, u core.Vec2) (ScatterResult, bool) {
	reflected := reflect(rayIn.Direction.Normalize(), hit.N)

	// Perturb the mirror direction for fuzzy metals
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.SampleUniformSphere(u).Multiply(m.Fuzz))
	}

	// Absorbed if the fuzz pushed the ray below the surface
	if reflected.Dot(hit.N) <= 0 {
		return ScatterResult{}, false
	}

	scattered := hit.SpawnRay(reflected.Normalize())
	return ScatterResult{
		Incoming:    rayIn,
		Scattered:   scattered,
		Attenuation: m.Albedo,
		PDF:         0, // Specular: no meaningful density
	}, true
}

// EvaluateBRDF evaluates the BRDF for specific incoming/outgoing directions
func (m *Metal) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit *SurfaceInteraction) core.Vec3 {
	// Specular reflection has zero probability of matching an arbitrary
	// direction pair
	return core.Vec3{}
}

// PDF calculates the probability density for specific incoming/outgoing directions
func (m *Metal) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	return 0.0, true // isDelta = true
}
