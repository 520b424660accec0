package material

import (
	"github.com/lucent-render/lucent/pkg/core"
)

// Material interface for shading models attached to scene geometry.
// The transport core treats materials as external collaborators: it needs
// scattering for path continuation and, crucially, the presence or absence
// of a material to classify a surface as opaque or pass-through.
type Material interface {
	// Scatter generates a scattered direction for the given hit using a
	// 2D sample value in [0,1)²
	Scatter(rayIn core.Ray, hit SurfaceInteraction, u core.Vec2) (ScatterResult, bool)

	// EvaluateBRDF evaluates the BRDF for specific incoming/outgoing directions
	EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit *SurfaceInteraction) core.Vec3

	// PDF calculates the density for scattering into outgoingDir.
	// Returns (pdf, isDelta) where isDelta indicates specular scattering.
	PDF(incomingDir, outgoingDir, normal core.Vec3) (pdf float64, isDelta bool)
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emit(rayIn core.Ray) core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Incoming    core.Ray  // The incoming ray
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // BRDF value for the scattered direction
	PDF         float64   // Probability density (0 for specular materials)
}

// IsSpecular returns true if this is specular scattering (no PDF)
func (s ScatterResult) IsSpecular() bool {
	return s.PDF <= 0
}

// SurfaceInteraction records a ray-surface intersection. Material is nil for
// pass-through geometry: surfaces that participate in intersection queries
// but block no light.
type SurfaceInteraction struct {
	core.Interaction
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether the ray hit the front face
	Material  Material // Material of the hit object, nil for pass-through
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.N = outwardNormal
	} else {
		h.N = outwardNormal.Negate()
	}
}
