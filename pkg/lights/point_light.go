package lights

import (
	"math"

	"github.com/lucent-render/lucent/pkg/core"
)

// PointLight represents an isotropic point source emitting intensity I in
// all directions. Its position is a Dirac delta: it can only ever be reached
// by explicit sampling.
type PointLight struct {
	position  core.Vec3
	intensity core.Vec3 // Radiant intensity (power per solid angle)
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{position: position, intensity: intensity}
}

// SampleLi implements the Light interface. The sampled direction is always
// toward the light position; the delta-distribution density is 1 by
// convention.
func (pl *PointLight) SampleLi(ref core.Interaction, u core.Vec2) (core.Vec3, core.Vec3, float64, VisibilityTester) {
	toLight := pl.position.Subtract(ref.P)
	dist2 := toLight.LengthSquared()
	if dist2 == 0 {
		// Reference point coincides with the light
		return core.Vec3{}, core.Vec3{}, 0, VisibilityTester{}
	}

	wi := toLight.Normalize()
	li := pl.intensity.Multiply(1.0 / dist2)
	vis := VisibilityTester{
		P0: ref,
		P1: core.NewPointInteraction(pl.position, ref.Time),
	}
	return li, wi, 1.0, vis
}

// PdfLi implements the Light interface. A delta light has zero probability
// of being reached by any finite solid-angle sampling strategy.
func (pl *PointLight) PdfLi(ref core.Interaction, wi core.Vec3) float64 {
	return 0
}

// Power implements the Light interface: intensity integrated over the sphere
func (pl *PointLight) Power() core.Vec3 {
	return pl.intensity.Multiply(4 * math.Pi)
}

// Preprocess implements the Light interface - nothing to do for point lights
func (pl *PointLight) Preprocess(scene Scene) {}

// Le implements the Light interface - finite lights contribute nothing to
// rays that escape the scene
func (pl *PointLight) Le(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}

// SampleLe implements the Light interface - emits uniformly over the sphere
func (pl *PointLight) SampleLe(uPos, uDir core.Vec2, time float64) (core.Vec3, core.Ray, core.Vec3, float64, float64) {
	dir := core.SampleUniformSphere(uPos)
	ray := core.NewRay(pl.position, dir, time)
	pdfPos := 1.0
	pdfDir := 1.0 / (4 * math.Pi)
	return pl.intensity, ray, dir, pdfPos, pdfDir
}

// PdfLe implements the Light interface
func (pl *PointLight) PdfLe(ray core.Ray, nLight core.Vec3) (float64, float64) {
	return 0, 1.0 / (4 * math.Pi)
}

// Flags implements the Light interface
func (pl *PointLight) Flags() LightFlags {
	return DeltaPosition
}

// NumSamples implements the Light interface
func (pl *PointLight) NumSamples() int {
	return 1
}
