package lights

import (
	"math"

	"github.com/lucent-render/lucent/pkg/core"
)

// SpotLight represents a point source restricted to a cone of directions,
// with a smooth falloff between an inner full-intensity cone and the outer
// cone edge.
type SpotLight struct {
	position        core.Vec3
	direction       core.Vec3 // Normalized cone axis (from -> to)
	intensity       core.Vec3
	cosTotalWidth   float64 // Cosine of the total cone angle (outer edge)
	cosFalloffStart float64 // Cosine of the falloff start angle (inner cone)
}

// NewSpotLight creates a spot light at from, aimed at to, with the given
// total cone angle and falloff transition angle in degrees
func NewSpotLight(from, to, intensity core.Vec3, coneAngleDegrees, coneDeltaAngleDegrees float64) *SpotLight {
	direction := to.Subtract(from).Normalize()

	totalWidthRadians := coneAngleDegrees * math.Pi / 180.0
	falloffStartRadians := (coneAngleDegrees - coneDeltaAngleDegrees) * math.Pi / 180.0

	return &SpotLight{
		position:        from,
		direction:       direction,
		intensity:       intensity,
		cosTotalWidth:   math.Cos(totalWidthRadians),
		cosFalloffStart: math.Cos(falloffStartRadians),
	}
}

// SampleLi implements the Light interface
func (sl *SpotLight) SampleLi(ref core.Interaction, u core.Vec2) (core.Vec3, core.Vec3, float64, VisibilityTester) {
	toLight := sl.position.Subtract(ref.P)
	dist2 := toLight.LengthSquared()
	if dist2 == 0 {
		return core.Vec3{}, core.Vec3{}, 0, VisibilityTester{}
	}

	wi := toLight.Normalize()
	li := sl.intensity.Multiply(sl.falloff(wi.Negate()) / dist2)
	vis := VisibilityTester{
		P0: ref,
		P1: core.NewPointInteraction(sl.position, ref.Time),
	}
	return li, wi, 1.0, vis
}

// falloff returns the attenuation for a direction w leaving the light
func (sl *SpotLight) falloff(w core.Vec3) float64 {
	cosTheta := sl.direction.Dot(w)
	if cosTheta < sl.cosTotalWidth {
		return 0.0
	}
	if cosTheta >= sl.cosFalloffStart {
		return 1.0
	}

	// Smooth quartic transition between the inner and outer cones
	delta := (cosTheta - sl.cosTotalWidth) / (sl.cosFalloffStart - sl.cosTotalWidth)
	return delta * delta * delta * delta
}

// PdfLi implements the Light interface - zero for a delta light
func (sl *SpotLight) PdfLi(ref core.Interaction, wi core.Vec3) float64 {
	return 0
}

// Power implements the Light interface: intensity times the approximate
// solid angle of the cone
func (sl *SpotLight) Power() core.Vec3 {
	solidAngle := 2 * math.Pi * (1 - 0.5*(sl.cosFalloffStart+sl.cosTotalWidth))
	return sl.intensity.Multiply(solidAngle)
}

// Preprocess implements the Light interface - nothing to do for spot lights
func (sl *SpotLight) Preprocess(scene Scene) {}

// Le implements the Light interface
func (sl *SpotLight) Le(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}

// SampleLe implements the Light interface - emits uniformly within the cone
func (sl *SpotLight) SampleLe(uPos, uDir core.Vec2, time float64) (core.Vec3, core.Ray, core.Vec3, float64, float64) {
	w := core.SampleUniformCone(sl.direction, sl.cosTotalWidth, uPos)
	ray := core.NewRay(sl.position, w, time)
	pdfPos := 1.0
	pdfDir := core.UniformConePDF(sl.cosTotalWidth)
	return sl.intensity.Multiply(sl.falloff(w)), ray, w, pdfPos, pdfDir
}

// PdfLe implements the Light interface
func (sl *SpotLight) PdfLe(ray core.Ray, nLight core.Vec3) (float64, float64) {
	cosTheta := sl.direction.Dot(ray.Direction.Normalize())
	if cosTheta < sl.cosTotalWidth {
		return 0, 0
	}
	return 0, core.UniformConePDF(sl.cosTotalWidth)
}

// Flags implements the Light interface
func (sl *SpotLight) Flags() LightFlags {
	return DeltaPosition
}

// NumSamples implements the Light interface
func (sl *SpotLight) NumSamples() int {
	return 1
}
