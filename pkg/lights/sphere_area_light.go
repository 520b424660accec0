package lights

import (
	"math"

	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/geometry"
	"github.com/lucent-render/lucent/pkg/material"
)

// SphereAreaLight represents a spherical area light. Points seen from outside
// the sphere are sampled through the cone the sphere subtends, which avoids
// wasting samples on the far hemisphere.
type SphereAreaLight struct {
	*geometry.Sphere // Embed sphere for hit testing
}

// NewSphereAreaLight creates a new spherical area light
func NewSphereAreaLight(center core.Vec3, radius float64, mat material.Material) *SphereAreaLight {
	return &SphereAreaLight{
		Sphere: geometry.NewSphere(center, radius, mat),
	}
}

// emit returns the material emission toward a ray, zero for non-emissive
// materials
func (sl *SphereAreaLight) emit(ray core.Ray) core.Vec3 {
	if emitter, ok := sl.Material.(material.Emitter); ok {
		return emitter.Emit(ray)
	}
	return core.Vec3{}
}

// L implements the AreaLight interface - radiance leaving the surface point
// in direction w, zero for directions pointing back into the sphere
func (sl *SphereAreaLight) L(intr core.Interaction, w core.Vec3) core.Vec3 {
	if w.Dot(intr.N) <= 0 {
		return core.Vec3{}
	}
	return sl.emit(core.NewRay(intr.P, w, intr.Time))
}

// SampleLi implements the Light interface
func (sl *SphereAreaLight) SampleLi(ref core.Interaction, u core.Vec2) (core.Vec3, core.Vec3, float64, VisibilityTester) {
	toCenter := sl.Center.Subtract(ref.P)
	distToCenter := toCenter.Length()

	// Inside the sphere, fall back to uniform area sampling
	if distToCenter <= sl.Radius {
		return sl.sampleUniform(ref, u)
	}
	return sl.sampleCone(ref, u, toCenter, distToCenter)
}

// sampleUniform samples uniformly on the entire sphere surface and converts
// the area density to solid angle
func (sl *SphereAreaLight) sampleUniform(ref core.Interaction, u core.Vec2) (core.Vec3, core.Vec3, float64, VisibilityTester) {
	localDir := core.SampleUniformSphere(u)
	samplePoint := sl.Center.Add(localDir.Multiply(sl.Radius))
	normal := localDir

	toLight := samplePoint.Subtract(ref.P)
	dist2 := toLight.LengthSquared()
	if dist2 == 0 {
		return core.Vec3{}, core.Vec3{}, 0, VisibilityTester{}
	}
	wi := toLight.Normalize()

	cosTheta := math.Abs(normal.Dot(wi))
	if cosTheta < 1e-8 {
		return core.Vec3{}, wi, 0, VisibilityTester{}
	}
	areaPdf := 1.0 / sl.Area()
	pdf := core.SafePdf(areaPdf * dist2 / cosTheta)

	lightIntr := core.Interaction{
		P:      samplePoint,
		PError: samplePoint.Abs().Multiply(core.Gamma(5)),
		N:      normal,
		Time:   ref.Time,
	}
	li := sl.L(lightIntr, wi.Negate())
	vis := VisibilityTester{P0: ref, P1: lightIntr}

	return li, wi, pdf, vis
}

// sampleCone samples a direction within the cone the sphere subtends from
// the reference point
func (sl *SphereAreaLight) sampleCone(ref core.Interaction, u core.Vec2, toCenter core.Vec3, distToCenter float64) (core.Vec3, core.Vec3, float64, VisibilityTester) {
	sinThetaMax := sl.Radius / distToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1.0-sinThetaMax*sinThetaMax))

	wi := core.SampleUniformCone(toCenter.Normalize(), cosThetaMax, u)

	// Find the surface point the sampled direction reaches
	ray := core.NewRay(ref.P, wi, ref.Time)
	hit, ok := sl.Sphere.Hit(ray, core.ShadowEpsilon, math.Inf(1))
	if !ok {
		// Grazing the cone edge can miss numerically
		return sl.sampleUniform(ref, u)
	}

	pdf := core.SafePdf(core.UniformConePDF(cosThetaMax))

	normal := hit.P.Subtract(sl.Center).Normalize()
	lightIntr := core.Interaction{
		P:      hit.P,
		PError: hit.PError,
		N:      normal,
		Time:   ref.Time,
	}
	li := sl.L(lightIntr, wi.Negate())
	vis := VisibilityTester{P0: ref, P1: lightIntr}

	return li, wi, pdf, vis
}

// PdfLi implements the Light interface
func (sl *SphereAreaLight) PdfLi(ref core.Interaction, wi core.Vec3) float64 {
	ray := ref.SpawnRay(wi)
	hit, ok := sl.Sphere.Hit(ray, core.ShadowEpsilon, math.Inf(1))
	if !ok {
		return 0
	}

	toCenter := sl.Center.Subtract(ref.P)
	distToCenter := toCenter.Length()

	if distToCenter <= sl.Radius {
		normal := hit.P.Subtract(sl.Center).Normalize()
		cosTheta := math.Abs(normal.Dot(wi))
		if cosTheta < 1e-8 {
			return 0
		}
		dist2 := hit.P.Subtract(ref.P).LengthSquared()
		return core.SafePdf(dist2 / (cosTheta * sl.Area()))
	}

	sinThetaMax := sl.Radius / distToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1.0-sinThetaMax*sinThetaMax))
	return core.SafePdf(core.UniformConePDF(cosThetaMax))
}

// Power implements the Light interface
func (sl *SphereAreaLight) Power() core.Vec3 {
	return sl.emit(core.Ray{}).Multiply(sl.Area() * math.Pi)
}

// Preprocess implements the Light interface - nothing to do for sphere lights
func (sl *SphereAreaLight) Preprocess(scene Scene) {}

// Le implements the Light interface
func (sl *SphereAreaLight) Le(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}

// SampleLe implements the Light interface - uniform point on the sphere,
// cosine-weighted direction in the outward hemisphere
func (sl *SphereAreaLight) SampleLe(uPos, uDir core.Vec2, time float64) (core.Vec3, core.Ray, core.Vec3, float64, float64) {
	localDir := core.SampleUniformSphere(uPos)
	point := sl.Center.Add(localDir.Multiply(sl.Radius))
	normal := localDir

	dir := core.SampleCosineHemisphere(normal, uDir)

	intr := core.Interaction{
		P:      point,
		PError: point.Abs().Multiply(core.Gamma(5)),
		N:      normal,
		Time:   time,
	}
	ray := intr.SpawnRay(dir)

	pdfPos := 1.0 / sl.Area()
	pdfDir := core.SafePdf(dir.Dot(normal) / math.Pi)
	return sl.emit(ray), ray, normal, pdfPos, pdfDir
}

// PdfLe implements the Light interface - validates the ray origin lies on the
// sphere surface before reporting densities
func (sl *SphereAreaLight) PdfLe(ray core.Ray, nLight core.Vec3) (float64, float64) {
	distFromCenter := ray.Origin.Subtract(sl.Center).Length()
	if math.Abs(distFromCenter-sl.Radius) > 1e-3 {
		return 0, 0
	}

	normal := ray.Origin.Subtract(sl.Center).Normalize()
	pdfPos := 1.0 / sl.Area()
	cosTheta := ray.Direction.Normalize().Dot(normal)
	if cosTheta <= 0 {
		return pdfPos, 0
	}
	return pdfPos, cosTheta / math.Pi
}

// Flags implements the Light interface
func (sl *SphereAreaLight) Flags() LightFlags {
	return Area
}

// NumSamples implements the Light interface
func (sl *SphereAreaLight) NumSamples() int {
	return 1
}
