package lights

import (
	"math"

	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/geometry"
	"github.com/lucent-render/lucent/pkg/material"
)

// QuadAreaLight represents a rectangular area light. Emission is one-sided:
// only the face the quad normal points away from emits.
type QuadAreaLight struct {
	*geometry.Quad         // Embed quad for hit testing
	area           float64 // Cached area for PDF calculations
}

// NewQuadAreaLight creates a new quad area light
func NewQuadAreaLight(corner, u, v core.Vec3, mat material.Material) *QuadAreaLight {
	return &QuadAreaLight{
		Quad: geometry.NewQuad(corner, u, v, mat),
		area: u.Cross(v).Length(),
	}
}

// emit returns the material emission toward a ray, zero for non-emissive
// materials
func (ql *QuadAreaLight) emit(ray core.Ray) core.Vec3 {
	if emitter, ok := ql.Material.(material.Emitter); ok {
		return emitter.Emit(ray)
	}
	return core.Vec3{}
}

// L implements the AreaLight interface - radiance leaving the surface point
// in direction w, zero on the back side
func (ql *QuadAreaLight) L(intr core.Interaction, w core.Vec3) core.Vec3 {
	if w.Dot(ql.Normal) <= 0 {
		return core.Vec3{}
	}
	return ql.emit(core.NewRay(intr.P, w, intr.Time))
}

// SampleLi implements the Light interface - samples a point uniformly on the
// quad surface and converts the area density to solid angle at ref
func (ql *QuadAreaLight) SampleLi(ref core.Interaction, u core.Vec2) (core.Vec3, core.Vec3, float64, VisibilityTester) {
	samplePoint := ql.Corner.Add(ql.U.Multiply(u.X)).Add(ql.V.Multiply(u.Y))

	toLight := samplePoint.Subtract(ref.P)
	dist2 := toLight.LengthSquared()
	if dist2 == 0 {
		return core.Vec3{}, core.Vec3{}, 0, VisibilityTester{}
	}
	wi := toLight.Normalize()

	// Convert the 1/area density to solid angle: pdf_ω = pdf_A * d² / |cosθ|
	cosTheta := math.Abs(ql.Normal.Dot(wi))
	if cosTheta < 1e-8 {
		// Light is edge-on, no contribution
		return core.Vec3{}, wi, 0, VisibilityTester{}
	}
	pdf := core.SafePdf(dist2 / (cosTheta * ql.area))

	lightIntr := core.Interaction{
		P:      samplePoint,
		PError: samplePoint.Abs().Multiply(core.Gamma(5)),
		N:      ql.Normal,
		Time:   ref.Time,
	}
	li := ql.L(lightIntr, wi.Negate())
	vis := VisibilityTester{P0: ref, P1: lightIntr}

	return li, wi, pdf, vis
}

// PdfLi implements the Light interface - the density SampleLi would have
// assigned to direction wi, zero when the ray misses the quad
func (ql *QuadAreaLight) PdfLi(ref core.Interaction, wi core.Vec3) float64 {
	ray := ref.SpawnRay(wi)
	hit, ok := ql.Quad.Hit(ray, core.ShadowEpsilon, math.Inf(1))
	if !ok {
		return 0
	}

	cosTheta := math.Abs(ql.Normal.Dot(wi))
	if cosTheta < 1e-8 {
		return 0
	}

	dist2 := hit.P.Subtract(ref.P).LengthSquared()
	return core.SafePdf(dist2 / (cosTheta * ql.area))
}

// Power implements the Light interface: emission integrated over the area and
// the emitting hemisphere
func (ql *QuadAreaLight) Power() core.Vec3 {
	return ql.emit(core.Ray{}).Multiply(ql.area * math.Pi)
}

// Preprocess implements the Light interface - nothing to do for quad lights
func (ql *QuadAreaLight) Preprocess(scene Scene) {}

// Le implements the Light interface
func (ql *QuadAreaLight) Le(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}

// SampleLe implements the Light interface - uniform point on the quad,
// cosine-weighted direction in the emitting hemisphere
func (ql *QuadAreaLight) SampleLe(uPos, uDir core.Vec2, time float64) (core.Vec3, core.Ray, core.Vec3, float64, float64) {
	point := ql.Corner.Add(ql.U.Multiply(uPos.X)).Add(ql.V.Multiply(uPos.Y))
	dir := core.SampleCosineHemisphere(ql.Normal, uDir)

	intr := core.Interaction{
		P:      point,
		PError: point.Abs().Multiply(core.Gamma(5)),
		N:      ql.Normal,
		Time:   time,
	}
	ray := intr.SpawnRay(dir)

	pdfPos := 1.0 / ql.area
	pdfDir := core.SafePdf(dir.Dot(ql.Normal) / math.Pi)
	return ql.emit(ray), ray, ql.Normal, pdfPos, pdfDir
}

// PdfLe implements the Light interface - validates the ray origin lies on the
// quad before reporting densities
func (ql *QuadAreaLight) PdfLe(ray core.Ray, nLight core.Vec3) (float64, float64) {
	if !ql.onSurface(ray.Origin) {
		return 0, 0
	}

	pdfPos := 1.0 / ql.area
	cosTheta := ray.Direction.Normalize().Dot(ql.Normal)
	if cosTheta <= 0 {
		return pdfPos, 0
	}
	return pdfPos, cosTheta / math.Pi
}

// onSurface solves point = corner + alpha*u + beta*v and checks the
// parametric coordinates land inside the quad
func (ql *QuadAreaLight) onSurface(point core.Vec3) bool {
	toPoint := point.Subtract(ql.Corner)

	uDotU := ql.U.Dot(ql.U)
	vDotV := ql.V.Dot(ql.V)
	uDotV := ql.U.Dot(ql.V)

	det := uDotU*vDotV - uDotV*uDotV
	if math.Abs(det) < 1e-8 {
		return false // Degenerate or nearly parallel edge vectors
	}

	toDotU := toPoint.Dot(ql.U)
	toDotV := toPoint.Dot(ql.V)
	alpha := (vDotV*toDotU - uDotV*toDotV) / det
	beta := (uDotU*toDotV - uDotV*toDotU) / det

	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return false
	}

	// Verify the point actually lies on the quad plane
	reconstructed := ql.Corner.Add(ql.U.Multiply(alpha)).Add(ql.V.Multiply(beta))
	return reconstructed.Subtract(point).Length() <= 1e-3
}

// Flags implements the Light interface
func (ql *QuadAreaLight) Flags() LightFlags {
	return Area
}

// NumSamples implements the Light interface
func (ql *QuadAreaLight) NumSamples() int {
	return 1
}
