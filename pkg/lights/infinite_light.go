package lights

import (
	"math"

	"github.com/lucent-render/lucent/pkg/core"
)

// GradientInfiniteLight represents an environment light infinitely far away
// whose radiance blends between a bottom and a top color by direction height.
// It is the only variant that contributes to rays escaping the scene.
type GradientInfiniteLight struct {
	topColor    core.Vec3
	bottomColor core.Vec3

	worldCenter core.Vec3
	worldRadius float64
}

// NewGradientInfiniteLight creates a new gradient environment light
func NewGradientInfiniteLight(topColor, bottomColor core.Vec3) *GradientInfiniteLight {
	return &GradientInfiniteLight{
		topColor:    topColor,
		bottomColor: bottomColor,
	}
}

// Preprocess implements the Light interface - captures the scene bounds so
// emission rays and visibility targets can be placed outside all geometry
func (gil *GradientInfiniteLight) Preprocess(scene Scene) {
	gil.worldCenter, gil.worldRadius = scene.WorldBound()
}

// emissionForDirection blends the two colors by the direction's height
func (gil *GradientInfiniteLight) emissionForDirection(direction core.Vec3) core.Vec3 {
	t := 0.5 * (direction.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return gil.bottomColor.Multiply(1.0 - t).Add(gil.topColor.Multiply(t))
}

// SampleLi implements the Light interface - cosine-weighted sampling of the
// hemisphere above the reference normal, since the cosine term of the
// rendering equation cancels against it
func (gil *GradientInfiniteLight) SampleLi(ref core.Interaction, u core.Vec2) (core.Vec3, core.Vec3, float64, VisibilityTester) {
	wi := core.SampleCosineHemisphere(ref.N, u)
	cosTheta := wi.Dot(ref.N)
	pdf := core.SafePdf(cosTheta / math.Pi)

	// Visibility target outside all scene geometry
	far := ref.P.Add(wi.Multiply(2 * gil.worldRadius))
	vis := VisibilityTester{
		P0: ref,
		P1: core.NewPointInteraction(far, ref.Time),
	}
	return gil.emissionForDirection(wi), wi, pdf, vis
}

// PdfLi implements the Light interface
func (gil *GradientInfiniteLight) PdfLi(ref core.Interaction, wi core.Vec3) float64 {
	cosTheta := wi.Dot(ref.N)
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

// Power implements the Light interface: average radiance through the scene's
// cross-section
func (gil *GradientInfiniteLight) Power() core.Vec3 {
	avg := gil.topColor.Add(gil.bottomColor).Multiply(0.5)
	return avg.Multiply(math.Pi * gil.worldRadius * gil.worldRadius)
}

// Le implements the Light interface - radiance for rays that escape the scene
func (gil *GradientInfiniteLight) Le(ray core.Ray) core.Vec3 {
	return gil.emissionForDirection(ray.Direction.Normalize())
}

// SampleLe implements the Light interface - picks an incoming direction over
// the sphere and an origin on a disk outside the scene, oriented
// perpendicular to that direction
func (gil *GradientInfiniteLight) SampleLe(uPos, uDir core.Vec2, time float64) (core.Vec3, core.Ray, core.Vec3, float64, float64) {
	if gil.worldRadius == 0 {
		return core.Vec3{}, core.Ray{}, core.Vec3{}, 0, 0
	}

	// Direction the emitted ray travels, toward the scene
	dir := core.SampleUniformSphere(uDir)

	u, v := core.OrthonormalBasis(dir)
	disk := core.SampleConcentricDisk(uPos)
	diskPoint := gil.worldCenter.
		Add(u.Multiply(disk.X * gil.worldRadius)).
		Add(v.Multiply(disk.Y * gil.worldRadius))
	origin := diskPoint.Subtract(dir.Multiply(gil.worldRadius))

	ray := core.NewRay(origin, dir, time)
	pdfPos := 1.0 / (math.Pi * gil.worldRadius * gil.worldRadius)
	pdfDir := 1.0 / (4 * math.Pi)

	// Emission is evaluated for the direction the light is seen from
	le := gil.emissionForDirection(dir.Negate())
	return le, ray, dir, pdfPos, pdfDir
}

// PdfLe implements the Light interface
func (gil *GradientInfiniteLight) PdfLe(ray core.Ray, nLight core.Vec3) (float64, float64) {
	if gil.worldRadius == 0 {
		return 0, 0
	}
	return 1.0 / (math.Pi * gil.worldRadius * gil.worldRadius), 1.0 / (4 * math.Pi)
}

// Flags implements the Light interface
func (gil *GradientInfiniteLight) Flags() LightFlags {
	return Infinite
}

// NumSamples implements the Light interface
func (gil *GradientInfiniteLight) NumSamples() int {
	return 1
}
