package lights

import (
	"math"

	"github.com/lucent-render/lucent/pkg/core"
)

// ProjectionLight is a point source that projects an image into the scene,
// like a slide projector: the intensity toward a direction is the image
// value at that direction's projection onto a virtual screen plane one unit
// in front of the light.
type ProjectionLight struct {
	position  core.Vec3
	intensity core.Vec3
	image     *ImageMap

	// Projection frame: w is the axis, u/v span the screen plane
	w, u, v       core.Vec3
	screenExtent  float64 // Half-width of the screen window at distance 1
	cosTotalWidth float64 // Cone bound containing the projected window
}

// NewProjectionLight creates a projection light at from, aimed at to, with
// the given field of view in degrees
func NewProjectionLight(from, to, intensity core.Vec3, img *ImageMap, fovDegrees float64) *ProjectionLight {
	w := to.Subtract(from).Normalize()
	u, v := core.OrthonormalBasis(w)

	screenExtent := math.Tan(fovDegrees * math.Pi / 360.0)

	// Cone containing the screen window's diagonal
	diagonal := math.Sqrt(2 * screenExtent * screenExtent)
	cosTotalWidth := 1.0 / math.Sqrt(1+diagonal*diagonal)

	return &ProjectionLight{
		position:      from,
		intensity:     intensity,
		image:         img,
		w:             w,
		u:             u,
		v:             v,
		screenExtent:  screenExtent,
		cosTotalWidth: cosTotalWidth,
	}
}

// projection returns the image-scaled intensity toward direction d leaving
// the light, zero outside the projection window
func (pl *ProjectionLight) projection(d core.Vec3) core.Vec3 {
	z := d.Dot(pl.w)
	if z <= 0 {
		return core.Vec3{}
	}

	// Project onto the screen plane at distance 1
	x := d.Dot(pl.u) / z
	y := d.Dot(pl.v) / z
	if math.Abs(x) > pl.screenExtent || math.Abs(y) > pl.screenExtent {
		return core.Vec3{}
	}

	s := (x/pl.screenExtent + 1) * 0.5
	t := (y/pl.screenExtent + 1) * 0.5
	return pl.intensity.MultiplyVec(pl.image.Lookup(s, t))
}

// SampleLi implements the Light interface
func (pl *ProjectionLight) SampleLi(ref core.Interaction, u core.Vec2) (core.Vec3, core.Vec3, float64, VisibilityTester) {
	toLight := pl.position.Subtract(ref.P)
	dist2 := toLight.LengthSquared()
	if dist2 == 0 {
		return core.Vec3{}, core.Vec3{}, 0, VisibilityTester{}
	}

	wi := toLight.Normalize()
	li := pl.projection(wi.Negate()).Multiply(1.0 / dist2)
	vis := VisibilityTester{
		P0: ref,
		P1: core.NewPointInteraction(pl.position, ref.Time),
	}
	return li, wi, 1.0, vis
}

// PdfLi implements the Light interface - zero for a delta light
func (pl *ProjectionLight) PdfLi(ref core.Interaction, wi core.Vec3) float64 {
	return 0
}

// Power implements the Light interface: average image value times the solid
// angle of the projection cone
func (pl *ProjectionLight) Power() core.Vec3 {
	solidAngle := 2 * math.Pi * (1 - pl.cosTotalWidth)
	return pl.intensity.MultiplyVec(pl.image.Average()).Multiply(solidAngle)
}

// Preprocess implements the Light interface
func (pl *ProjectionLight) Preprocess(scene Scene) {}

// Le implements the Light interface
func (pl *ProjectionLight) Le(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}

// SampleLe implements the Light interface - emits within the projection cone
func (pl *ProjectionLight) SampleLe(uPos, uDir core.Vec2, time float64) (core.Vec3, core.Ray, core.Vec3, float64, float64) {
	w := core.SampleUniformCone(pl.w, pl.cosTotalWidth, uPos)
	ray := core.NewRay(pl.position, w, time)
	pdfPos := 1.0
	pdfDir := core.UniformConePDF(pl.cosTotalWidth)
	return pl.projection(w), ray, w, pdfPos, pdfDir
}

// PdfLe implements the Light interface
func (pl *ProjectionLight) PdfLe(ray core.Ray, nLight core.Vec3) (float64, float64) {
	cosTheta := pl.w.Dot(ray.Direction.Normalize())
	if cosTheta < pl.cosTotalWidth {
		return 0, 0
	}
	return 0, core.UniformConePDF(pl.cosTotalWidth)
}

// Flags implements the Light interface
func (pl *ProjectionLight) Flags() LightFlags {
	return DeltaPosition
}

// NumSamples implements the Light interface
func (pl *ProjectionLight) NumSamples() int {
	return 1
}
