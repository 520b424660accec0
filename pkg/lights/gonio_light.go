package lights

import (
	"math"

	"github.com/lucent-render/lucent/pkg/core"
)

// GonioPhotometricLight is a point source whose angular intensity
// distribution comes from a goniophotometric diagram stored as an image in
// equirectangular (longitude/latitude) parameterization.
type GonioPhotometricLight struct {
	position  core.Vec3
	intensity core.Vec3
	image     *ImageMap
}

// NewGonioPhotometricLight creates a goniophotometric light
func NewGonioPhotometricLight(position, intensity core.Vec3, img *ImageMap) *GonioPhotometricLight {
	return &GonioPhotometricLight{position: position, intensity: intensity, image: img}
}

// scale returns the image value for a direction w leaving the light
func (gl *GonioPhotometricLight) scale(w core.Vec3) core.Vec3 {
	d := w.Normalize()
	theta := math.Acos(math.Min(math.Max(d.Y, -1), 1))
	phi := math.Atan2(d.Z, d.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	u := phi / (2 * math.Pi)
	v := theta / math.Pi
	return gl.image.Lookup(u, v)
}

// SampleLi implements the Light interface
func (gl *GonioPhotometricLight) SampleLi(ref core.Interaction, u core.Vec2) (core.Vec3, core.Vec3, float64, VisibilityTester) {
	toLight := gl.position.Subtract(ref.P)
	dist2 := toLight.LengthSquared()
	if dist2 == 0 {
		return core.Vec3{}, core.Vec3{}, 0, VisibilityTester{}
	}

	wi := toLight.Normalize()
	li := gl.intensity.MultiplyVec(gl.scale(wi.Negate())).Multiply(1.0 / dist2)
	vis := VisibilityTester{
		P0: ref,
		P1: core.NewPointInteraction(gl.position, ref.Time),
	}
	return li, wi, 1.0, vis
}

// PdfLi implements the Light interface - zero for a delta light
func (gl *GonioPhotometricLight) PdfLi(ref core.Interaction, wi core.Vec3) float64 {
	return 0
}

// Power implements the Light interface: average diagram value over the sphere
func (gl *GonioPhotometricLight) Power() core.Vec3 {
	return gl.intensity.MultiplyVec(gl.image.Average()).Multiply(4 * math.Pi)
}

// Preprocess implements the Light interface
func (gl *GonioPhotometricLight) Preprocess(scene Scene) {}

// Le implements the Light interface
func (gl *GonioPhotometricLight) Le(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}

// SampleLe implements the Light interface - emits over the full sphere
func (gl *GonioPhotometricLight) SampleLe(uPos, uDir core.Vec2, time float64) (core.Vec3, core.Ray, core.Vec3, float64, float64) {
	dir := core.SampleUniformSphere(uPos)
	ray := core.NewRay(gl.position, dir, time)
	pdfPos := 1.0
	pdfDir := 1.0 / (4 * math.Pi)
	return gl.intensity.MultiplyVec(gl.scale(dir)), ray, dir, pdfPos, pdfDir
}

// PdfLe implements the Light interface
func (gl *GonioPhotometricLight) PdfLe(ray core.Ray, nLight core.Vec3) (float64, float64) {
	return 0, 1.0 / (4 * math.Pi)
}

// Flags implements the Light interface
func (gl *GonioPhotometricLight) Flags() LightFlags {
	return DeltaPosition
}

// NumSamples implements the Light interface
func (gl *GonioPhotometricLight) NumSamples() int {
	return 1
}
