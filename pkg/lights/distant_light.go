package lights

import (
	"math"

	"github.com/lucent-render/lucent/pkg/core"
)

// DistantLight represents a directional source infinitely far away, like
// sunlight: every point receives radiance L from the same direction. The
// direction is a Dirac delta.
type DistantLight struct {
	radiance core.Vec3
	wLight   core.Vec3 // Unit direction pointing from the scene toward the light

	worldCenter core.Vec3
	worldRadius float64
}

// NewDistantLight creates a distant light; direction is the direction the
// light travels in (from the light toward the scene)
func NewDistantLight(direction, radiance core.Vec3) *DistantLight {
	return &DistantLight{
		radiance: radiance,
		wLight:   direction.Normalize().Negate(),
	}
}

// Preprocess implements the Light interface - captures the scene's bounding
// sphere so visibility targets and emission disks can be placed outside it
func (dl *DistantLight) Preprocess(scene Scene) {
	dl.worldCenter, dl.worldRadius = scene.WorldBound()
}

// SampleLi implements the Light interface. The visibility target is a point
// two world radii away along the light direction, guaranteed outside the
// scene geometry.
func (dl *DistantLight) SampleLi(ref core.Interaction, u core.Vec2) (core.Vec3, core.Vec3, float64, VisibilityTester) {
	wi := dl.wLight
	pOutside := ref.P.Add(wi.Multiply(2 * dl.worldRadius))
	vis := VisibilityTester{
		P0: ref,
		P1: core.NewPointInteraction(pOutside, ref.Time),
	}
	return dl.radiance, wi, 1.0, vis
}

// PdfLi implements the Light interface - zero for a delta light
func (dl *DistantLight) PdfLi(ref core.Interaction, wi core.Vec3) float64 {
	return 0
}

// Power implements the Light interface: radiance through a disk the size of
// the scene's silhouette
func (dl *DistantLight) Power() core.Vec3 {
	return dl.radiance.Multiply(math.Pi * dl.worldRadius * dl.worldRadius)
}

// Le implements the Light interface
func (dl *DistantLight) Le(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}

// SampleLe implements the Light interface - picks a point on a virtual disk
// spanning the scene, outside the world bound, and shoots a parallel ray
// through the scene
func (dl *DistantLight) SampleLe(uPos, uDir core.Vec2, time float64) (core.Vec3, core.Ray, core.Vec3, float64, float64) {
	if dl.worldRadius == 0 {
		return core.Vec3{}, core.Ray{}, core.Vec3{}, 0, 0
	}

	u, v := core.OrthonormalBasis(dl.wLight)
	disk := core.SampleConcentricDisk(uPos)
	diskPoint := dl.worldCenter.
		Add(u.Multiply(disk.X * dl.worldRadius)).
		Add(v.Multiply(disk.Y * dl.worldRadius))

	origin := diskPoint.Add(dl.wLight.Multiply(dl.worldRadius))
	dir := dl.wLight.Negate()
	ray := core.NewRay(origin, dir, time)

	pdfPos := 1.0 / (math.Pi * dl.worldRadius * dl.worldRadius)
	pdfDir := 1.0
	return dl.radiance, ray, dir, pdfPos, pdfDir
}

// PdfLe implements the Light interface
func (dl *DistantLight) PdfLe(ray core.Ray, nLight core.Vec3) (float64, float64) {
	if dl.worldRadius == 0 {
		return 0, 0
	}
	return 1.0 / (math.Pi * dl.worldRadius * dl.worldRadius), 0
}

// Flags implements the Light interface
func (dl *DistantLight) Flags() LightFlags {
	return DeltaDirection
}

// NumSamples implements the Light interface
func (dl *DistantLight) NumSamples() int {
	return 1
}
