package lights

import (
	"image"
	"math"

	"github.com/lucent-render/lucent/pkg/core"
)

// ImageMap is a decoded image used to modulate a light's angular intensity
// distribution (projection and goniophotometric lights). Pixels are stored
// linearized; lookups are bilinear with clamped coordinates.
type ImageMap struct {
	width, height int
	pixels        []core.Vec3
	average       core.Vec3
}

// NewImageMap converts a decoded image into a lookup map, linearizing the
// usual sRGB-ish 2.2 gamma of 8-bit sources
func NewImageMap(img image.Image) *ImageMap {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	m := &ImageMap{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}

	var sum core.Vec3
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			p := core.NewVec3(
				math.Pow(float64(r)/65535.0, 2.2),
				math.Pow(float64(g)/65535.0, 2.2),
				math.Pow(float64(b)/65535.0, 2.2),
			)
			m.pixels[y*width+x] = p
			sum = sum.Add(p)
		}
	}
	m.average = sum.Multiply(1.0 / float64(width*height))

	return m
}

// NewUniformImageMap returns a 1x1 map with a constant value; useful for
// lights configured without an image
func NewUniformImageMap(value core.Vec3) *ImageMap {
	return &ImageMap{
		width:   1,
		height:  1,
		pixels:  []core.Vec3{value},
		average: value,
	}
}

// Lookup returns the bilinearly filtered value at (u, v) in [0,1]²
func (m *ImageMap) Lookup(u, v float64) core.Vec3 {
	fx := math.Min(math.Max(u, 0), 1) * float64(m.width-1)
	fy := math.Min(math.Max(v, 0), 1) * float64(m.height-1)

	x0, y0 := int(fx), int(fy)
	x1 := min(x0+1, m.width-1)
	y1 := min(y0+1, m.height-1)
	tx, ty := fx-float64(x0), fy-float64(y0)

	top := m.at(x0, y0).Multiply(1 - tx).Add(m.at(x1, y0).Multiply(tx))
	bottom := m.at(x0, y1).Multiply(1 - tx).Add(m.at(x1, y1).Multiply(tx))
	return top.Multiply(1 - ty).Add(bottom.Multiply(ty))
}

// Average returns the mean pixel value, used for power estimates
func (m *ImageMap) Average() core.Vec3 {
	return m.average
}

func (m *ImageMap) at(x, y int) core.Vec3 {
	return m.pixels[y*m.width+x]
}
