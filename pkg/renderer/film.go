package renderer

import (
	"image"
	"image/color"

	"github.com/lucent-render/lucent/pkg/core"
)

// Film accumulates radiance samples per pixel and resolves them into an
// image. Pixels are independent, so concurrent writers are safe as long as
// no two workers share a pixel.
type Film struct {
	width, height int
	sum           []core.Vec3
	count         []int
}

// NewFilm creates a film with the given dimensions
func NewFilm(width, height int) *Film {
	return &Film{
		width:  width,
		height: height,
		sum:    make([]core.Vec3, width*height),
		count:  make([]int, width*height),
	}
}

// Width returns the film width in pixels
func (f *Film) Width() int { return f.width }

// Height returns the film height in pixels
func (f *Film) Height() int { return f.height }

// AddSample accumulates one radiance sample for the pixel at (x, y)
func (f *Film) AddSample(x, y int, radiance core.Vec3) {
	i := y*f.width + x
	f.sum[i] = f.sum[i].Add(radiance)
	f.count[i]++
}

// Pixel returns the current average radiance of the pixel at (x, y)
func (f *Film) Pixel(x, y int) core.Vec3 {
	i := y*f.width + x
	if f.count[i] == 0 {
		return core.Vec3{}
	}
	return f.sum[i].Multiply(1.0 / float64(f.count[i]))
}

// Image resolves the accumulated samples into a gamma-corrected 8-bit image
func (f *Film) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c := f.Pixel(x, y).Clamp(0, 1).GammaCorrect(2.0)
			img.Set(x, y, color.RGBA{
				R: uint8(c.X * 255.999),
				G: uint8(c.Y * 255.999),
				B: uint8(c.Z * 255.999),
				A: 255,
			})
		}
	}
	return img
}
