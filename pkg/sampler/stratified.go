package sampler

import (
	"math"
	"math/rand"

	"github.com/lucent-render/lucent/pkg/core"
)

// oneMinusEpsilon is the largest float64 strictly below 1; stratified values
// are clamped to it so the [0,1) contract holds at stratum boundaries.
var oneMinusEpsilon = math.Nextafter(1, 0)

// StratifiedSampler subdivides [0,1) into equal strata and jitters one value
// per stratum, then shuffles each dimension independently so strata are not
// correlated across dimensions. The first nDimensions dimensions of every
// sample are stratified; later dimensions fall back to uniform random values.
type StratifiedSampler struct {
	pixelSampler
	xSamples, ySamples int
	jitter             bool
	nDimensions        int

	samples1D    [][]float64   // [dimension][sample index]
	samples2D    [][]core.Vec2 // [dimension][sample index]
	dim1D, dim2D int
}

// NewStratifiedSampler creates a stratified sampler taking xSamples*ySamples
// samples per pixel, with nDimensions stratified dimensions per sample
func NewStratifiedSampler(xSamples, ySamples int, jitter bool, nDimensions int, seed uint64) *StratifiedSampler {
	s := &StratifiedSampler{
		pixelSampler: newPixelSampler(xSamples*ySamples, seed),
		xSamples:     xSamples,
		ySamples:     ySamples,
		jitter:       jitter,
		nDimensions:  nDimensions,
	}
	for i := 0; i < nDimensions; i++ {
		s.samples1D = append(s.samples1D, make([]float64, s.samplesPerPixel))
		s.samples2D = append(s.samples2D, make([]core.Vec2, s.samplesPerPixel))
	}
	return s
}

// StartPixel implements the Sampler interface - precomputes all stratified
// values for the pixel
func (s *StratifiedSampler) StartPixel(x, y int) {
	s.startPixel(x, y)
	s.dim1D, s.dim2D = 0, 0

	// Stratify each precomputed dimension over the pixel's samples, then
	// shuffle so sample i is not locked to stratum i in every dimension
	for _, dim := range s.samples1D {
		stratifiedSample1D(s.rng, dim, s.jitter)
		s.rng.Shuffle(len(dim), func(i, j int) { dim[i], dim[j] = dim[j], dim[i] })
	}
	for _, dim := range s.samples2D {
		stratifiedSample2D(s.rng, dim, s.xSamples, s.ySamples, s.jitter)
		s.rng.Shuffle(len(dim), func(i, j int) { dim[i], dim[j] = dim[j], dim[i] })
	}

	// Registered arrays: stratify each sample's array on a square grid when
	// the length allows it (callers go through RoundCount), otherwise fall
	// back to Latin hypercube sampling
	for reqIdx, n := range s.array2DSizes {
		for samp := 0; samp < s.samplesPerPixel; samp++ {
			segment := s.arrays2D[reqIdx][samp*n : (samp+1)*n]
			if side := intSqrt(n); side*side == n {
				stratifiedSample2D(s.rng, segment, side, side, s.jitter)
				s.rng.Shuffle(len(segment), func(i, j int) { segment[i], segment[j] = segment[j], segment[i] })
			} else {
				latinHypercube2D(s.rng, segment)
			}
		}
	}
}

// Get1D returns the next stratified value, or a plain random value once the
// precomputed dimensions are exhausted
func (s *StratifiedSampler) Get1D() float64 {
	if s.dim1D < len(s.samples1D) && s.sampleIndex >= 0 && s.sampleIndex < s.samplesPerPixel {
		v := s.samples1D[s.dim1D][s.sampleIndex]
		s.dim1D++
		return v
	}
	return s.rng.Float64()
}

// Get2D returns the next stratified pair, or a plain random pair once the
// precomputed dimensions are exhausted
func (s *StratifiedSampler) Get2D() core.Vec2 {
	if s.dim2D < len(s.samples2D) && s.sampleIndex >= 0 && s.sampleIndex < s.samplesPerPixel {
		v := s.samples2D[s.dim2D][s.sampleIndex]
		s.dim2D++
		return v
	}
	return core.NewVec2(s.rng.Float64(), s.rng.Float64())
}

// RoundCount rounds n up to the next perfect square so array requests can be
// stratified on a square grid
func (s *StratifiedSampler) RoundCount(n int) int {
	if n <= 0 {
		return 0
	}
	side := int(math.Ceil(math.Sqrt(float64(n))))
	return side * side
}

// StartNextSample implements the Sampler interface
func (s *StratifiedSampler) StartNextSample() bool {
	s.dim1D, s.dim2D = 0, 0
	return s.pixelSampler.StartNextSample()
}

// GetCameraSample implements the Sampler interface
func (s *StratifiedSampler) GetCameraSample(x, y int) CameraSample {
	return makeCameraSample(s, x, y)
}

// Clone returns an independent sampler with the same configuration
func (s *StratifiedSampler) Clone(seed uint64) Sampler {
	clone := NewStratifiedSampler(s.xSamples, s.ySamples, s.jitter, s.nDimensions, seed)
	clone.array2DSizes = append([]int(nil), s.array2DSizes...)
	return clone
}

// stratifiedSample1D fills out with one value per stratum of [0,1)
func stratifiedSample1D(rng *rand.Rand, out []float64, jitter bool) {
	invN := 1.0 / float64(len(out))
	for i := range out {
		delta := 0.5
		if jitter {
			delta = rng.Float64()
		}
		out[i] = math.Min((float64(i)+delta)*invN, oneMinusEpsilon)
	}
}

// stratifiedSample2D fills out with one point per cell of an nx×ny grid
func stratifiedSample2D(rng *rand.Rand, out []core.Vec2, nx, ny int, jitter bool) {
	dx, dy := 1.0/float64(nx), 1.0/float64(ny)
	i := 0
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			jx, jy := 0.5, 0.5
			if jitter {
				jx, jy = rng.Float64(), rng.Float64()
			}
			out[i] = core.NewVec2(
				math.Min((float64(x)+jx)*dx, oneMinusEpsilon),
				math.Min((float64(y)+jy)*dy, oneMinusEpsilon),
			)
			i++
		}
	}
}

// latinHypercube2D fills out with n points that are stratified along each
// axis independently; used for array lengths that are not perfect squares
func latinHypercube2D(rng *rand.Rand, out []core.Vec2) {
	n := len(out)
	invN := 1.0 / float64(n)
	for i := range out {
		out[i] = core.NewVec2(
			math.Min((float64(i)+rng.Float64())*invN, oneMinusEpsilon),
			math.Min((float64(i)+rng.Float64())*invN, oneMinusEpsilon),
		)
	}
	// Shuffle the second axis to break the diagonal correlation
	rng.Shuffle(n, func(i, j int) { out[i].Y, out[j].Y = out[j].Y, out[i].Y })
}

func intSqrt(n int) int {
	return int(math.Sqrt(float64(n)))
}
