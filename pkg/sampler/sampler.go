// Package sampler provides the per-pixel sample-stream generators that drive
// every Monte Carlo estimate in the renderer. A sampler produces
// deterministic, well-distributed 1D and 2D values plus fixed-size 2D arrays
// for multi-dimensional estimators such as area-light sampling.
package sampler

import (
	"math/rand"

	"github.com/lucent-render/lucent/pkg/core"
)

// CameraSample bundles the stochastic values a camera model needs to
// generate one primary ray.
type CameraSample struct {
	PFilm core.Vec2 // Point on the film plane, in raster coordinates
	PLens core.Vec2 // Point on the lens, in [0,1)²
	Time  float64
}

// Sampler generates sample streams for one rendering worker. Implementations
// are stateful and must not be shared across workers: each worker owns a
// Clone with an independent stream.
//
// Repeated renders with the same seed, pixel and call sequence reproduce the
// stream bit-for-bit. The integrator's call order per sample must likewise be
// deterministic, and 2D arrays are consumed in the order they were requested.
type Sampler interface {
	// StartPixel resets stream cursors for a new pixel, positioned before
	// the pixel's first sample; StartNextSample begins each sample
	StartPixel(x, y int)

	// Get1D returns the next value in [0, 1)
	Get1D() float64

	// Get2D returns the next pair of values in [0, 1)²
	Get2D() core.Vec2

	// Request2DArray registers that every sample will consume an array of n
	// 2D values. All requests must happen before rendering starts.
	Request2DArray(n int)

	// RoundCount rounds n up to a size the sampler's stratification pattern
	// supports; callers needing at least n well-stratified values must
	// request RoundCount(n), not n.
	RoundCount(n int) int

	// Get2DArray returns the next pre-registered array of length n, or nil
	// if no request for this length is pending. A nil return is a
	// configuration fault, expected to be caught during setup validation.
	Get2DArray(n int) []core.Vec2

	// StartNextSample advances to the next sample index within the current
	// pixel; it returns true once per configured sample and false when
	// samples-per-pixel is exhausted
	StartNextSample() bool

	// GetCameraSample draws film jitter, time and lens values for the pixel
	// from the same underlying stream
	GetCameraSample(x, y int) CameraSample

	// Reseed reinitializes the underlying random engine
	Reseed(seed uint64)

	// Clone returns an independent sampler carrying the same configuration
	// (samples per pixel, registered array requests) but its own stream
	// state, for use by another rendering worker
	Clone(seed uint64) Sampler

	// CurrentSampleNumber returns the sample index within the current pixel
	CurrentSampleNumber() int

	// SamplesPerPixel returns the configured samples-per-pixel target
	SamplesPerPixel() int
}

// pixelSampler carries the bookkeeping shared by the concrete samplers:
// pixel and sample cursors, the array-request registry, and the per-pixel
// array storage.
type pixelSampler struct {
	samplesPerPixel int
	pixelX, pixelY  int
	sampleIndex     int

	array2DSizes  []int         // One entry per Request2DArray call, in order
	arrays2D      [][]core.Vec2 // n*samplesPerPixel values per request
	array2DOffset int           // Next array to hand out this sample

	rng  *rand.Rand
	seed uint64
}

func newPixelSampler(samplesPerPixel int, seed uint64) pixelSampler {
	return pixelSampler{
		samplesPerPixel: samplesPerPixel,
		rng:             rand.New(rand.NewSource(int64(seed))),
		seed:            seed,
	}
}

// startPixel resets the cursors and reseeds the engine deterministically
// from (seed, pixel) so every pixel's stream is reproducible in isolation.
// The sample cursor sits before the first sample until StartNextSample runs.
func (ps *pixelSampler) startPixel(x, y int) {
	ps.pixelX, ps.pixelY = x, y
	ps.sampleIndex = -1
	ps.array2DOffset = 0
	ps.rng.Seed(pixelSeed(ps.seed, x, y))

	// (Re)allocate per-pixel array storage for every registered request
	for i, n := range ps.array2DSizes {
		want := n * ps.samplesPerPixel
		if len(ps.arrays2D) <= i {
			ps.arrays2D = append(ps.arrays2D, make([]core.Vec2, want))
		} else if len(ps.arrays2D[i]) != want {
			ps.arrays2D[i] = make([]core.Vec2, want)
		}
	}
}

func (ps *pixelSampler) Request2DArray(n int) {
	ps.array2DSizes = append(ps.array2DSizes, n)
}

func (ps *pixelSampler) Get2DArray(n int) []core.Vec2 {
	if ps.array2DOffset == len(ps.arrays2D) {
		return nil
	}
	if ps.array2DSizes[ps.array2DOffset] != n {
		return nil
	}
	if ps.sampleIndex < 0 || ps.sampleIndex >= ps.samplesPerPixel {
		return nil
	}
	a := ps.arrays2D[ps.array2DOffset][ps.sampleIndex*n : (ps.sampleIndex+1)*n]
	ps.array2DOffset++
	return a
}

func (ps *pixelSampler) StartNextSample() bool {
	ps.array2DOffset = 0
	ps.sampleIndex++
	return ps.sampleIndex < ps.samplesPerPixel
}

func (ps *pixelSampler) Reseed(seed uint64) {
	ps.seed = seed
	ps.rng.Seed(int64(seed))
}

func (ps *pixelSampler) CurrentSampleNumber() int {
	return ps.sampleIndex
}

func (ps *pixelSampler) SamplesPerPixel() int {
	return ps.samplesPerPixel
}

// pixelSeed mixes the base seed with the pixel coordinate, splitmix-style,
// so adjacent pixels get decorrelated but reproducible engine states.
func pixelSeed(seed uint64, x, y int) int64 {
	h := seed
	h ^= uint64(uint32(x)) * 0x9e3779b97f4a7c15
	h ^= uint64(uint32(y)) * 0xc2b2ae3d27d4eb4f
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return int64(h)
}

// makeCameraSample composes a CameraSample from a sampler's stream. The draw
// order (film jitter, time, lens) is part of the stream contract: it keeps
// per-pixel sequences aligned call-for-call across samples.
func makeCameraSample(s Sampler, x, y int) CameraSample {
	jitter := s.Get2D()
	return CameraSample{
		PFilm: core.NewVec2(float64(x)+jitter.X, float64(y)+jitter.Y),
		Time:  s.Get1D(),
		PLens: s.Get2D(),
	}
}
