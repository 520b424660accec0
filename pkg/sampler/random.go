package sampler

import "github.com/lucent-render/lucent/pkg/core"

// RandomSampler draws every dimension independently from a pseudo-random
// engine. It has no stratification, so RoundCount is the identity, but its
// per-pixel streams are still fully deterministic given the seed.
type RandomSampler struct {
	pixelSampler
}

// NewRandomSampler creates a random sampler
func NewRandomSampler(samplesPerPixel int, seed uint64) *RandomSampler {
	return &RandomSampler{pixelSampler: newPixelSampler(samplesPerPixel, seed)}
}

// StartPixel implements the Sampler interface
func (r *RandomSampler) StartPixel(x, y int) {
	r.startPixel(x, y)

	// Fill the registered arrays for every sample of this pixel up front
	for _, arr := range r.arrays2D {
		for i := range arr {
			arr[i] = core.NewVec2(r.rng.Float64(), r.rng.Float64())
		}
	}
}

// Get1D returns the next random value in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.rng.Float64()
}

// Get2D returns the next pair of random values in [0, 1)²
func (r *RandomSampler) Get2D() core.Vec2 {
	return core.NewVec2(r.rng.Float64(), r.rng.Float64())
}

// RoundCount is the identity: independent random samples have no
// stratification pattern to preserve
func (r *RandomSampler) RoundCount(n int) int {
	return n
}

// GetCameraSample implements the Sampler interface
func (r *RandomSampler) GetCameraSample(x, y int) CameraSample {
	return makeCameraSample(r, x, y)
}

// Clone returns an independent sampler with the same configuration
func (r *RandomSampler) Clone(seed uint64) Sampler {
	clone := NewRandomSampler(r.samplesPerPixel, seed)
	clone.array2DSizes = append([]int(nil), r.array2DSizes...)
	return clone
}
