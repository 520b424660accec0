package lights

import (
	"github.com/lucent-render/lucent/pkg/core"
)

// LightSampler selects which light to sample for a shading point. Selection
// probabilities are fixed at construction, so samplers are safe for
// concurrent use.
type LightSampler interface {
	// SampleLight picks a light using the 1D sample u and returns it with
	// its selection probability and its index
	SampleLight(u float64) (Light, float64, int)

	// LightProbability returns the selection probability of the light at
	// the given index
	LightProbability(index int) float64

	// LightCount returns the number of lights the sampler selects among
	LightCount() int
}

// UniformLightSampler selects every light with equal probability
type UniformLightSampler struct {
	lights []Light
}

// NewUniformLightSampler creates a uniform light sampler
func NewUniformLightSampler(lights []Light) *UniformLightSampler {
	return &UniformLightSampler{lights: lights}
}

// SampleLight implements the LightSampler interface
func (ls *UniformLightSampler) SampleLight(u float64) (Light, float64, int) {
	if len(ls.lights) == 0 {
		return nil, 0, -1
	}
	index := int(u * float64(len(ls.lights)))
	if index >= len(ls.lights) {
		index = len(ls.lights) - 1
	}
	return ls.lights[index], 1.0 / float64(len(ls.lights)), index
}

// LightProbability implements the LightSampler interface
func (ls *UniformLightSampler) LightProbability(index int) float64 {
	if len(ls.lights) == 0 || index < 0 || index >= len(ls.lights) {
		return 0
	}
	return 1.0 / float64(len(ls.lights))
}

// LightCount implements the LightSampler interface
func (ls *UniformLightSampler) LightCount() int {
	return len(ls.lights)
}

// PowerLightSampler selects lights with probability proportional to their
// approximate emitted power, so bright lights get sampled more often
type PowerLightSampler struct {
	lights        []Light
	probabilities []float64
	cdf           []float64
}

// NewPowerLightSampler creates a power-weighted light sampler. Lights whose
// power is zero keep a small probability so every light remains reachable;
// when all powers are zero the sampler degrades to uniform selection.
func NewPowerLightSampler(lights []Light) *PowerLightSampler {
	n := len(lights)
	ls := &PowerLightSampler{
		lights:        lights,
		probabilities: make([]float64, n),
		cdf:           make([]float64, n),
	}
	if n == 0 {
		return ls
	}

	total := 0.0
	for i, light := range lights {
		ls.probabilities[i] = light.Power().Luminance()
		total += ls.probabilities[i]
	}

	if total <= 0 {
		// All lights report zero power, select uniformly
		for i := range ls.probabilities {
			ls.probabilities[i] = 1.0 / float64(n)
		}
	} else {
		for i := range ls.probabilities {
			ls.probabilities[i] /= total
		}
	}

	running := 0.0
	for i, p := range ls.probabilities {
		running += p
		ls.cdf[i] = running
	}
	ls.cdf[n-1] = 1.0 // Guard against accumulated rounding

	return ls
}

// SampleLight implements the LightSampler interface
func (ls *PowerLightSampler) SampleLight(u float64) (Light, float64, int) {
	if len(ls.lights) == 0 {
		return nil, 0, -1
	}
	for i, c := range ls.cdf {
		if u <= c {
			return ls.lights[i], ls.probabilities[i], i
		}
	}
	last := len(ls.lights) - 1
	return ls.lights[last], ls.probabilities[last], last
}

// LightProbability implements the LightSampler interface
func (ls *PowerLightSampler) LightProbability(index int) float64 {
	if index < 0 || index >= len(ls.probabilities) {
		return 0
	}
	return ls.probabilities[index]
}

// LightCount implements the LightSampler interface
func (ls *PowerLightSampler) LightCount() int {
	return len(ls.lights)
}

// PdfLiCombined returns the total solid-angle density of sampling direction
// wi from ref across all lights, each weighted by its selection probability.
// Used to reweight BSDF samples against light sampling.
func PdfLiCombined(lights []Light, sampler LightSampler, ref core.Interaction, wi core.Vec3) float64 {
	total := 0.0
	for i, light := range lights {
		total += light.PdfLi(ref, wi) * sampler.LightProbability(i)
	}
	return total
}
