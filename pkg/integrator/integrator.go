// Package integrator implements the light transport algorithms that turn
// camera rays into radiance estimates.
package integrator

import (
	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/lights"
	"github.com/lucent-render/lucent/pkg/sampler"
)

// Scene is the world view integrators require: intersection queries plus
// access to the lights and the light selection distribution
type Scene interface {
	lights.Scene

	// Lights returns all lights in the scene
	Lights() []lights.Light

	// LightSampler returns the light selection distribution
	LightSampler() lights.LightSampler
}

// Config holds the parameters shared by integrators
type Config struct {
	MaxDepth                  int // Maximum ray bounce depth
	RussianRouletteMinBounces int // Minimum bounces before Russian Roulette can activate
}

// Integrator computes the radiance arriving along a camera ray
type Integrator interface {
	RayColor(ray core.Ray, scene Scene, smp sampler.Sampler) core.Vec3
}
