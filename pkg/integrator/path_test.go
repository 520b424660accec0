package integrator

import (
	"math"
	"testing"

	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/geometry"
	"github.com/lucent-render/lucent/pkg/lights"
	"github.com/lucent-render/lucent/pkg/material"
	"github.com/lucent-render/lucent/pkg/sampler"
	"github.com/lucent-render/lucent/pkg/scene"
)

func TestPathTracing_DirectLightingFromPointLight(t *testing.T) {
	// Lambertian ground, one point light straight above the hit point. With a
	// single bounce, the estimate is the analytic direct lighting value: no
	// randomness survives because the delta light carries pdf 1 and the
	// indirect bounce is cut off by the depth limit.
	albedo := core.NewVec3(0.6, 0.6, 0.6)
	s := scene.NewScene()
	s.AddShape(scene.NewGroundQuad(core.NewVec3(0, 0, 0), 100, material.NewLambertian(albedo)))

	intensity := core.NewVec3(50, 50, 50)
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 0), intensity))
	s.Preprocess()

	pt := NewPathTracingIntegrator(Config{MaxDepth: 1, RussianRouletteMinBounces: 100})
	smp := sampler.NewRandomSampler(1, 42)
	smp.StartPixel(0, 0)

	ray := core.NewRay(core.NewVec3(0, 3, 0), core.NewVec3(0, -1, 0), 0)
	got := pt.RayColor(ray, s, smp)

	// brdf * li * cosθ / pdf = (albedo/π) * (I/d²) * 1 / 1
	expected := albedo.Multiply(1.0 / math.Pi).MultiplyVec(intensity.Multiply(1.0 / 25.0))
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestPathTracing_ShadowedPointLight(t *testing.T) {
	s := scene.NewScene()
	s.AddShape(scene.NewGroundQuad(core.NewVec3(0, 0, 0), 100, material.NewLambertian(core.NewVec3(0.6, 0.6, 0.6))))

	// Light off to the side; the blocker sits on the shadow segment but
	// clear of the vertical camera ray
	s.AddShape(geometry.NewSphere(core.NewVec3(2.5, 2.5, 0), 0.8, material.NewLambertian(core.NewVec3(0.1, 0.1, 0.1))))
	s.AddLight(lights.NewPointLight(core.NewVec3(5, 5, 0), core.NewVec3(50, 50, 50)))
	s.Preprocess()

	pt := NewPathTracingIntegrator(Config{MaxDepth: 1, RussianRouletteMinBounces: 100})
	smp := sampler.NewRandomSampler(1, 42)
	smp.StartPixel(0, 0)

	ray := core.NewRay(core.NewVec3(0, 3, 0), core.NewVec3(0, -1, 0), 0)
	if got := pt.RayColor(ray, s, smp); !got.IsZero() {
		t.Errorf("Expected zero radiance in shadow, got %v", got)
	}
}

func TestPathTracing_EscapedRayCollectsInfiniteLight(t *testing.T) {
	top := core.NewVec3(0.2, 0.4, 0.8)
	bottom := core.NewVec3(1, 1, 1)

	s := scene.NewScene()
	// Geometry far away from the test ray so the world bound is non-empty
	s.AddShape(geometry.NewSphere(core.NewVec3(100, 0, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	s.AddLight(lights.NewGradientInfiniteLight(top, bottom))
	s.Preprocess()

	pt := NewPathTracingIntegrator(Config{MaxDepth: 5, RussianRouletteMinBounces: 100})
	smp := sampler.NewRandomSampler(1, 42)
	smp.StartPixel(0, 0)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 0)
	got := pt.RayColor(ray, s, smp)

	if got.Subtract(top).Length() > 1e-9 {
		t.Errorf("Expected escaped ray to collect %v, got %v", top, got)
	}
}

func TestPathTracing_DepthZeroGathersNothing(t *testing.T) {
	s := scene.NewScene()
	s.AddLight(lights.NewGradientInfiniteLight(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1)))
	s.Preprocess()

	pt := NewPathTracingIntegrator(Config{MaxDepth: 0, RussianRouletteMinBounces: 100})
	smp := sampler.NewRandomSampler(1, 42)
	smp.StartPixel(0, 0)

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0), 0)
	if got := pt.RayColor(ray, s, smp); !got.IsZero() {
		t.Errorf("Expected no light at depth 0, got %v", got)
	}
}

func TestPathTracing_EmissiveSurfaceSeenDirectly(t *testing.T) {
	emission := core.NewVec3(4, 4, 4)
	s := scene.NewScene()
	s.AddAreaLight(lights.NewQuadAreaLight(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 2, 0),
		material.NewEmissive(emission),
	))
	s.Preprocess()

	pt := NewPathTracingIntegrator(Config{MaxDepth: 3, RussianRouletteMinBounces: 100})
	smp := sampler.NewRandomSampler(1, 42)
	smp.StartPixel(0, 0)

	// Looking at the emitting face
	front := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1), 0)
	if got := pt.RayColor(front, s, smp); got.Subtract(emission).Length() > 1e-9 {
		t.Errorf("Expected emission %v seen head-on, got %v", emission, got)
	}

	// Looking at the back face of the one-sided emitter
	back := core.NewRay(core.NewVec3(0, 0, -2), core.NewVec3(0, 0, 1), 0)
	if got := pt.RayColor(back, s, smp); !got.IsZero() {
		t.Errorf("Expected nothing from the back face, got %v", got)
	}
}

func TestPathTracing_PassThroughSurface(t *testing.T) {
	top := core.NewVec3(0.3, 0.3, 0.3)
	s := scene.NewScene()
	// A material-less boundary must not block the path
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 3, 0), 1, nil))
	s.AddLight(lights.NewGradientInfiniteLight(top, top))
	s.Preprocess()

	pt := NewPathTracingIntegrator(Config{MaxDepth: 5, RussianRouletteMinBounces: 100})
	smp := sampler.NewRandomSampler(1, 42)
	smp.StartPixel(0, 0)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 0)
	if got := pt.RayColor(ray, s, smp); got.Subtract(top).Length() > 1e-9 {
		t.Errorf("Expected the path to pass through the boundary and reach %v, got %v", top, got)
	}
}
