package integrator

import (
	"math"

	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/lights"
	"github.com/lucent-render/lucent/pkg/material"
	"github.com/lucent-render/lucent/pkg/sampler"
)

// PathTracingIntegrator implements unidirectional path tracing with next
// event estimation: at each diffuse bounce it samples a light directly and
// combines that estimate with the BSDF-sampled continuation using multiple
// importance sampling.
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// RayColor computes the radiance arriving along a camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene Scene, smp sampler.Sampler) core.Vec3 {
	return pt.rayColor(ray, scene, smp, pt.config.MaxDepth, core.NewVec3(1, 1, 1))
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, scene Scene, smp sampler.Sampler, depth int, throughput core.Vec3) core.Vec3 {
	// Ray bounce limit reached, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	shouldTerminate, rrCompensation := pt.applyRussianRoulette(depth, throughput, smp)
	if shouldTerminate {
		return core.Vec3{}
	}

	hit, isHit := pt.intersect(scene, ray)
	if !isHit {
		return pt.escapedRadiance(ray, scene).Multiply(rrCompensation)
	}

	// Emitted light from the hit surface; emissive surfaces are one-sided
	var colorEmitted core.Vec3
	if hit.FrontFace {
		colorEmitted = pt.getEmittedLight(ray, hit)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, smp.Get2D())
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return colorEmitted.Multiply(rrCompensation)
	}

	var colorScattered core.Vec3
	if scatter.IsSpecular() {
		newThroughput := throughput.MultiplyVec(scatter.Attenuation)
		colorScattered = scatter.Attenuation.MultiplyVec(
			pt.rayColor(scatter.Scattered, scene, smp, depth-1, newThroughput))
	} else {
		directLight := pt.calculateDirectLighting(scene, hit, smp)
		indirectLight := pt.calculateIndirectLighting(scene, scatter, hit, smp, depth, throughput)
		colorScattered = directLight.Add(indirectLight)
	}

	return colorEmitted.Add(colorScattered).Multiply(rrCompensation)
}

// intersect finds the closest opaque intersection, stepping through
// pass-through surfaces. The step count is capped so malformed geometry
// cannot loop forever.
func (pt *PathTracingIntegrator) intersect(scene Scene, ray core.Ray) (*material.SurfaceInteraction, bool) {
	maxSteps := 2*scene.PrimitiveCount() + 2
	for i := 0; i < maxSteps; i++ {
		hit, isHit := scene.Intersect(ray, core.ShadowEpsilon, math.Inf(1))
		if !isHit {
			return nil, false
		}
		if hit.Material != nil {
			return hit, true
		}
		ray = hit.Interaction.SpawnRay(ray.Direction)
	}
	return nil, false
}

// escapedRadiance sums the contribution of lights that illuminate rays
// leaving the scene, which is only ever non-zero for infinite lights
func (pt *PathTracingIntegrator) escapedRadiance(ray core.Ray, scene Scene) core.Vec3 {
	var le core.Vec3
	for _, light := range scene.Lights() {
		le = le.Add(light.Le(ray))
	}
	return le
}

// getEmittedLight returns the emitted light from a material if it's emissive
func (pt *PathTracingIntegrator) getEmittedLight(ray core.Ray, hit *material.SurfaceInteraction) core.Vec3 {
	if emitter, isEmissive := hit.Material.(material.Emitter); isEmissive {
		return emitter.Emit(ray)
	}
	return core.Vec3{}
}

// calculateDirectLighting samples a single light for next event estimation
func (pt *PathTracingIntegrator) calculateDirectLighting(scene Scene, hit *material.SurfaceInteraction, smp sampler.Sampler) core.Vec3 {
	lightSampler := scene.LightSampler()
	if lightSampler == nil || lightSampler.LightCount() == 0 {
		return core.Vec3{}
	}

	light, selectionPdf, _ := lightSampler.SampleLight(smp.Get1D())
	if light == nil || selectionPdf <= 0 {
		return core.Vec3{}
	}

	li, wi, pdf, vis := light.SampleLi(hit.Interaction, smp.Get2D())
	if pdf <= 0 || li.IsZero() {
		return core.Vec3{}
	}

	cosine := wi.Dot(hit.N)
	if cosine <= 0 {
		return core.Vec3{} // Light is behind the surface
	}

	// Resolve the deferred visibility query, including pass-through surfaces
	tr := vis.Tr(scene, smp)
	if tr.IsZero() {
		return core.Vec3{}
	}

	brdf := hit.Material.EvaluateBRDF(hit.Wo.Negate(), wi, hit)
	if brdf.IsZero() {
		return core.Vec3{}
	}

	// Delta lights cannot be reached by BSDF sampling, so the light sample
	// carries full weight
	lightPdf := pdf * selectionPdf
	misWeight := 1.0
	if !lights.IsDeltaLight(light.Flags()) {
		materialPdf, isDelta := hit.Material.PDF(hit.Wo.Negate(), wi, hit.N)
		if isDelta {
			materialPdf = 0
		}
		misWeight = core.PowerHeuristic(1, lightPdf, 1, materialPdf)
	}

	return brdf.MultiplyVec(li).MultiplyVec(tr).Multiply(cosine * misWeight / lightPdf)
}

// calculateIndirectLighting continues the path along the BSDF-sampled
// direction, reweighted against the light sampling strategy
func (pt *PathTracingIntegrator) calculateIndirectLighting(scene Scene, scatter material.ScatterResult, hit *material.SurfaceInteraction, smp sampler.Sampler, depth int, throughput core.Vec3) core.Vec3 {
	if scatter.PDF <= 0 {
		return core.Vec3{}
	}

	scatterDirection := scatter.Scattered.Direction.Normalize()
	cosine := scatterDirection.Dot(hit.N)
	if cosine <= 0 {
		return core.Vec3{}
	}

	// Density the light sampling strategy would have assigned to this
	// direction, for MIS reweighting
	lightPdf := lights.PdfLiCombined(scene.Lights(), scene.LightSampler(), hit.Interaction, scatterDirection)
	misWeight := core.PowerHeuristic(1, scatter.PDF, 1, lightPdf)

	newThroughput := throughput.MultiplyVec(scatter.Attenuation).Multiply(cosine / scatter.PDF)
	incomingLight := pt.rayColor(scatter.Scattered, scene, smp, depth-1, newThroughput)

	return scatter.Attenuation.Multiply(cosine * misWeight / scatter.PDF).MultiplyVec(incomingLight)
}

// applyRussianRoulette decides whether to terminate the path early and
// returns the energy compensation factor for survivors
func (pt *PathTracingIntegrator) applyRussianRoulette(depth int, throughput core.Vec3, smp sampler.Sampler) (bool, float64) {
	currentBounce := pt.config.MaxDepth - depth
	if currentBounce < pt.config.RussianRouletteMinBounces {
		return false, 1.0
	}

	// Survival probability follows throughput luminance, bounded so the
	// compensation factor stays between 1.05x and 2.0x
	survivalProb := math.Min(0.95, math.Max(0.5, throughput.Luminance()))

	if smp.Get1D() > survivalProb {
		return true, 0.0
	}
	return false, 1.0 / survivalProb
}
