// Package lights implements the light sources of the renderer and the
// deferred visibility queries that connect them to shading points.
package lights

import (
	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/material"
)

// LightFlags classifies a light's sampling characteristics. The flags are
// fixed for the lifetime of a light instance.
type LightFlags int

const (
	// DeltaPosition marks lights concentrated at a single point
	DeltaPosition LightFlags = 1 << iota
	// DeltaDirection marks lights emitting along a single direction
	DeltaDirection
	// Area marks lights defined by an emissive surface
	Area
	// Infinite marks environment lights infinitely far away
	Infinite
)

// IsDeltaLight reports whether the light occupies zero geometric measure: a
// single point or a single direction. Such lights can never be hit by a
// finite-measure sampling strategy, so the integrator must always sample
// them explicitly, and MIS reweighting degenerates to pure light sampling.
func IsDeltaLight(flags LightFlags) bool {
	return flags&DeltaPosition != 0 || flags&DeltaDirection != 0
}

// Scene is the read-only view of the scene that lights and visibility
// testers consume. All methods must be safe for concurrent use once
// preprocessing has run.
type Scene interface {
	// Intersect returns the closest surface intersection within (tMin, tMax)
	Intersect(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool)

	// IntersectP reports whether any intersection exists within (tMin, tMax);
	// cheaper than Intersect because it can stop at the first hit
	IntersectP(ray core.Ray, tMin, tMax float64) bool

	// WorldBound returns the bounding sphere of the scene geometry
	WorldBound() (center core.Vec3, radius float64)

	// PrimitiveCount returns the number of primitives in the scene
	PrimitiveCount() int
}

// Light is the capability set every light variant implements. Sampling
// routines must not mutate shared state: lights are shared read-only across
// rendering workers after Preprocess has run once.
//
// Every density returned alongside a sampled direction or point is
// consistent with the distribution used to draw that sample; SampleLi
// densities are in solid-angle measure at the reference point, SampleLe
// position densities in area measure and direction densities in solid-angle
// measure.
type Light interface {
	// SampleLi samples a direction from ref toward the light. It returns
	// the incident radiance along that direction ignoring occlusion, the
	// direction, its density, and a VisibilityTester the caller resolves
	// against the scene separately. A zero-length direction (reference
	// point on the light) yields pdf 0 and zero radiance.
	SampleLi(ref core.Interaction, u core.Vec2) (li core.Vec3, wi core.Vec3, pdf float64, vis VisibilityTester)

	// Power returns the approximate total emitted power, used for
	// power-weighted light selection. Not exact, but non-negative and
	// monotonic with visual brightness.
	Power() core.Vec3

	// Preprocess runs once, sequentially, before rendering begins.
	// Idempotent: calling it again only recomputes the same state.
	Preprocess(scene Scene)

	// Le returns the radiance contributed by a ray that escapes the scene;
	// zero for all variants except infinite lights
	Le(ray core.Ray) core.Vec3

	// PdfLi returns the density SampleLi would have assigned to wi from
	// ref, in solid-angle measure; zero for delta lights
	PdfLi(ref core.Interaction, wi core.Vec3) float64

	// SampleLe samples a ray leaving the light, with separate position
	// (area measure) and direction (solid-angle measure) densities
	SampleLe(uPos, uDir core.Vec2, time float64) (le core.Vec3, ray core.Ray, nLight core.Vec3, pdfPos, pdfDir float64)

	// PdfLe returns the densities SampleLe would have produced for this ray
	PdfLe(ray core.Ray, nLight core.Vec3) (pdfPos, pdfDir float64)

	// Flags returns the light's classification bits
	Flags() LightFlags

	// NumSamples returns the suggested number of samples to take from this
	// light per pixel sample
	NumSamples() int
}

// AreaLight extends Light for lights defined by an emissive surface
type AreaLight interface {
	Light

	// L returns the radiance leaving the surface point intr in direction w;
	// zero on the back side for one-sided emitters
	L(intr core.Interaction, w core.Vec3) core.Vec3
}
