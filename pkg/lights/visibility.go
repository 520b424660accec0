package lights

import (
	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/sampler"
)

// VisibilityTester is a deferred occlusion query between two interaction
// points: P0 at the shading point and P1 at (or along) the light. A light's
// sampling routine constructs it and the integrator resolves it later, so
// occluded samples can be discarded without the light knowing about the
// scene. Immutable once constructed and cheap to copy.
type VisibilityTester struct {
	P0, P1 core.Interaction
}

// Unoccluded reports whether the segment between the two points is free of
// geometry. Both endpoints are nudged along their error bounds so the test
// never reports the endpoint surfaces themselves.
func (v VisibilityTester) Unoccluded(scene Scene) bool {
	ray := v.P0.SpawnRayTo(v.P1)
	return !scene.IntersectP(ray, core.ShadowEpsilon, 1-core.ShadowEpsilon)
}

// Tr returns the transmittance between the two points: the identity value
// when the segment is clear, zero when any material-bearing surface blocks
// it. Surfaces without a material are treated as transparent boundaries and
// stepped through. Media attenuation across stepped segments is not applied
// yet, so the accumulated value stays at identity.
//
// Each pass-through hit strictly advances the segment origin toward P1, so
// the loop is bounded by the number of surfaces in between; the primitive-
// count cap converts geometric degeneracies into "fully blocked" instead of
// an unbounded loop.
func (v VisibilityTester) Tr(scene Scene, _ sampler.Sampler) core.Vec3 {
	tr := core.NewVec3(1, 1, 1)
	ray := v.P0.SpawnRayTo(v.P1)
	// Closed surfaces cross the segment twice, once per side
	maxSegments := 2*scene.PrimitiveCount() + 2

	for i := 0; ; i++ {
		if i >= maxSegments {
			return core.Vec3{}
		}

		hit, ok := scene.Intersect(ray, core.ShadowEpsilon, 1-core.ShadowEpsilon)
		if !ok {
			break
		}
		if hit.Material != nil {
			// Opaque surface along the segment
			return core.Vec3{}
		}

		// Transparent boundary: restart the segment from the hit point,
		// keeping the hit's own error bound for the new origin offset
		ray = hit.Interaction.SpawnRayTo(v.P1)
	}

	return tr
}
