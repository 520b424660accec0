package lights

import (
	"testing"

	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/geometry"
	"github.com/lucent-render/lucent/pkg/material"
	"github.com/lucent-render/lucent/pkg/sampler"
)

func testVisibility(from, to core.Vec3) VisibilityTester {
	return VisibilityTester{
		P0: core.NewPointInteraction(from, 0),
		P1: core.NewPointInteraction(to, 0),
	}
}

func TestVisibility_UnoccludedEmptyScene(t *testing.T) {
	vis := testVisibility(core.NewVec3(0, 0, 0), core.NewVec3(0, 5, 0))
	if !vis.Unoccluded(newTestScene()) {
		t.Error("Expected unoccluded segment in empty scene")
	}
}

func TestVisibility_OccludedByOpaqueSphere(t *testing.T) {
	// Opaque unit sphere halfway along the segment
	blocker := geometry.NewSphere(core.NewVec3(0, 2, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	scene := newTestScene(blocker)

	vis := testVisibility(core.NewVec3(0, 0, 0), core.NewVec3(0, 5, 0))
	if vis.Unoccluded(scene) {
		t.Error("Expected occlusion by the sphere between the endpoints")
	}
}

func TestVisibility_GeometryBeyondTargetIgnored(t *testing.T) {
	// Sphere past the far endpoint must not occlude: the segment ends at t=1
	beyond := geometry.NewSphere(core.NewVec3(0, 8, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	scene := newTestScene(beyond)

	vis := testVisibility(core.NewVec3(0, 0, 0), core.NewVec3(0, 5, 0))
	if !vis.Unoccluded(scene) {
		t.Error("Expected geometry beyond the target to be ignored")
	}
}

func TestVisibility_TrIdentityWhenClear(t *testing.T) {
	smp := sampler.NewRandomSampler(1, 0)
	vis := testVisibility(core.NewVec3(0, 0, 0), core.NewVec3(0, 5, 0))

	tr := vis.Tr(newTestScene(), smp)
	if tr != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected identity transmittance, got %v", tr)
	}
}

func TestVisibility_TrZeroThroughOpaque(t *testing.T) {
	smp := sampler.NewRandomSampler(1, 0)
	blocker := geometry.NewSphere(core.NewVec3(0, 2, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	scene := newTestScene(blocker)

	vis := testVisibility(core.NewVec3(0, 0, 0), core.NewVec3(0, 5, 0))
	if tr := vis.Tr(scene, smp); !tr.IsZero() {
		t.Errorf("Expected zero transmittance through opaque sphere, got %v", tr)
	}
}

func TestVisibility_TrPassesThroughNilMaterial(t *testing.T) {
	smp := sampler.NewRandomSampler(1, 0)

	// Surfaces without a material are transparent boundaries
	boundary := geometry.NewSphere(core.NewVec3(0, 2, 0), 1, nil)
	scene := newTestScene(boundary)

	vis := testVisibility(core.NewVec3(0, 0, 0), core.NewVec3(0, 5, 0))
	tr := vis.Tr(scene, smp)
	if tr != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected identity transmittance through pass-through sphere, got %v", tr)
	}
}

func TestVisibility_TrMixedSurfaces(t *testing.T) {
	smp := sampler.NewRandomSampler(1, 0)

	// Pass-through boundary in front of an opaque blocker
	boundary := geometry.NewSphere(core.NewVec3(0, 1.5, 0), 0.5, nil)
	blocker := geometry.NewSphere(core.NewVec3(0, 3.5, 0), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	scene := newTestScene(boundary, blocker)

	vis := testVisibility(core.NewVec3(0, 0, 0), core.NewVec3(0, 5, 0))
	if tr := vis.Tr(scene, smp); !tr.IsZero() {
		t.Errorf("Expected the opaque surface behind the boundary to block, got %v", tr)
	}
}

func TestVisibility_TrSegmentCap(t *testing.T) {
	smp := sampler.NewRandomSampler(1, 0)

	// A scene that under-reports its primitive count forces the cap: the
	// pass-through sphere respawns the segment more times than allowed
	boundary := geometry.NewSphere(core.NewVec3(0, 2, 0), 1, nil)
	inner := newTestScene(boundary)
	capped := &testScene{bvh: inner.bvh, center: inner.center, radius: inner.radius, count: 0}

	vis := testVisibility(core.NewVec3(0, 0, 0), core.NewVec3(0, 5, 0))
	if tr := vis.Tr(capped, smp); !tr.IsZero() {
		t.Errorf("Expected zero transmittance when the segment cap is exceeded, got %v", tr)
	}
}
