package scene

import (
	"math"
	"testing"

	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/geometry"
	"github.com/lucent-render/lucent/pkg/lights"
	"github.com/lucent-render/lucent/pkg/material"
)

func TestScene_Preprocess(t *testing.T) {
	s := NewScene()
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(10, 10, 10)))

	if s.LightSampler() != nil {
		t.Error("Expected no light sampler before preprocessing")
	}

	s.Preprocess()

	if s.LightSampler() == nil {
		t.Fatal("Expected a light sampler after preprocessing")
	}
	if s.LightSampler().LightCount() != 1 {
		t.Errorf("Expected 1 light, got %d", s.LightSampler().LightCount())
	}

	center, radius := s.WorldBound()
	if center.Length() > 1e-9 {
		t.Errorf("Expected world center at origin, got %v", center)
	}
	if radius <= 0 {
		t.Errorf("Expected positive world radius, got %v", radius)
	}
}

func TestScene_Intersect(t *testing.T) {
	s := NewScene()
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	s.Preprocess()

	hit, ok := s.Intersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1), 0), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected intersection with the sphere")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got %v", hit.T)
	}

	if s.IntersectP(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0), 0), 0.001, math.Inf(1)) {
		t.Error("Expected no intersection upward")
	}
}

func TestScene_AddAreaLightRegistersGeometry(t *testing.T) {
	s := NewScene()
	s.AddAreaLight(lights.NewQuadAreaLight(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 2, 0),
		material.NewEmissive(core.NewVec3(5, 5, 5)),
	))
	s.Preprocess()

	if s.PrimitiveCount() != 1 {
		t.Errorf("Expected the area light's geometry among the primitives, got %d", s.PrimitiveCount())
	}
	if len(s.Lights()) != 1 {
		t.Errorf("Expected 1 light, got %d", len(s.Lights()))
	}

	// The light's surface must be hittable
	if !s.IntersectP(core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1), 0), 0.001, math.Inf(1)) {
		t.Error("Expected the area light geometry to intersect")
	}
}

func TestScene_PreprocessIdempotent(t *testing.T) {
	s := NewScene()
	s.AddShape(geometry.NewSphere(core.NewVec3(1, 2, 3), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	s.AddLight(lights.NewDistantLight(core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)))

	s.Preprocess()
	c1, r1 := s.WorldBound()
	s.Preprocess()
	c2, r2 := s.WorldBound()

	if c1 != c2 || r1 != r2 {
		t.Errorf("Preprocess is not idempotent: (%v, %v) vs (%v, %v)", c1, r1, c2, r2)
	}
}

func TestCornellScene(t *testing.T) {
	s := NewCornellScene()
	s.Preprocess()

	if len(s.Lights()) != 1 {
		t.Errorf("Expected 1 light in the Cornell box, got %d", len(s.Lights()))
	}
	// 5 walls + light quad + 2 spheres
	if s.PrimitiveCount() != 8 {
		t.Errorf("Expected 8 primitives, got %d", s.PrimitiveCount())
	}

	// A ray through the box must hit the back wall
	hit, ok := s.Intersect(core.NewRay(core.NewVec3(278, 278, -800), core.NewVec3(0, 0, 1), 0), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected a hit through the open side of the box")
	}
	if hit.T <= 0 {
		t.Errorf("Expected positive hit distance, got %v", hit.T)
	}
}

func TestDefaultScene(t *testing.T) {
	s := NewDefaultScene()
	s.Preprocess()

	if len(s.Lights()) != 4 {
		t.Errorf("Expected 4 lights in the default scene, got %d", len(s.Lights()))
	}
	if s.PrimitiveCount() == 0 {
		t.Error("Expected geometry in the default scene")
	}
}

func TestNewGroundQuad(t *testing.T) {
	quad := NewGroundQuad(core.NewVec3(0, 2, 0), 10, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	if quad.Normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-9 {
		t.Errorf("Expected upward normal, got %v", quad.Normal)
	}

	// Ray from above must hit the plane at y=2
	hit, ok := quad.Hit(core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0), 0), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit on the ground quad")
	}
	if math.Abs(hit.P.Y-2) > 1e-9 {
		t.Errorf("Expected hit at y=2, got %v", hit.P.Y)
	}
}
