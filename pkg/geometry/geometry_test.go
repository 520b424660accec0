package geometry

import (
	"math"
	"testing"

	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/material"
)

func testMaterial() material.Material {
	return material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
}

func TestSphere_Hit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1, testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)

	hit, ok := sphere.Hit(ray, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected ray to hit the sphere")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got %v", hit.T)
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit from outside")
	}
	expectedNormal := core.NewVec3(0, 0, 1)
	if hit.N.Subtract(expectedNormal).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", expectedNormal, hit.N)
	}
	if hit.PError.IsZero() {
		t.Error("Expected a non-zero position error bound")
	}
}

func TestSphere_HitFromInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2, testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)

	hit, ok := sphere.Hit(ray, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected ray to hit the sphere from inside")
	}
	if hit.FrontFace {
		t.Error("Expected back face hit from inside")
	}
	// Normal flipped to oppose the ray
	if hit.N.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected flipped normal (0,0,1), got %v", hit.N)
	}
}

func TestSphere_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 5, 0), 1, testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 0)

	if _, ok := sphere.Hit(ray, 0.001, math.Inf(1)); ok {
		t.Error("Expected ray to miss the sphere")
	}
}

func TestQuad_Hit(t *testing.T) {
	quad := NewQuad(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 2, 0),
		testMaterial(),
	)

	hit, ok := quad.Hit(core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1), 0), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected ray to hit the quad")
	}
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected t=3, got %v", hit.T)
	}

	// Just outside a corner
	if _, ok := quad.Hit(core.NewRay(core.NewVec3(1.1, 1.1, -3), core.NewVec3(0, 0, 1), 0), 0.001, math.Inf(1)); ok {
		t.Error("Expected ray outside the quad bounds to miss")
	}

	// Parallel to the plane
	if _, ok := quad.Hit(core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(1, 0, 0), 0), 0.001, math.Inf(1)); ok {
		t.Error("Expected parallel ray to miss")
	}
}

func TestQuad_Area(t *testing.T) {
	quad := NewQuad(core.Vec3{}, core.NewVec3(2, 0, 0), core.NewVec3(0, 3, 0), testMaterial())
	if got := quad.Area(); math.Abs(got-6) > 1e-9 {
		t.Errorf("Expected area 6, got %v", got)
	}
}

func TestTriangle_Hit(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 2, 0),
		testMaterial(),
	)

	hit, ok := tri.Hit(core.NewRay(core.NewVec3(0, 0.5, -2), core.NewVec3(0, 0, 1), 0), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected ray to hit the triangle")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got %v", hit.T)
	}

	if _, ok := tri.Hit(core.NewRay(core.NewVec3(2, 2, -2), core.NewVec3(0, 0, 1), 0), 0.001, math.Inf(1)); ok {
		t.Error("Expected ray outside the triangle to miss")
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))

	if !box.Hit(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), 0), 0.001, math.Inf(1)) {
		t.Error("Expected ray through the box center to hit")
	}
	if box.Hit(core.NewRay(core.NewVec3(0, 5, -5), core.NewVec3(0, 0, 1), 0), 0.001, math.Inf(1)) {
		t.Error("Expected ray above the box to miss")
	}
}

func TestAABB_BoundingSphere(t *testing.T) {
	box := NewAABB(core.NewVec3(-2, -2, -2), core.NewVec3(2, 2, 2))
	center, radius := box.BoundingSphere()

	if center.Length() > 1e-9 {
		t.Errorf("Expected center at origin, got %v", center)
	}
	expected := math.Sqrt(12)
	if math.Abs(radius-expected) > 1e-9 {
		t.Errorf("Expected radius %v, got %v", expected, radius)
	}
}

func TestBVH_ClosestHit(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -3), 1, testMaterial())
	far := NewSphere(core.NewVec3(0, 0, -10), 1, testMaterial())
	bvh := NewBVH([]Shape{far, near})

	hit, ok := bvh.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected a hit")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected the nearer sphere at t=2, got t=%v", hit.T)
	}
}

func TestBVH_HitP(t *testing.T) {
	shapes := make([]Shape, 0, 20)
	for i := 0; i < 20; i++ {
		shapes = append(shapes, NewSphere(core.NewVec3(float64(i*3), 0, -5), 1, testMaterial()))
	}
	bvh := NewBVH(shapes)

	if !bvh.HitP(core.NewRay(core.NewVec3(30, 0, 0), core.NewVec3(0, 0, -1), 0), 0.001, math.Inf(1)) {
		t.Error("Expected HitP to report the sphere at x=30")
	}
	if bvh.HitP(core.NewRay(core.NewVec3(-10, 0, 0), core.NewVec3(0, 0, -1), 0), 0.001, math.Inf(1)) {
		t.Error("Expected HitP to miss away from all spheres")
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	if _, ok := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1), 0), 0.001, math.Inf(1)); ok {
		t.Error("Expected no hit in empty BVH")
	}
	if bvh.HitP(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1), 0), 0.001, math.Inf(1)) {
		t.Error("Expected HitP false in empty BVH")
	}
}
