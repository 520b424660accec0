// Package scene assembles geometry and lights into the read-only world the
// integrator and the lights package query during rendering.
package scene

import (
	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/geometry"
	"github.com/lucent-render/lucent/pkg/lights"
	"github.com/lucent-render/lucent/pkg/material"
)

// Scene contains all the elements needed for rendering. Build it with Add
// calls, run Preprocess once, then treat it as read-only: every query method
// is safe for concurrent use after preprocessing.
type Scene struct {
	shapes       []geometry.Shape
	lightList    []lights.Light
	bvh          *geometry.BVH
	lightSampler lights.LightSampler

	worldCenter core.Vec3
	worldRadius float64

	preprocessed bool
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{}
}

// AddShape adds a shape to the scene
func (s *Scene) AddShape(shape geometry.Shape) {
	s.shapes = append(s.shapes, shape)
	s.preprocessed = false
}

// AddLight adds a light to the scene. Area lights that are also shapes must
// be added with AddAreaLight so their geometry participates in intersection.
func (s *Scene) AddLight(light lights.Light) {
	s.lightList = append(s.lightList, light)
	s.preprocessed = false
}

// AddAreaLight adds a light that is also scene geometry, registering it with
// both the shape list and the light list
func (s *Scene) AddAreaLight(light lights.AreaLight) {
	if shape, ok := light.(geometry.Shape); ok {
		s.shapes = append(s.shapes, shape)
	}
	s.lightList = append(s.lightList, light)
	s.preprocessed = false
}

// Preprocess builds the acceleration structure, lets every light capture the
// world bounds, and constructs the light sampler. It must run once before
// rendering; calling it again only recomputes the same state.
func (s *Scene) Preprocess() {
	s.bvh = geometry.NewBVH(s.shapes)
	s.worldCenter, s.worldRadius = s.bvh.WorldBound().BoundingSphere()

	// Lights preprocess sequentially, before any worker can query them
	for _, light := range s.lightList {
		light.Preprocess(s)
	}

	s.lightSampler = lights.NewPowerLightSampler(s.lightList)
	s.preprocessed = true
}

// Intersect returns the closest surface intersection within (tMin, tMax)
func (s *Scene) Intersect(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	if s.bvh == nil {
		return nil, false
	}
	return s.bvh.Hit(ray, tMin, tMax)
}

// IntersectP reports whether any intersection exists within (tMin, tMax)
func (s *Scene) IntersectP(ray core.Ray, tMin, tMax float64) bool {
	if s.bvh == nil {
		return false
	}
	return s.bvh.HitP(ray, tMin, tMax)
}

// WorldBound returns the bounding sphere of the scene geometry
func (s *Scene) WorldBound() (core.Vec3, float64) {
	return s.worldCenter, s.worldRadius
}

// PrimitiveCount returns the number of primitives in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.shapes)
}

// Lights returns the scene's lights
func (s *Scene) Lights() []lights.Light {
	return s.lightList
}

// LightSampler returns the sampler built during preprocessing, nil before
// Preprocess has run
func (s *Scene) LightSampler() lights.LightSampler {
	return s.lightSampler
}

// NewGroundQuad creates a large horizontal quad centered at the given point
// with its normal pointing up, used in place of infinite ground planes
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0), so the normal points up
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, mat)
}
