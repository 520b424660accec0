package scene

import (
	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/geometry"
	"github.com/lucent-render/lucent/pkg/lights"
	"github.com/lucent-render/lucent/pkg/material"
)

// NewDefaultScene creates an open outdoor-style scene that exercises several
// light variants: a gradient sky, a sun-like distant light, a spot light, and
// a spherical area light
func NewDefaultScene() *Scene {
	s := NewScene()

	// Ground
	s.AddShape(NewGroundQuad(
		core.NewVec3(0, 0, 0), 100,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)),
	))

	// Center sphere: diffuse
	s.AddShape(geometry.NewSphere(
		core.NewVec3(0, 1, 0), 1,
		material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)),
	))

	// Left sphere: glass
	s.AddShape(geometry.NewSphere(
		core.NewVec3(-2.2, 1, 0), 1,
		material.NewDielectric(1.5),
	))

	// Right sphere: metal
	s.AddShape(geometry.NewSphere(
		core.NewVec3(2.2, 1, 0), 1,
		material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.1),
	))

	// Gradient sky
	s.AddLight(lights.NewGradientInfiniteLight(
		core.NewVec3(0.5, 0.7, 1.0), // Sky blue at the top
		core.NewVec3(1.0, 1.0, 1.0), // White at the horizon
	))

	// Sun: distant light angled from above
	s.AddLight(lights.NewDistantLight(
		core.NewVec3(-0.4, -1, -0.2),
		core.NewVec3(3.0, 2.9, 2.6),
	))

	// Spot light aimed at the center sphere
	s.AddLight(lights.NewSpotLight(
		core.NewVec3(4, 6, 4),          // from
		core.NewVec3(0, 1, 0),          // to
		core.NewVec3(40.0, 40.0, 40.0), // intensity
		30.0,                           // cone angle
		10.0,                           // falloff transition
	))

	// Small emissive sphere hovering behind the spheres
	s.AddAreaLight(lights.NewSphereAreaLight(
		core.NewVec3(0, 3.5, -2.5), 0.4,
		material.NewEmissive(core.NewVec3(12.0, 10.0, 8.0)),
	))

	return s
}
