package scene

import (
	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/geometry"
	"github.com/lucent-render/lucent/pkg/lights"
	"github.com/lucent-render/lucent/pkg/material"
)

// NewCornellScene creates a classic Cornell box with quad walls, a ceiling
// area light, and two spheres
func NewCornellScene() *Scene {
	s := NewScene()

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	// Standard 555-unit box
	boxSize := 555.0

	// Floor (white) - XZ plane at y=0
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	))

	// Ceiling (white) - XZ plane at y=boxSize
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	))

	// Back wall (white) - XY plane at z=boxSize
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		white,
	))

	// Left wall (red) - YZ plane at x=0
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
		red,
	))

	// Right wall (green) - YZ plane at x=boxSize
	s.AddShape(geometry.NewQuad(
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(0, 0, boxSize),
		green,
	))

	// Ceiling light: a smaller quad slightly below the ceiling, emitting down.
	// u × v is chosen so the quad normal points into the box.
	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	emission := material.NewEmissive(core.NewVec3(15.0, 15.0, 15.0))
	s.AddAreaLight(lights.NewQuadAreaLight(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		emission,
	))

	// Left sphere: shiny metal
	s.AddShape(geometry.NewSphere(
		core.NewVec3(185, 82.5, 169),
		82.5,
		material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.0),
	))

	// Right sphere: glass
	s.AddShape(geometry.NewSphere(
		core.NewVec3(370, 90, 351),
		90,
		material.NewDielectric(1.5),
	))

	return s
}
