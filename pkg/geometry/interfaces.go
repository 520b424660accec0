package geometry

import (
	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit must be safe for concurrent use: rendering workers intersect shared
// shapes simultaneously and shapes never mutate after construction.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool)
	BoundingBox() AABB
}
