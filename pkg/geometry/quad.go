package geometry

import (
	"math"

	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/material"
)

// Quad represents a rectangular surface defined by a corner and two edge
// vectors. A nil material marks the surface as pass-through.
type Quad struct {
	Corner   core.Vec3 // One corner of the quad
	U        core.Vec3 // First edge vector
	V        core.Vec3 // Second edge vector
	Normal   core.Vec3 // Normal vector (computed from U × V)
	Material material.Material
	D        float64   // Plane equation constant: ax + by + cz = d
	W        core.Vec3 // Cached cross product for barycentric coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	normal := u.Cross(v).Normalize()
	d := normal.Dot(corner)

	// w = normal / (normal · (u × v)), used for barycentric coordinates
	cross := u.Cross(v)
	w := normal.Multiply(1.0 / normal.Dot(cross))

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: mat,
		D:        d,
		W:        w,
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	denominator := ray.Direction.Dot(q.Normal)

	// Ray parallel to the quad plane
	if math.Abs(denominator) < 1e-12 {
		return nil, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hitPoint := ray.At(t)
	hitVector := hitPoint.Subtract(q.Corner)

	// Barycentric coordinates within the quad
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))

	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	hit := &material.SurfaceInteraction{
		Interaction: core.Interaction{
			P:      hitPoint,
			PError: hitPoint.Abs().Multiply(core.Gamma(5)),
			Wo:     ray.Direction.Negate().Normalize(),
			Time:   ray.Time,
		},
		T:        t,
		Material: q.Material,
	}
	hit.SetFaceNormal(ray, q.Normal)

	return hit, true
}

// BoundingBox returns the axis-aligned bounding box for this quad
func (q *Quad) BoundingBox() AABB {
	p0 := q.Corner
	p1 := q.Corner.Add(q.U)
	p2 := q.Corner.Add(q.V)
	p3 := q.Corner.Add(q.U).Add(q.V)
	// Pad slightly so axis-aligned quads don't produce a degenerate box
	box := NewAABBFromPoints(p0, p1, p2, p3)
	return NewAABB(
		box.Min.Subtract(core.NewVec3(1e-4, 1e-4, 1e-4)),
		box.Max.Add(core.NewVec3(1e-4, 1e-4, 1e-4)),
	)
}

// Area returns the surface area of the quad: |u × v|
func (q *Quad) Area() float64 {
	return q.U.Cross(q.V).Length()
}
