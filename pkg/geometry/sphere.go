package geometry

import (
	"math"

	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/material"
)

// Sphere represents a sphere shape. A nil material marks the surface as
// pass-through for transmittance queries.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	// Find the nearest intersection point within the valid range
	sqrtD := math.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	p := ray.At(root)
	hit := &material.SurfaceInteraction{
		Interaction: core.Interaction{
			P:      p,
			PError: p.Abs().Multiply(core.Gamma(5)),
			Wo:     ray.Direction.Negate().Normalize(),
			Time:   ray.Time,
		},
		T:        root,
		Material: s.Material,
	}

	// Outward normal points from center to hit point
	outwardNormal := p.Subtract(s.Center).Multiply(1.0 / s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)

	return hit, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// Area returns the surface area of the sphere
func (s *Sphere) Area() float64 {
	return 4.0 * math.Pi * s.Radius * s.Radius
}
