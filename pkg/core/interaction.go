package core

import "math"

// ShadowEpsilon trims the parametric range of visibility rays so they do not
// report the surfaces at their own endpoints.
const ShadowEpsilon = 1e-4

const machineEpsilon = 0x1p-53

// Gamma returns the conservative floating-point error bound (1±ε)ⁿ - 1 used
// to size position error bounds on intersection points.
func Gamma(n int) float64 {
	ne := float64(n) * machineEpsilon
	return ne / (1 - ne)
}

// Interaction is the minimal record shared by everything that names a point
// in the scene: intersection points, shading points and points sampled on
// lights. It is immutable once created and copied by value.
type Interaction struct {
	P      Vec3    // Position
	PError Vec3    // Conservative bound on the error in P
	Wo     Vec3    // Outgoing direction (zero for non-surface points)
	N      Vec3    // Surface normal (zero for non-surface points)
	Time   float64 // Time associated with the point
}

// NewInteraction creates a full surface interaction record
func NewInteraction(p, pError, wo, n Vec3, time float64) Interaction {
	return Interaction{P: p, PError: pError, Wo: wo, N: n, Time: time}
}

// NewPointInteraction creates the degenerate record used for points that lie
// on no surface, such as the position of a point light
func NewPointInteraction(p Vec3, time float64) Interaction {
	return Interaction{P: p, Time: time}
}

// OffsetRayOrigin nudges p along the normal, far enough to clear the
// floating-point error bound on p, on the side the direction w leaves from.
func OffsetRayOrigin(p, pError, n, w Vec3) Vec3 {
	d := n.Abs().Dot(pError)
	offset := n.Multiply(d)
	if w.Dot(n) < 0 {
		offset = offset.Negate()
	}
	return p.Add(offset)
}

// SpawnRay returns a ray leaving the interaction point in direction d,
// with its origin offset to avoid false self-intersection
func (it Interaction) SpawnRay(d Vec3) Ray {
	origin := OffsetRayOrigin(it.P, it.PError, it.N, d)
	return NewRay(origin, d, it.Time)
}

// SpawnRayTo returns a segment ray from this interaction toward target, with
// both endpoints nudged along their error bounds. The direction is left
// unnormalized so the target point sits at t=1; visibility tests intersect
// over (ShadowEpsilon, 1-ShadowEpsilon) to exclude both endpoint surfaces.
func (it Interaction) SpawnRayTo(target Interaction) Ray {
	origin := OffsetRayOrigin(it.P, it.PError, it.N, target.P.Subtract(it.P))
	dest := OffsetRayOrigin(target.P, target.PError, target.N, it.P.Subtract(target.P))
	return NewRay(origin, dest.Subtract(origin), it.Time)
}

// SafePdf maps non-finite probability densities to zero. A NaN or infinite
// density means the sample is unusable this call, not that rendering failed.
func SafePdf(pdf float64) float64 {
	if math.IsNaN(pdf) || math.IsInf(pdf, 0) {
		return 0
	}
	return pdf
}
