package material

import (
	"math"

	"github.com/lucent-render/lucent/pkg/core"
)

// Dielectric represents a transparent material like glass or water
type Dielectric struct {
	RefractionIndex float64
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractionIndex float64) *Dielectric {
	return &Dielectric{RefractionIndex: refractionIndex}
}

// refract computes the refracted direction using Snell's law
func refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(uv.Negate().Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// reflectance uses Schlick's approximation for the Fresnel factor
func reflectance(cosine, refractionIndex float64) float64 {
	r0 := (1 - refractionIndex) / (1 + refractionIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// Scatter implements the Material interface for dielectric materials
func (d *Dielectric) Scatter(rayIn core.Ray, hit SurfaceInteraction, u core.Vec2) (ScatterResult, bool) {
	refractionRatio := d.RefractionIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractionIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(unitDirection.Negate().Dot(hit.N), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || reflectance(cosTheta, refractionRatio) > u.X {
		direction = reflect(unitDirection, hit.N)
	} else {
		direction = refract(unitDirection, hit.N, refractionRatio)
	}

	scattered := hit.SpawnRay(direction)
	return ScatterResult{
		Incoming:    rayIn,
		Scattered:   scattered,
		Attenuation: core.NewVec3(1.0, 1.0, 1.0),
		PDF:         0, // Specular: no meaningful density
	}, true
}

// EvaluateBRDF evaluates the BRDF for specific incoming/outgoing directions
func (d *Dielectric) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit *SurfaceInteraction) core.Vec3 {
	return core.Vec3{}
}

// PDF calculates the probability density for specific incoming/outgoing directions
func (d *Dielectric) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	return 0.0, true // isDelta = true
}
