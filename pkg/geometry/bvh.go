package geometry

import (
	"sort"

	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // Leaf shapes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *BVHNode
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 4

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{Root: nil}
	}

	// Copy so the build's sorting never mutates the caller's slice
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{Root: buildBVH(shapesCopy)}
}

// buildBVH recursively builds the BVH using a median split along the longest axis
func buildBVH(shapes []Shape) *BVHNode {
	boundingBox := shapes[0].BoundingBox()
	for i := 1; i < len(shapes); i++ {
		boundingBox = boundingBox.Union(shapes[i].BoundingBox())
	}

	if len(shapes) <= leafThreshold {
		return &BVHNode{
			BoundingBox: boundingBox,
			Shapes:      shapes,
		}
	}

	axis := boundingBox.LongestAxis()
	sortShapesByAxis(shapes, axis)

	mid := len(shapes) / 2
	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(shapes[:mid]),
		Right:       buildBVH(shapes[mid:]),
	}
}

// sortShapesByAxis sorts shapes by their bounding box center along the specified axis
func sortShapesByAxis(shapes []Shape, axis int) {
	sort.Slice(shapes, func(i, j int) bool {
		centerI := shapes[i].BoundingBox().Center()
		centerJ := shapes[j].BoundingBox().Center()
		switch axis {
		case 0:
			return centerI.X < centerJ.X
		case 1:
			return centerI.Y < centerJ.Y
		default:
			return centerI.Z < centerJ.Z
		}
	})
}

// Hit finds the closest intersection within [tMin, tMax]
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	if b.Root == nil {
		return nil, false
	}
	return hitNode(b.Root, ray, tMin, tMax)
}

func hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if node.Shapes != nil {
		var closest *material.SurfaceInteraction
		closestT := tMax
		for _, shape := range node.Shapes {
			if hit, ok := shape.Hit(ray, tMin, closestT); ok {
				closest = hit
				closestT = hit.T
			}
		}
		return closest, closest != nil
	}

	leftHit, leftOK := hitNode(node.Left, ray, tMin, tMax)
	if leftOK {
		tMax = leftHit.T
	}
	rightHit, rightOK := hitNode(node.Right, ray, tMin, tMax)
	if rightOK {
		return rightHit, true
	}
	return leftHit, leftOK
}

// HitP reports whether any intersection exists within [tMin, tMax].
// It is the cheaper existence test used by shadow rays: it stops at the
// first hit instead of finding the closest one.
func (b *BVH) HitP(ray core.Ray, tMin, tMax float64) bool {
	if b.Root == nil {
		return false
	}
	return hitNodeP(b.Root, ray, tMin, tMax)
}

func hitNodeP(node *BVHNode, ray core.Ray, tMin, tMax float64) bool {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}

	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if _, ok := shape.Hit(ray, tMin, tMax); ok {
				return true
			}
		}
		return false
	}

	return hitNodeP(node.Left, ray, tMin, tMax) || hitNodeP(node.Right, ray, tMin, tMax)
}

// WorldBound returns the bounding box of everything in the hierarchy
func (b *BVH) WorldBound() AABB {
	if b.Root == nil {
		return AABB{}
	}
	return b.Root.BoundingBox
}
