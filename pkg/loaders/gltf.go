// Package loaders brings external assets into the scene: triangle meshes
// from glTF files and images for image-driven lights.
package loaders

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/lucent-render/lucent/pkg/core"
	"github.com/lucent-render/lucent/pkg/geometry"
	"github.com/lucent-render/lucent/pkg/material"
)

// LoadGLB loads a binary glTF file and returns its triangles as scene
// shapes, all carrying the given material
func LoadGLB(path string, mat material.Material) ([]geometry.Shape, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return trianglesFromDocument(doc, mat)
}

// trianglesFromDocument extracts triangle geometry from a parsed document
func trianglesFromDocument(doc *gltf.Document, mat material.Material) ([]geometry.Shape, error) {
	var shapes []geometry.Shape

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				// Skip non-triangle primitives (lines, points, etc)
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}

			positions, err := readVec3Accessor(doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: read positions: %w", m.Name, err)
			}

			if prim.Indices != nil {
				indices, err := readIndices(doc, *prim.Indices)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read indices: %w", m.Name, err)
				}
				for i := 0; i+2 < len(indices); i += 3 {
					shapes = append(shapes, geometry.NewTriangle(
						positions[indices[i]],
						positions[indices[i+1]],
						positions[indices[i+2]],
						mat,
					))
				}
			} else {
				// No indices, assume sequential triangles
				for i := 0; i+2 < len(positions); i += 3 {
					shapes = append(shapes, geometry.NewTriangle(
						positions[i],
						positions[i+1],
						positions[i+2],
						mat,
					))
				}
			}
		}
	}

	return shapes, nil
}

// readVec3Accessor reads Vec3 data from a glTF accessor
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]core.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", accessor.ComponentType)
	}

	bufData, start, stride, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}
	if stride == 0 {
		stride = 12 // 3 floats * 4 bytes
	}

	result := make([]core.Vec3, accessor.Count)
	for i := 0; i < accessor.Count; i++ {
		offset := start + i*stride
		result[i] = core.NewVec3(
			float64(readFloat32(bufData[offset:])),
			float64(readFloat32(bufData[offset+4:])),
			float64(readFloat32(bufData[offset+8:])),
		)
	}
	return result, nil
}

// readIndices reads index data from a glTF accessor, widening every
// component type to int
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	bufData, start, stride, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		if stride == 0 {
			stride = 1
		}
		for i := 0; i < accessor.Count; i++ {
			result[i] = int(bufData[start+i*stride])
		}
	case gltf.ComponentUshort:
		if stride == 0 {
			stride = 2
		}
		for i := 0; i < accessor.Count; i++ {
			offset := start + i*stride
			result[i] = int(uint16(bufData[offset]) | uint16(bufData[offset+1])<<8)
		}
	case gltf.ComponentUint:
		if stride == 0 {
			stride = 4
		}
		for i := 0; i < accessor.Count; i++ {
			offset := start + i*stride
			result[i] = int(uint32(bufData[offset]) |
				uint32(bufData[offset+1])<<8 |
				uint32(bufData[offset+2])<<16 |
				uint32(bufData[offset+3])<<24)
		}
	default:
		return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
	}
	return result, nil
}

// accessorBytes resolves an accessor to its backing bytes, start offset and
// stride. Only embedded (GLB) buffers are supported.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" {
		return nil, 0, 0, fmt.Errorf("external buffers not supported")
	}
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	return buffer.Data, start, bufferView.ByteStride, nil
}

// readFloat32 reads a little-endian float32
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
