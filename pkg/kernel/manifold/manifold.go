//go:build manifold

// Package manifold provides a CGo-based geometry kernel binding to the
// Manifold library (https://github.com/elalish/manifold). Unlike the sdfx
// kernel it produces exact polygonal meshes, so preview volumes match the
// calculated ones up to the cylinder's segment approximation.
//
// This package requires the Manifold C library (manifoldc) to be installed.
// Build with: go build -tags=manifold
package manifold

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"github.com/chazu/shapecalc/pkg/kernel"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*ManifoldKernel)(nil)
var _ kernel.Solid = (*manifoldSolid)(nil)

// manifoldSolid wraps a C ManifoldManifold pointer and implements kernel.Solid.
type manifoldSolid struct {
	ptr *C.ManifoldManifold
}

// BoundingBox returns the axis-aligned bounding box of the solid.
func (s *manifoldSolid) BoundingBox() (min, max [3]float64) {
	alloc := C.manifold_alloc_box()
	bbox := C.manifold_bounding_box(alloc, s.ptr)
	defer C.manifold_delete_box(bbox)

	min[0] = float64(C.manifold_box_min_x(bbox))
	min[1] = float64(C.manifold_box_min_y(bbox))
	min[2] = float64(C.manifold_box_min_z(bbox))
	max[0] = float64(C.manifold_box_max_x(bbox))
	max[1] = float64(C.manifold_box_max_y(bbox))
	max[2] = float64(C.manifold_box_max_z(bbox))
	return min, max
}

// newSolid wraps a C ManifoldManifold pointer with Go-side finalizer
// for automatic memory management.
func newSolid(ptr *C.ManifoldManifold) *manifoldSolid {
	s := &manifoldSolid{ptr: ptr}
	runtime.SetFinalizer(s, func(s *manifoldSolid) {
		if s.ptr != nil {
			C.manifold_delete_manifold(s.ptr)
			s.ptr = nil
		}
	})
	return s
}

// ManifoldKernel implements kernel.Kernel using the Manifold C library.
// Meshes are exact for boxes and prisms; cylinders are approximated by
// a polygon with the configured number of segments.
type ManifoldKernel struct {
	segments int
}

// New creates a new ManifoldKernel. A non-positive segment count selects
// DefaultSegments.
func New(segments int) (kernel.Kernel, error) {
	if segments <= 0 {
		segments = DefaultSegments
	}
	return &ManifoldKernel{segments: segments}, nil
}

// Box creates a box with the given dimensions and its minimum corner at
// the origin.
func (k *ManifoldKernel) Box(x, y, z float64) kernel.Solid {
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_cube(alloc,
		C.double(x), C.double(y), C.double(z),
		C.int(0), // center=false
	)
	return newSolid(ptr)
}

// Cylinder creates a cylinder along the Z axis with the given height and
// radius, centered at the origin.
func (k *ManifoldKernel) Cylinder(height, radius float64) kernel.Solid {
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_cylinder(alloc,
		C.double(height),
		C.double(radius), // radius_low
		C.double(radius), // radius_high (same = not tapered)
		C.int(k.segments),
		C.int(1), // center=true
	)
	return newSolid(ptr)
}

// Prism creates an isosceles triangle with the given base and height in
// the XY plane, extruded by depth along Z and centered on Z = 0.
func (k *ManifoldKernel) Prism(base, height, depth float64) kernel.Solid {
	pts := []C.ManifoldVec2{
		{x: 0, y: 0},
		{x: C.double(base), y: 0},
		{x: C.double(base / 2), y: C.double(height)},
	}

	spAlloc := C.manifold_alloc_simple_polygon()
	sp := C.manifold_simple_polygon(spAlloc, &pts[0], C.size_t(len(pts)))
	defer C.manifold_delete_simple_polygon(sp)

	polys := []*C.ManifoldSimplePolygon{sp}
	psAlloc := C.manifold_alloc_polygons()
	ps := C.manifold_polygons(psAlloc, &polys[0], C.size_t(len(polys)))
	defer C.manifold_delete_polygons(ps)

	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_extrude(alloc, ps,
		C.double(depth),
		C.int(0),    // slices
		C.double(0), // twist
		C.double(1), // scale x
		C.double(1), // scale y
	)
	// Extrusion runs from Z = 0 to depth.
	return k.Translate(newSolid(ptr), 0, 0, -depth/2)
}

// Translate moves the solid by (x, y, z).
func (k *ManifoldKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	ms := s.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_translate(alloc, ms.ptr,
		C.double(x), C.double(y), C.double(z),
	)
	return newSolid(ptr)
}

// ToMesh extracts a triangle mesh from the solid using Manifold's MeshGL
// format. Vertex positions and normals are interleaved in MeshGL; this
// method separates them into the kernel.Mesh flat-array layout.
func (k *ManifoldKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	ms := s.(*manifoldSolid)

	meshAlloc := C.manifold_alloc_meshgl()
	meshGL := C.manifold_get_meshgl(meshAlloc, ms.ptr)
	defer C.manifold_delete_meshgl(meshGL)

	numVert := int(C.manifold_meshgl_num_vert(meshGL))
	numTri := int(C.manifold_meshgl_num_tri(meshGL))

	if numVert == 0 || numTri == 0 {
		return nil, fmt.Errorf("manifold: solid produced an empty mesh")
	}

	// MeshGL stores numProp floats per vertex. The first 3 are always
	// position; normals, when present, follow at indices 3, 4, 5.
	numProp := int(C.manifold_meshgl_num_prop(meshGL))

	propData := make([]float32, numVert*numProp)
	C.manifold_meshgl_vert_properties(
		(*C.float)(unsafe.Pointer(&propData[0])),
		meshGL,
	)

	indices := make([]uint32, numTri*3)
	C.manifold_meshgl_tri_verts(
		(*C.uint32_t)(unsafe.Pointer(&indices[0])),
		meshGL,
	)

	vertices := make([]float32, numVert*3)
	var normals []float32
	hasNormals := numProp >= 6
	if hasNormals {
		normals = make([]float32, numVert*3)
	}

	for i := 0; i < numVert; i++ {
		base := i * numProp
		vertices[i*3+0] = propData[base+0]
		vertices[i*3+1] = propData[base+1]
		vertices[i*3+2] = propData[base+2]
		if hasNormals {
			normals[i*3+0] = propData[base+3]
			normals[i*3+1] = propData[base+4]
			normals[i*3+2] = propData[base+5]
		}
	}

	if !hasNormals {
		normals = vertexNormals(vertices, indices)
	}

	mesh := &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}

	if mesh.VertexCount() != numVert {
		return nil, fmt.Errorf("manifold: vertex count mismatch: got %d, expected %d",
			mesh.VertexCount(), numVert)
	}

	return mesh, nil
}

// vertexNormals averages the face normals of all triangles incident on
// each vertex. Used when MeshGL carries no normals.
func vertexNormals(vertices []float32, indices []uint32) []float32 {
	normals := make([]float32, len(vertices))

	for t := 0; t+2 < len(indices); t += 3 {
		tri := [3]uint32{indices[t], indices[t+1], indices[t+2]}
		var p [3][3]float64
		for j, idx := range tri {
			p[j] = [3]float64{
				float64(vertices[idx*3]),
				float64(vertices[idx*3+1]),
				float64(vertices[idx*3+2]),
			}
		}

		e1 := [3]float64{p[1][0] - p[0][0], p[1][1] - p[0][1], p[1][2] - p[0][2]}
		e2 := [3]float64{p[2][0] - p[0][0], p[2][1] - p[0][1], p[2][2] - p[0][2]}
		n := [3]float32{
			float32(e1[1]*e2[2] - e1[2]*e2[1]),
			float32(e1[2]*e2[0] - e1[0]*e2[2]),
			float32(e1[0]*e2[1] - e1[1]*e2[0]),
		}

		for _, idx := range tri {
			normals[idx*3+0] += n[0]
			normals[idx*3+1] += n[1]
			normals[idx*3+2] += n[2]
		}
	}

	for i := 0; i+2 < len(normals); i += 3 {
		nx, ny, nz := float64(normals[i]), float64(normals[i+1]), float64(normals[i+2])
		length := math.Sqrt(nx*nx + ny*ny + nz*nz)
		if length > 1e-12 {
			normals[i] = float32(nx / length)
			normals[i+1] = float32(ny / length)
			normals[i+2] = float32(nz / length)
		}
	}

	return normals
}
