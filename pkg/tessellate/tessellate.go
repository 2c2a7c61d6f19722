// Package tessellate turns measured shapes into triangle meshes using a
// geometry kernel. One mesh is produced per shape.
package tessellate

import (
	"fmt"

	"github.com/chazu/shapecalc/pkg/kernel"
	"github.com/chazu/shapecalc/pkg/measure"
	"github.com/chazu/shapecalc/pkg/shape"
	"github.com/chazu/shapecalc/pkg/sheet"
)

// PrismDepth is the extrusion depth used to give a triangle a solid
// preview. With unit depth the prism volume equals the triangle area.
const PrismDepth = 1.0

// Gap is the spacing along X between worksheet entries laid out side by side.
const Gap = 2.0

// Solid builds the kernel solid for a shape, resting on the Z = 0 plane
// with its footprint starting at the origin. Dimensions are validated
// first; the kernel never sees invalid input.
func Solid(k kernel.Kernel, kind measure.Kind, dims shape.Dimensions) (kernel.Solid, error) {
	if err := shape.Validate(kind, dims); err != nil {
		return nil, err
	}

	switch kind {
	case measure.KindCube:
		s := dims[shape.DimSide]
		return k.Box(s, s, s), nil
	case measure.KindBox:
		return k.Box(dims[shape.DimLength], dims[shape.DimWidth], dims[shape.DimHeight]), nil
	case measure.KindCylinder:
		r, h := dims[shape.DimRadius], dims[shape.DimHeight]
		return k.Translate(k.Cylinder(h, r), r, r, h/2), nil
	case measure.KindTriangle:
		prism := k.Prism(dims[shape.DimBase], dims[shape.DimHeight], PrismDepth)
		return k.Translate(prism, 0, 0, PrismDepth/2), nil
	}
	return nil, fmt.Errorf("%w: %s", shape.ErrUnknownShape, kind)
}

// Preview produces the mesh for a single shape.
func Preview(k kernel.Kernel, kind measure.Kind, dims shape.Dimensions) (*kernel.Mesh, error) {
	solid, err := Solid(k, kind, dims)
	if err != nil {
		return nil, err
	}
	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for %s: %w", kind, err)
	}
	mesh.Name = kind.String()
	return mesh, nil
}

// Tessellate produces one mesh per worksheet entry, in worksheet order.
// Entries are laid out along X, separated by Gap. The sheet is never mutated.
func Tessellate(s *sheet.Sheet, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if s == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	var offset float64

	for _, e := range s.List() {
		solid, err := Solid(k, e.Kind, e.Dims)
		if err != nil {
			return nil, fmt.Errorf("tessellate: entry %s: %w", e.ID.Short(), err)
		}

		min, max := solid.BoundingBox()
		solid = k.Translate(solid, offset-min[0], 0, 0)
		offset += (max[0] - min[0]) + Gap

		mesh, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for entry %s: %w", e.ID.Short(), err)
		}
		mesh.Name = e.Name
		meshes = append(meshes, mesh)
	}

	return meshes, nil
}
