// Package kernel defines the abstract geometry kernel interface used to
// build preview solids for measured shapes. The sdfx backend is the
// default and the manifold backend is available with -tags=manifold.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid
	Prism(base, height, depth float64) Solid // triangular cross-section in XY, extruded along Z

	// Transforms
	Translate(s Solid, x, y, z float64) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
