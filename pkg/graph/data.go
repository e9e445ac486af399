package graph

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// PrimitiveKind distinguishes between primitive shapes.
type PrimitiveKind int

const (
	PrimBox      PrimitiveKind = iota // axis-aligned box, min corner at origin
	PrimCylinder                      // cylinder on the xy plane, axis +z
	PrimSphere                        // sphere centered at the origin
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimBox:
		return "box"
	case PrimCylinder:
		return "cylinder"
	case PrimSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// BoxData represents an axis-aligned box primitive.
type BoxData struct {
	PrimKind   PrimitiveKind `json:"prim_kind"`
	Dimensions Vec3          `json:"dimensions"` // x, y, z extents
	Material   string        `json:"material,omitempty"`
}

func (BoxData) nodeData() {}

// CylinderData represents a cylinder primitive.
type CylinderData struct {
	PrimKind PrimitiveKind `json:"prim_kind"`
	Height   float64       `json:"height"`
	Radius   float64       `json:"radius"`
	Segments int           `json:"segments,omitempty"` // 0 = kernel default
	Material string        `json:"material,omitempty"`
}

func (CylinderData) nodeData() {}

// SphereData represents a sphere primitive.
type SphereData struct {
	PrimKind PrimitiveKind `json:"prim_kind"`
	Radius   float64       `json:"radius"`
	Segments int           `json:"segments,omitempty"` // 0 = kernel default
	Material string        `json:"material,omitempty"`
}

func (SphereData) nodeData() {}

// ---------------------------------------------------------------------------
// Transform
// ---------------------------------------------------------------------------

// TransformData represents a spatial transformation applied to a child
// node. Created by the (translate ...) and (rotate ...) forms.
type TransformData struct {
	Translation *Vec3 `json:"translation,omitempty"`
	Rotation    *Vec3 `json:"rotation,omitempty"` // Euler angles in degrees
}

func (TransformData) nodeData() {}

// ---------------------------------------------------------------------------
// Boolean
// ---------------------------------------------------------------------------

// BooleanKind enumerates boolean set operations.
type BooleanKind int

const (
	BoolUnion BooleanKind = iota
	BoolDifference
	BoolIntersection
)

func (k BooleanKind) String() string {
	switch k {
	case BoolUnion:
		return "union"
	case BoolDifference:
		return "difference"
	case BoolIntersection:
		return "intersection"
	default:
		return "unknown"
	}
}

// BooleanData specifies a boolean combining the node's two children.
// Children order matters for difference: child 0 is the minuend.
type BooleanData struct {
	Kind BooleanKind `json:"kind"`
}

func (BooleanData) nodeData() {}

// ---------------------------------------------------------------------------
// Group
// ---------------------------------------------------------------------------

// GroupData represents a logical grouping (a named solid or a scene).
// Created by the (defsolid ...) and (scene ...) forms.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}
