// Package tessellate walks a design graph and produces triangle meshes
// using a geometry kernel. One mesh is produced per scene root.
package tessellate

import (
	"fmt"

	"github.com/chazu/burl/pkg/graph"
	"github.com/chazu/burl/pkg/kernel"
	"github.com/chazu/burl/pkg/mesh"
)

// walker carries the kernel and a per-run solid cache. The graph is a
// DAG, so a node referenced by several parents is built once and its
// solid reused; kernel solids are immutable.
type walker struct {
	g     *graph.DesignGraph
	k     kernel.Kernel
	cache map[graph.NodeID]kernel.Solid
}

// Tessellate walks the design graph and produces one triangle mesh per
// root using the provided geometry kernel. The tessellator is read-only
// and never mutates the graph.
func Tessellate(g *graph.DesignGraph, k kernel.Kernel) ([]*mesh.Mesh, error) {
	if g == nil {
		return nil, nil
	}

	w := &walker{g: g, k: k, cache: make(map[graph.NodeID]kernel.Solid)}

	var meshes []*mesh.Mesh
	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			continue
		}

		solid, err := w.buildSolid(root)
		if err != nil {
			return nil, fmt.Errorf("tessellate: root %s: %w", rootID.Short(), err)
		}
		if solid == nil {
			continue // empty scene
		}

		m, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: meshing root %s: %w", rootID.Short(), err)
		}
		if root.Name != "" {
			m.Name = root.Name
		} else {
			m.Name = root.ID.Short()
		}
		meshes = append(meshes, m)
	}

	return meshes, nil
}

// buildSolid recursively evaluates a node into a kernel solid.
func (w *walker) buildSolid(n *graph.Node) (kernel.Solid, error) {
	if s, ok := w.cache[n.ID]; ok {
		return s, nil
	}

	var (
		s   kernel.Solid
		err error
	)
	switch n.Kind {
	case graph.NodePrimitive:
		s, err = w.buildPrimitive(n)
	case graph.NodeTransform:
		s, err = w.buildTransform(n)
	case graph.NodeBoolean:
		s, err = w.buildBoolean(n)
	case graph.NodeGroup:
		s, err = w.buildGroup(n)
	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind)
	}
	if err != nil {
		return nil, err
	}

	w.cache[n.ID] = s
	return s, nil
}

// buildPrimitive creates geometry for a primitive node.
func (w *walker) buildPrimitive(n *graph.Node) (kernel.Solid, error) {
	switch data := n.Data.(type) {
	case graph.BoxData:
		return w.k.Box(data.Dimensions.X, data.Dimensions.Y, data.Dimensions.Z), nil
	case graph.CylinderData:
		return w.k.Cylinder(data.Height, data.Radius, data.Segments), nil
	case graph.SphereData:
		return w.k.Sphere(data.Radius, data.Segments), nil
	default:
		return nil, fmt.Errorf("primitive node %s has unsupported data type %T", n.ID.Short(), n.Data)
	}
}

// buildTransform builds the child solid, then applies rotation before
// translation so that rotation happens about the child's own origin.
func (w *walker) buildTransform(n *graph.Node) (kernel.Solid, error) {
	td, ok := n.Data.(graph.TransformData)
	if !ok {
		return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}
	children := w.g.Children(n)
	if len(children) != 1 {
		return nil, fmt.Errorf("transform node %s has %d children, needs 1", n.ID.Short(), len(children))
	}

	s, err := w.buildSolid(children[0])
	if err != nil {
		return nil, err
	}

	if r := td.Rotation; r != nil && (r.X != 0 || r.Y != 0 || r.Z != 0) {
		s = w.k.Rotate(s, r.X, r.Y, r.Z)
	}
	if t := td.Translation; t != nil && (t.X != 0 || t.Y != 0 || t.Z != 0) {
		s = w.k.Translate(s, t.X, t.Y, t.Z)
	}
	return s, nil
}

// buildBoolean combines the node's two children.
func (w *walker) buildBoolean(n *graph.Node) (kernel.Solid, error) {
	bd, ok := n.Data.(graph.BooleanData)
	if !ok {
		return nil, fmt.Errorf("boolean node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}
	children := w.g.Children(n)
	if len(children) != 2 {
		return nil, fmt.Errorf("boolean node %s has %d children, needs 2", n.ID.Short(), len(children))
	}

	a, err := w.buildSolid(children[0])
	if err != nil {
		return nil, err
	}
	b, err := w.buildSolid(children[1])
	if err != nil {
		return nil, err
	}

	switch bd.Kind {
	case graph.BoolUnion:
		return w.k.Union(a, b), nil
	case graph.BoolDifference:
		return w.k.Difference(a, b), nil
	case graph.BoolIntersection:
		return w.k.Intersection(a, b), nil
	default:
		return nil, fmt.Errorf("boolean node %s has unknown kind %v", n.ID.Short(), bd.Kind)
	}
}

// buildGroup evaluates the group's children and unions them. A group
// with one child (the defsolid case) passes the child through.
func (w *walker) buildGroup(n *graph.Node) (kernel.Solid, error) {
	children := w.g.Children(n)
	if len(children) == 0 {
		return nil, nil
	}

	acc, err := w.buildSolid(children[0])
	if err != nil {
		return nil, err
	}
	for _, child := range children[1:] {
		s, err := w.buildSolid(child)
		if err != nil {
			return nil, err
		}
		if s == nil {
			continue
		}
		if acc == nil {
			acc = s
			continue
		}
		acc = w.k.Union(acc, s)
	}
	return acc, nil
}
