package csg

// Node is a BSP tree node: a partition plane, the polygons coplanar with
// it, and subtrees for the front and back half-spaces. An absent child
// means there is no geometry on that side. A zero Node (invalid plane,
// no children) is an empty tree.
//
// Mutating operations (Build, ClipTo, Invert) follow a strict
// replace-not-mutate discipline: they substitute slice references and
// polygon copies instead of editing shared polygon contents in place, so
// a Clone and its original can each be operated on safely even though
// they share Polygon pointers.
type Node struct {
	plane    Plane
	front    *Node
	back     *Node
	polygons []*Polygon
}

// NewNode builds a tree from a flat polygon list. An empty or nil list
// yields an empty tree.
func NewNode(polygons []*Polygon) *Node {
	n := &Node{}
	if len(polygons) > 0 {
		n.Build(polygons)
	}
	return n
}

// Clone returns a tree that can be destructively clipped, inverted and
// rebuilt without disturbing the receiver. Node structure is rewrapped
// all the way down; Polygon pointers are shared, which is safe under the
// replace-not-mutate discipline above.
func (n *Node) Clone() *Node {
	c := &Node{
		plane:    n.plane,
		polygons: append([]*Polygon(nil), n.polygons...),
	}
	if n.front != nil {
		c.front = n.front.Clone()
	}
	if n.back != nil {
		c.back = n.back.Clone()
	}
	return c
}

// Invert converts solid space to empty space and back for the whole
// subtree: every coplanar polygon and the partition plane are flipped,
// children are inverted, then the child pointers are swapped. The swap
// comes after the recursion so each node is visited exactly once.
func (n *Node) Invert() {
	flipped := make([]*Polygon, len(n.polygons))
	for i, p := range n.polygons {
		flipped[i] = p.Flipped()
	}
	n.polygons = flipped
	n.plane.Flip()
	if n.front != nil {
		n.front.Invert()
	}
	if n.back != nil {
		n.back.Invert()
	}
	n.front, n.back = n.back, n.front
}

// ClipPolygons removes from the given list every polygon fragment that
// lies inside this tree's solid region, splitting spanning polygons as
// needed. A node with no plane is an empty subtree and passes the list
// through untouched.
func (n *Node) ClipPolygons(polygons []*Polygon) []*Polygon {
	if !n.plane.Valid() {
		return append([]*Polygon(nil), polygons...)
	}
	var front, back []*Polygon
	for _, p := range polygons {
		n.plane.Split(p, &front, &back, &front, &back)
	}
	if n.front != nil {
		front = n.front.ClipPolygons(front)
	}
	if n.back != nil {
		back = n.back.ClipPolygons(back)
	} else {
		// No back subtree: everything below this plane is solid and is
		// cut away.
		back = nil
	}
	return append(front, back...)
}

// ClipTo removes from this tree every polygon that lies inside the other
// tree's solid. Each node clips its own list against the whole of other,
// not against a sub-portion; the asymmetry is required for correctness.
func (n *Node) ClipTo(other *Node) {
	n.polygons = other.ClipPolygons(n.polygons)
	if n.front != nil {
		n.front.ClipTo(other)
	}
	if n.back != nil {
		n.back.ClipTo(other)
	}
}

// AllPolygons flattens the subtree into a single polygon list.
func (n *Node) AllPolygons() []*Polygon {
	out := append([]*Polygon(nil), n.polygons...)
	if n.front != nil {
		out = append(out, n.front.AllPolygons()...)
	}
	if n.back != nil {
		out = append(out, n.back.AllPolygons()...)
	}
	return out
}

// Build inserts polygons into the subtree. The first polygon ever seen
// by an empty node donates its plane as the partition plane; no
// best-split heuristic is attempted. Later Build calls on the same node
// keep the established plane and push new polygons into the children.
func (n *Node) Build(polygons []*Polygon) {
	if len(polygons) == 0 {
		return
	}
	fresh := !n.plane.Valid()
	if fresh {
		n.plane = polygons[0].Plane
	}
	var front, back []*Polygon
	for _, p := range polygons {
		n.plane.Split(p, &n.polygons, &n.polygons, &front, &back)
	}
	if fresh {
		// If the whole input lands on one side of a plane taken from
		// its own first polygon, epsilon was too coarse to recognize
		// true coplanarity; recursing would re-adopt the same plane and
		// never terminate. Treat the set as coplanar instead.
		if samePolygons(front, polygons) {
			n.polygons = append(n.polygons, front...)
			front = nil
		} else if samePolygons(back, polygons) {
			n.polygons = append(n.polygons, back...)
			back = nil
		}
	}
	if len(front) > 0 {
		if n.front == nil {
			n.front = &Node{}
		}
		n.front.Build(front)
	}
	if len(back) > 0 {
		if n.back == nil {
			n.back = &Node{}
		}
		n.back.Build(back)
	}
}

// samePolygons reports whether both lists hold exactly the same
// polygons. Split passes unsplit polygons through by reference, so
// pointer identity is the right notion of sameness here.
func samePolygons(a, b []*Polygon) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Union returns a new tree covering the region inside either operand.
// Neither operand is mutated. The clip/invert sequence is the standard
// BSP boolean dance; its step order is load-bearing.
func Union(a, b *Node) *Node {
	a = a.Clone()
	b = b.Clone()
	a.ClipTo(b)
	b.ClipTo(a)
	b.Invert()
	b.ClipTo(a)
	b.Invert()
	a.Build(b.AllPolygons())
	return NewNode(a.AllPolygons())
}

// Subtract returns a new tree covering the region inside a but not b.
// Neither operand is mutated.
func Subtract(a, b *Node) *Node {
	a = a.Clone()
	b = b.Clone()
	a.Invert()
	a.ClipTo(b)
	b.ClipTo(a)
	b.Invert()
	b.ClipTo(a)
	b.Invert()
	a.Build(b.AllPolygons())
	a.Invert()
	return NewNode(a.AllPolygons())
}

// Intersect returns a new tree covering the region inside both operands.
// Neither operand is mutated.
func Intersect(a, b *Node) *Node {
	a = a.Clone()
	b = b.Clone()
	a.Invert()
	b.ClipTo(a)
	b.Invert()
	a.ClipTo(b)
	a.Build(b.AllPolygons())
	a.Invert()
	return NewNode(a.AllPolygons())
}
