package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NodeID identifies a graph node. IDs are content-derived so that the
// same expression always produces the same node identity.
type NodeID string

// IsZero reports whether the ID is unset.
func (id NodeID) IsZero() bool { return id == "" }

// Short returns a truncated form for log and error messages.
func (id NodeID) Short() string {
	if len(id) <= 12 {
		return string(id)
	}
	return string(id[:12])
}

// MakeNodeID derives a NodeID from a kind tag and the node's defining
// content.
func MakeNodeID(kind string, content ...any) NodeID {
	h := sha256.Sum256([]byte(fmt.Sprint(kind, content)))
	return NodeID(kind + "-" + hex.EncodeToString(h[:6]))
}

// SourceRef records where in the input script a node came from.
type SourceRef struct {
	Expr string `json:"expr,omitempty"` // source expression text
	Line int    `json:"line,omitempty"`
}

// NodeKind enumerates the types of nodes in the design graph.
type NodeKind int

const (
	NodePrimitive NodeKind = iota // geometric primitive (box, cylinder, sphere)
	NodeTransform                 // spatial transformation (translate, rotate)
	NodeBoolean                   // boolean operation (union, difference, intersection)
	NodeGroup                     // logical grouping (scene, named solid)
)

func (k NodeKind) String() string {
	switch k {
	case NodePrimitive:
		return "primitive"
	case NodeTransform:
		return "transform"
	case NodeBoolean:
		return "boolean"
	case NodeGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Node is the fundamental element of the design graph.
type Node struct {
	ID       NodeID    `json:"id"`
	Kind     NodeKind  `json:"kind"`
	Name     string    `json:"name,omitempty"`
	Source   SourceRef `json:"source"`
	Children []NodeID  `json:"children,omitempty"`
	Data     NodeData  `json:"data"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}
