package engine

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/chazu/burl/pkg/graph"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms burl Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: half-pipe -> half_pipe
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpNodeRef wraps a graph.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   graph.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a graph.Vec3.
type sexpVec3 struct {
	vec graph.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toNodeRef extracts a NodeID from a sexpNodeRef.
func toNodeRef(s zygo.Sexp) (graph.NodeID, error) {
	if ref, ok := s.(*sexpNodeRef); ok {
		return ref.id, nil
	}
	return "", fmt.Errorf("expected solid reference, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (graph.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return graph.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Node ID generation
// ---------------------------------------------------------------------------

// nodeCounter provides unique suffixes for anonymous nodes.
var nodeCounter uint64

func nextNodeSuffix() string {
	n := atomic.AddUint64(&nodeCounter, 1)
	return fmt.Sprintf("_anon_%d", n)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all burl DSL builtins into a zygomys environment.
// The builtins operate on the provided DesignGraph, populating it during
// evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, g *graph.DesignGraph) {

	// addPrim creates a primitive node and returns its reference.
	addPrim := func(kind string, data graph.NodeData) zygo.Sexp {
		id := graph.MakeNodeID(kind, nextNodeSuffix())
		g.AddNode(&graph.Node{
			ID:   id,
			Kind: graph.NodePrimitive,
			Data: data,
		})
		return &sexpNodeRef{id: id}
	}

	// material reads the optional :material tag shared by all primitives.
	material := func(pa kwArgs, form string) (string, error) {
		v, ok := pa.kw["material"]
		if !ok {
			return "", nil
		}
		s, err := toString(v)
		if err != nil {
			return "", fmt.Errorf("%s: material: %w", form, err)
		}
		return s, nil
	}

	// segments reads the optional :segments count shared by curved primitives.
	segments := func(pa kwArgs, form string) (int, error) {
		v, ok := pa.kw["segments"]
		if !ok {
			return 0, nil
		}
		n, err := toInt(v)
		if err != nil {
			return 0, fmt.Errorf("%s: segments: %w", form, err)
		}
		return n, nil
	}

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: graph.Vec3{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (box :x 100 :y 50 :z 25 :material "oak")
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		bd := graph.BoxData{PrimKind: graph.PrimBox}

		for _, axis := range []struct {
			key string
			dst *float64
		}{
			{"x", &bd.Dimensions.X},
			{"y", &bd.Dimensions.Y},
			{"z", &bd.Dimensions.Z},
		} {
			v, ok := pa.kw[axis.key]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("box: missing :%s dimension", axis.key)
			}
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: %s: %w", axis.key, err)
			}
			*axis.dst = f
		}

		mat, err := material(pa, "box")
		if err != nil {
			return zygo.SexpNull, err
		}
		bd.Material = mat

		return addPrim("box", bd), nil
	})

	// -----------------------------------------------------------------------
	// (cylinder :height 50 :radius 10 :segments 32 :material "steel")
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		cd := graph.CylinderData{PrimKind: graph.PrimCylinder}

		v, ok := pa.kw["height"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("cylinder: missing :height")
		}
		h, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: height: %w", err)
		}
		cd.Height = h

		v, ok = pa.kw["radius"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("cylinder: missing :radius")
		}
		r, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: radius: %w", err)
		}
		cd.Radius = r

		if cd.Segments, err = segments(pa, "cylinder"); err != nil {
			return zygo.SexpNull, err
		}
		if cd.Material, err = material(pa, "cylinder"); err != nil {
			return zygo.SexpNull, err
		}

		return addPrim("cylinder", cd), nil
	})

	// -----------------------------------------------------------------------
	// (sphere :radius 10 :segments 16 :material "glass")
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		sd := graph.SphereData{PrimKind: graph.PrimSphere}

		v, ok := pa.kw["radius"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("sphere: missing :radius")
		}
		r, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
		}
		sd.Radius = r

		if sd.Segments, err = segments(pa, "sphere"); err != nil {
			return zygo.SexpNull, err
		}
		if sd.Material, err = material(pa, "sphere"); err != nil {
			return zygo.SexpNull, err
		}

		return addPrim("sphere", sd), nil
	})

	// -----------------------------------------------------------------------
	// (translate solid :by (vec3 10 0 0))
	// (rotate solid :by (vec3 0 0 90))   ; Euler degrees
	// -----------------------------------------------------------------------
	transform := func(form string, build func(v graph.Vec3) graph.TransformData) {
		env.AddFunction(form, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)

			if len(pa.positional) < 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires a solid reference as first argument", form)
			}
			childID, err := toNodeRef(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: solid: %w", form, err)
			}

			v, ok := pa.kw["by"]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("%s: missing :by vector", form)
			}
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: by: %w", form, err)
			}

			id := graph.MakeNodeID(form, nextNodeSuffix())
			g.AddNode(&graph.Node{
				ID:       id,
				Kind:     graph.NodeTransform,
				Children: []graph.NodeID{childID},
				Data:     build(vec),
			})
			return &sexpNodeRef{id: id}, nil
		})
	}
	transform("translate", func(v graph.Vec3) graph.TransformData {
		return graph.TransformData{Translation: &v}
	})
	transform("rotate", func(v graph.Vec3) graph.TransformData {
		return graph.TransformData{Rotation: &v}
	})

	// -----------------------------------------------------------------------
	// (union a b c ...), (difference a b), (intersection a b)
	//
	// Booleans are binary in the graph; unions and intersections of more
	// than two solids fold left into a chain of binary nodes.
	// -----------------------------------------------------------------------
	boolean := func(form string, kind graph.BooleanKind) {
		env.AddFunction(form, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) < 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires at least 2 solids, got %d", form, len(args))
			}
			if kind == graph.BoolDifference && len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("difference requires exactly 2 solids, got %d", len(args))
			}

			ids := make([]graph.NodeID, len(args))
			for i, a := range args {
				id, err := toNodeRef(a)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: argument %d: %w", form, i+1, err)
				}
				ids[i] = id
			}

			acc := ids[0]
			for _, next := range ids[1:] {
				id := graph.MakeNodeID(form, acc, next, nextNodeSuffix())
				g.AddNode(&graph.Node{
					ID:       id,
					Kind:     graph.NodeBoolean,
					Children: []graph.NodeID{acc, next},
					Data:     graph.BooleanData{Kind: kind},
				})
				acc = id
			}
			return &sexpNodeRef{id: acc}, nil
		})
	}
	boolean("union", graph.BoolUnion)
	boolean("difference", graph.BoolDifference)
	boolean("intersection", graph.BoolIntersection)

	// -----------------------------------------------------------------------
	// (defsolid "name" solid)
	// -----------------------------------------------------------------------
	env.AddFunction("defsolid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defsolid requires a name and a solid expression")
		}

		solidName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defsolid: name: %w", err)
		}
		if g.Lookup(solidName) != nil {
			return zygo.SexpNull, fmt.Errorf("defsolid: %q is already defined", solidName)
		}

		childID, err := toNodeRef(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defsolid: body: %w", err)
		}

		id := graph.MakeNodeID("defsolid", solidName)
		g.AddNode(&graph.Node{
			ID:       id,
			Kind:     graph.NodeGroup,
			Name:     solidName,
			Children: []graph.NodeID{childID},
			Data:     graph.GroupData{},
		})

		return &sexpNodeRef{id: id, name: solidName}, nil
	})

	// -----------------------------------------------------------------------
	// (solid "name")
	// -----------------------------------------------------------------------
	env.AddFunction("solid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("solid requires a name argument")
		}

		solidName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("solid: name: %w", err)
		}

		n := g.Lookup(solidName)
		if n == nil {
			return zygo.SexpNull, fmt.Errorf("solid: no solid named %q", solidName)
		}

		return &sexpNodeRef{id: n.ID, name: solidName}, nil
	})

	// -----------------------------------------------------------------------
	// (scene "name" solid solid ...)
	//
	// Each scene becomes a named root; tessellation emits one mesh per root.
	// -----------------------------------------------------------------------
	env.AddFunction("scene", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("scene requires a name argument")
		}

		sceneName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scene: name: %w", err)
		}
		// Scene names become output file names; a re-registered name
		// would silently overwrite the first scene's mesh on export.
		if g.Lookup(sceneName) != nil {
			return zygo.SexpNull, fmt.Errorf("scene: %q is already defined", sceneName)
		}

		var children []graph.NodeID
		for i := 1; i < len(args); i++ {
			ref, ok := args[i].(*sexpNodeRef)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("scene: child %d: expected solid reference, got %T (%s)",
					i, args[i], args[i].SexpString(nil))
			}
			children = append(children, ref.id)
		}

		id := graph.MakeNodeID("scene", sceneName)
		g.AddNode(&graph.Node{
			ID:       id,
			Kind:     graph.NodeGroup,
			Name:     sceneName,
			Children: children,
			Data:     graph.GroupData{},
		})
		g.AddRoot(id)

		return &sexpNodeRef{id: id, name: sceneName}, nil
	})
}
