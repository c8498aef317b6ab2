// Package scene defines the contract between the guide subsystem and the
// host application's scene graph, together with an in-memory implementation
// used for headless operation and tests.
//
// The guide core never talks to a host API directly. Everything it needs
// from the host — node creation, attribute access, parenting, transforms —
// goes through the Scene and Node interfaces. A host adapter implements
// them against the real application; Memory implements them against plain
// Go structures.
package scene

import "math"

// Vector is a position in world space.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Distance returns the euclidean distance between v and o.
func (v Vector) Distance(o Vector) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// MirrorX returns v mirrored across the YZ plane.
func (v Vector) MirrorX() Vector {
	return Vector{X: -v.X, Y: v.Y, Z: v.Z}
}

// Matrix is a 4x4 world transform, row-major. Translation lives in
// elements 12..14.
type Matrix [16]float64

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns the translation component of m.
func (m Matrix) Translation() Vector {
	return Vector{X: m[12], Y: m[13], Z: m[14]}
}

// WithTranslation returns a copy of m with the translation replaced.
func (m Matrix) WithTranslation(v Vector) Matrix {
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// MirrorX returns m mirrored across the YZ plane. Only the translation is
// negated; orientation handling is the component variant's business.
func (m Matrix) MirrorX() Matrix {
	m[12] = -m[12]
	return m
}

// Node is one transform node in the host scene graph.
type Node interface {
	// ID is a host-assigned identifier, stable for the node's lifetime.
	ID() string
	Name() string
	Rename(name string)
	// Parent returns nil for top-level nodes.
	Parent() Node
	Children() []Node

	HasAttr(name string) bool
	Attr(name string) (any, bool)
	SetAttr(name string, value any)

	// Connection reports the source node driving the named attribute, if
	// the attribute has an inbound connection.
	Connection(attr string) (Node, bool)
	Connect(attr string, source Node)

	WorldMatrix() Matrix
	SetWorldMatrix(m Matrix)
}

// Scene is the host scene graph.
type Scene interface {
	// CreateNode creates a transform node under parent. A nil parent
	// creates a top-level node.
	CreateNode(name string, parent Node) Node
	// FindNode returns the first node with the given name, depth-first.
	// Scene names are not guaranteed unique.
	FindNode(name string) (Node, bool)
	// FindChild searches the subtree below root (root excluded) for the
	// first node with the given name.
	FindChild(root Node, name string) (Node, bool)
	// SetParent reparents child under parent. Reparenting a node below
	// its own subtree is rejected.
	SetParent(child, parent Node) error
	// Delete removes node and its whole subtree from the scene.
	Delete(node Node)
	// Roots returns the top-level nodes.
	Roots() []Node
}

// CurveSampler reconstructs a curve-valued parameter by sampling the driven
// curve node at a number of divisions.
type CurveSampler interface {
	Sample(node Node, divisions int) ([]float64, error)
}

// CurveCollector gathers controller shape buffers into an opaque payload
// for the guide template. The payload is never interpreted by the core.
type CurveCollector interface {
	Collect(buffers []Node) (any, error)
}
