package scene

import (
	"github.com/google/uuid"

	"github.com/rigforge/rigforge/errors"
)

// Memory is an in-memory Scene implementation. It backs tests and headless
// CLI operation against a scene file.
//
// Memory is not safe for concurrent use; the guide core is single-threaded
// by design.
type Memory struct {
	roots []*memoryNode
}

// NewMemory creates an empty in-memory scene.
func NewMemory() *Memory {
	return &Memory{}
}

type memoryNode struct {
	scene    *Memory
	id       string
	name     string
	parent   *memoryNode
	children []*memoryNode
	attrs    map[string]any
	conns    map[string]*memoryNode
	world    Matrix
}

func (m *Memory) CreateNode(name string, parent Node) Node {
	n := &memoryNode{
		scene: m,
		id:    uuid.NewString(),
		name:  name,
		attrs: make(map[string]any),
		conns: make(map[string]*memoryNode),
		world: Identity(),
	}
	if parent == nil {
		m.roots = append(m.roots, n)
		return n
	}
	p := parent.(*memoryNode)
	n.parent = p
	p.children = append(p.children, n)
	return n
}

func (m *Memory) Roots() []Node {
	out := make([]Node, len(m.roots))
	for i, r := range m.roots {
		out[i] = r
	}
	return out
}

func (m *Memory) FindNode(name string) (Node, bool) {
	for _, r := range m.roots {
		if r.name == name {
			return r, true
		}
		if found, ok := m.FindChild(r, name); ok {
			return found, true
		}
	}
	return nil, false
}

func (m *Memory) FindChild(root Node, name string) (Node, bool) {
	for _, child := range root.Children() {
		if child.Name() == name {
			return child, true
		}
		if found, ok := m.FindChild(child, name); ok {
			return found, true
		}
	}
	return nil, false
}

func (m *Memory) SetParent(child, parent Node) error {
	c := child.(*memoryNode)
	if parent != nil {
		// Reject reparenting under the node's own subtree.
		for p := parent.(*memoryNode); p != nil; p = p.parent {
			if p == c {
				return errors.Newf("cannot parent %s below its own subtree", c.name)
			}
		}
	}
	m.detach(c)
	if parent == nil {
		m.roots = append(m.roots, c)
		return nil
	}
	p := parent.(*memoryNode)
	c.parent = p
	p.children = append(p.children, c)
	return nil
}

func (m *Memory) Delete(node Node) {
	m.detach(node.(*memoryNode))
}

// detach removes n from its current parent or from the root list.
func (m *Memory) detach(n *memoryNode) {
	if n.parent != nil {
		sibs := n.parent.children
		for i, s := range sibs {
			if s == n {
				n.parent.children = append(sibs[:i], sibs[i+1:]...)
				break
			}
		}
		n.parent = nil
		return
	}
	for i, r := range m.roots {
		if r == n {
			m.roots = append(m.roots[:i], m.roots[i+1:]...)
			return
		}
	}
}

// NodeCount returns the number of nodes in the subtree rooted at node,
// including node itself.
func NodeCount(node Node) int {
	count := 1
	for _, child := range node.Children() {
		count += NodeCount(child)
	}
	return count
}

func (n *memoryNode) ID() string    { return n.id }
func (n *memoryNode) Name() string  { return n.name }
func (n *memoryNode) Rename(s string) { n.name = s }

func (n *memoryNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *memoryNode) Children() []Node {
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *memoryNode) HasAttr(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

func (n *memoryNode) Attr(name string) (any, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *memoryNode) SetAttr(name string, value any) {
	n.attrs[name] = value
}

func (n *memoryNode) Connection(attr string) (Node, bool) {
	src, ok := n.conns[attr]
	if !ok {
		return nil, false
	}
	return src, true
}

func (n *memoryNode) Connect(attr string, source Node) {
	n.conns[attr] = source.(*memoryNode)
}

func (n *memoryNode) WorldMatrix() Matrix     { return n.world }
func (n *memoryNode) SetWorldMatrix(m Matrix) { n.world = m }
