package scene

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rigforge/rigforge/errors"
)

// nodeDoc is the serialized form of one node subtree.
type nodeDoc struct {
	Name        string            `json:"name"`
	Attrs       map[string]any    `json:"attrs,omitempty"`
	Connections map[string]string `json:"connections,omitempty"` // attr -> source node name
	Tra         *Matrix           `json:"tra,omitempty"`
	Children    []*nodeDoc        `json:"children,omitempty"`
}

type sceneDoc struct {
	Roots []*nodeDoc `json:"roots"`
}

// Save writes the whole scene as JSON.
func (m *Memory) Save(w io.Writer) error {
	doc := sceneDoc{}
	for _, r := range m.roots {
		doc.Roots = append(doc.Roots, encodeNode(r))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// SaveFile writes the whole scene to a JSON file.
func (m *Memory) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create scene file %s", path)
	}
	defer f.Close()
	return m.Save(f)
}

// Load reads a scene previously written by Save.
func Load(r io.Reader) (*Memory, error) {
	var doc sceneDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode scene document")
	}

	m := NewMemory()
	pending := map[*memoryNode]map[string]string{}
	for _, rd := range doc.Roots {
		decodeNode(m, rd, nil, pending)
	}

	// Connections reference nodes by name; resolve after the whole tree
	// exists so forward references work.
	for node, conns := range pending {
		for attr, srcName := range conns {
			src, ok := m.FindNode(srcName)
			if !ok {
				return nil, errors.Newf("connection source %s not found for %s.%s",
					srcName, node.name, attr)
			}
			node.Connect(attr, src)
		}
	}
	return m, nil
}

// LoadFile reads a scene from a JSON file.
func LoadFile(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open scene file %s", path)
	}
	defer f.Close()
	return Load(f)
}

func encodeNode(n *memoryNode) *nodeDoc {
	doc := &nodeDoc{Name: n.name}
	if len(n.attrs) > 0 {
		doc.Attrs = n.attrs
	}
	if len(n.conns) > 0 {
		doc.Connections = make(map[string]string, len(n.conns))
		for attr, src := range n.conns {
			doc.Connections[attr] = src.name
		}
	}
	if n.world != Identity() {
		tra := n.world
		doc.Tra = &tra
	}
	for _, c := range n.children {
		doc.Children = append(doc.Children, encodeNode(c))
	}
	return doc
}

func decodeNode(m *Memory, doc *nodeDoc, parent Node, pending map[*memoryNode]map[string]string) {
	n := m.CreateNode(doc.Name, parent).(*memoryNode)
	for k, v := range doc.Attrs {
		n.SetAttr(k, v)
	}
	if doc.Tra != nil {
		n.SetWorldMatrix(*doc.Tra)
	}
	if len(doc.Connections) > 0 {
		pending[n] = doc.Connections
	}
	for _, cd := range doc.Children {
		decodeNode(m, cd, n, pending)
	}
}
