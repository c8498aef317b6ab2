// Package component defines the contract between the guide core and
// per-component-type variants, the shared base every variant embeds, and
// the registry that resolves a comp_type tag to a factory.
//
// A variant owns one subtree rooted at a single scene node. It knows how
// to populate itself from that subtree, how to materialize itself under a
// resolved parent, and which named attachment points it exposes for
// children to parent to. Everything else — ordering, parent resolution,
// template topology — is the guide package's business.
package component

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rigforge/rigforge/errors"
	"github.com/rigforge/rigforge/param"
	"github.com/rigforge/rigforge/scene"
)

// Scene node tags used by discovery.
const (
	// AttrCompType marks a component root and names its variant.
	AttrCompType = "comp_type"
	// AttrIsModel marks the guide model root.
	AttrIsModel = "ismodel"
	// AttrGuidePart marks every node a guide owns, attachment points
	// included.
	AttrGuidePart = "isGuidePart"
)

// RootLocal is the attachment-point name of a component's own root node.
const RootLocal = "root"

// Guide is the per-variant contract consumed by the guide core.
type Guide interface {
	// Info exposes the shared state every variant embeds.
	Info() *Base

	// SetFromHierarchy populates the guide's parameters and attachment
	// positions from its own subtree. Partial failures latch the
	// embedded registry invalid rather than aborting.
	SetFromHierarchy(sc scene.Scene, root scene.Node, sampler scene.CurveSampler) error

	// Draw materializes the component under the resolved parent and
	// returns the created root node.
	Draw(sc scene.Scene, parent scene.Node) (scene.Node, error)

	// LocalNames lists the attachment points this variant exposes, root
	// first.
	LocalNames() []string

	// Symmetrize remaps the guide to the opposite side and mirrors its
	// spatial data. Only sided (L/R) components can symmetrize.
	Symmetrize() error
}

// Base carries the state shared by all variants. The parent back-reference
// is a key into the owning graph's component map, never a pointer: the
// graph owns every entry's lifetime.
type Base struct {
	*param.Registry

	CompType string
	Name     string
	Side     string
	Index    int

	// Root is the live scene node, nil while the component exists only
	// as data. A nil Root forces Draw to create new nodes.
	Root scene.Node

	ParentFullName  string // "" means attached directly to the model root
	ParentLocalName string

	ChildComponents []string

	// APos holds the attachment positions in discovery order; used for
	// scale inference and mirroring.
	APos []scene.Vector

	// Connectors lists the parent types this variant accepts special
	// connections from.
	Connectors []string
}

// NewBase creates the shared state for a variant and declares the common
// parameters every component carries.
func NewBase(compType string) *Base {
	b := &Base{
		Registry: param.NewRegistry(),
		CompType: compType,
		Name:     "component",
		Side:     SideCenter,
	}
	b.MustAdd(AttrCompType, param.KindString, compType)
	b.MustAdd("comp_name", param.KindString, b.Name)
	b.MustAdd("comp_side", param.KindString, b.Side)
	b.MustAdd("comp_index", param.KindInt, 0)
	b.MustAdd("connector", param.KindString, "standard")
	b.MustAdd("ui_host", param.KindString, "")
	b.MustAdd("ctlGrp", param.KindString, "")
	b.MustAdd("guide_positions", param.KindString, "")
	return b
}

func (b *Base) Info() *Base { return b }

// FullName returns the unique component identifier, "<name>_<side><index>".
func (b *Base) FullName() string {
	return FormatFullName(b.Name, b.Side, b.Index)
}

// NodeName returns the scene name of one of this component's nodes.
func (b *Base) NodeName(local string) string {
	return b.FullName() + "_" + local
}

// SetIdentity sets name, side and index, mirroring them into the params.
func (b *Base) SetIdentity(name, side string, index int) {
	b.Name, b.Side, b.Index = name, side, index
	_ = b.Set("comp_name", name)
	_ = b.Set("comp_side", side)
	_ = b.Set("comp_index", index)
	b.SetOwner(b.FullName())
}

// syncIdentityFromParams refreshes Name/Side/Index after a bulk param load.
func (b *Base) syncIdentityFromParams() {
	if n := b.StringValue("comp_name"); n != "" {
		b.Name = n
	}
	if s := b.StringValue("comp_side"); s != "" {
		b.Side = s
	}
	b.Index = b.IntValue("comp_index")
	b.SetOwner(b.FullName())
}

// AdoptRoot records the live root node and derives the identity from its
// name following the "<name>_<side><index>_root" convention.
func (b *Base) AdoptRoot(root scene.Node) error {
	fullName, local := SplitNodeName(root.Name())
	if local != RootLocal {
		return errors.NewInvalidSelection("node %s is not a component root", root.Name())
	}
	name, side, index, ok := ParseFullName(fullName)
	if !ok {
		return errors.NewInvalidSelection("node %s does not follow the naming convention", root.Name())
	}
	b.Root = root
	b.SetIdentity(name, side, index)
	return nil
}

// ObjectByLocalName resolves an attachment point to its live scene node.
// The plain name lookup is tried first; on a name clash elsewhere in the
// scene the model subtree is crawled instead.
func (b *Base) ObjectByLocalName(sc scene.Scene, model scene.Node, local string) scene.Node {
	want := b.NodeName(local)
	if model != nil {
		if model.Name() == want {
			return model
		}
		if n, ok := sc.FindChild(model, want); ok {
			return n
		}
	}
	if n, ok := sc.FindNode(want); ok {
		return n
	}
	return nil
}

// SetFreeIndex bumps the index until the component's root name is unused
// under the model, keeping fullNames unique after duplication.
func (b *Base) SetFreeIndex(sc scene.Scene, model scene.Node) {
	for {
		if _, taken := sc.FindChild(model, b.NodeName(RootLocal)); !taken {
			break
		}
		b.Index++
	}
	b.SetIdentity(b.Name, b.Side, b.Index)
}

// Rename rewrites the component identity and renames every node of its
// subtree from the old prefix to the new one. Only the identity
// attributes are rewritten on the root; a full Apply would re-create
// curve nodes.
func (b *Base) Rename(sc scene.Scene, newName, newSide string, newIndex int) {
	oldPrefix := b.FullName()
	b.SetIdentity(newName, newSide, newIndex)
	newPrefix := b.FullName()
	if b.Root == nil {
		return
	}
	renameSubtree(b.Root, oldPrefix, newPrefix)
	b.Root.SetAttr("comp_name", b.Name)
	b.Root.SetAttr("comp_side", b.Side)
	b.Root.SetAttr("comp_index", b.Index)
}

func renameSubtree(n scene.Node, oldPrefix, newPrefix string) {
	if strings.HasPrefix(n.Name(), oldPrefix) {
		n.Rename(newPrefix + strings.TrimPrefix(n.Name(), oldPrefix))
	}
	for _, c := range n.Children() {
		renameSubtree(c, oldPrefix, newPrefix)
	}
}

// SetPositions records the attachment positions and mirrors them into the
// guide_positions param so they survive the template round trip.
func (b *Base) SetPositions(apos []scene.Vector) {
	b.APos = apos
	_ = b.Set("guide_positions", encodePositions(apos))
}

// SymmetrizeBase flips the side and mirrors the recorded positions.
// Center components cannot symmetrize.
func (b *Base) SymmetrizeBase() error {
	if b.Side != SideLeft && b.Side != SideRight {
		return errors.Newf("component %s is not sided, can't symmetrize", b.FullName())
	}
	b.SetIdentity(b.Name, MirrorSide(b.Side), b.Index)
	mirrored := make([]scene.Vector, len(b.APos))
	for i, p := range b.APos {
		mirrored[i] = p.MirrorX()
	}
	b.SetPositions(mirrored)
	if host := b.StringValue("ui_host"); host != "" {
		_ = b.Set("ui_host", MirrorName(host))
	}
	return nil
}

// DrawRoot creates and tags the component's root node under parent. The
// node carries every declared parameter as an attribute.
func (b *Base) DrawRoot(sc scene.Scene, parent scene.Node, pos scene.Vector) scene.Node {
	root := sc.CreateNode(b.NodeName(RootLocal), parent)
	b.Apply(sc, root)
	root.SetAttr(AttrGuidePart, true)
	root.SetWorldMatrix(scene.Identity().WithTranslation(pos))
	b.Root = root
	return root
}

// DrawPart creates and tags one attachment-point node.
func (b *Base) DrawPart(sc scene.Scene, parent scene.Node, local string, pos scene.Vector) scene.Node {
	n := sc.CreateNode(b.NodeName(local), parent)
	n.SetAttr(AttrGuidePart, true)
	n.SetWorldMatrix(scene.Identity().WithTranslation(pos))
	return n
}

// TemplateEntry is one component's slot in the guide template document.
type TemplateEntry struct {
	ParamValues     map[string]any `json:"param_values"`
	ParentFullName  string         `json:"parent_fullName"`
	ParentLocalName string         `json:"parent_localName"`
	ChildComponents []string       `json:"child_components"`
}

// TemplateEntry snapshots the component for serialization. Curve-valued
// and connection-driven parameters serialize from their current in-memory
// value, which may be nil; that loss is a documented property of the
// format.
func (b *Base) TemplateEntry() *TemplateEntry {
	return &TemplateEntry{
		ParamValues:     b.Snapshot(),
		ParentFullName:  b.ParentFullName,
		ParentLocalName: b.ParentLocalName,
		ChildComponents: []string{},
	}
}

// ApplyTemplateEntry restores the component from its template slot.
func (b *Base) ApplyTemplateEntry(e *TemplateEntry) {
	b.LoadFromMap(e.ParamValues)
	b.syncIdentityFromParams()
	b.ParentFullName = e.ParentFullName
	b.ParentLocalName = e.ParentLocalName
	b.ChildComponents = append([]string(nil), e.ChildComponents...)
	b.APos = parsePositions(b.StringValue("guide_positions"))
}

// RefreshFromParams re-derives identity and positions after any bulk load.
func (b *Base) RefreshFromParams() {
	b.syncIdentityFromParams()
	b.APos = parsePositions(b.StringValue("guide_positions"))
}

// encodePositions packs vectors as "x,y,z;x,y,z" for a plain string param.
func encodePositions(apos []scene.Vector) string {
	parts := make([]string, len(apos))
	for i, p := range apos {
		parts[i] = fmt.Sprintf("%g,%g,%g", p.X, p.Y, p.Z)
	}
	return strings.Join(parts, ";")
}

func parsePositions(s string) []scene.Vector {
	if s == "" {
		return nil
	}
	var out []scene.Vector
	for _, part := range strings.Split(s, ";") {
		fields := strings.Split(part, ",")
		if len(fields) != 3 {
			continue
		}
		var v scene.Vector
		var err error
		if v.X, err = strconv.ParseFloat(fields[0], 64); err != nil {
			continue
		}
		if v.Y, err = strconv.ParseFloat(fields[1], 64); err != nil {
			continue
		}
		if v.Z, err = strconv.ParseFloat(fields[2], 64); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
