// Package control implements the control_01 variant: a single free
// control guide with one root locator.
package control

import (
	"github.com/rigforge/rigforge/component"
	"github.com/rigforge/rigforge/param"
	"github.com/rigforge/rigforge/scene"
)

// Type is the comp_type tag of this variant.
const Type = "control_01"

func init() {
	component.MustRegister(component.Factory{
		Type:    Type,
		Version: "1.0.0",
		New:     New,
	})
}

// Guide is the control_01 component guide.
type Guide struct {
	*component.Base
}

// New creates an unpopulated control_01 guide.
func New() component.Guide {
	b := component.NewBase(Type)
	b.MustAdd("ctlSize", param.KindFloat, 1.0)
	b.MustAdd("icon", param.KindString, "cube")
	b.MustAdd("joint", param.KindBool, true)
	return &Guide{Base: b}
}

func (g *Guide) LocalNames() []string {
	return []string{component.RootLocal}
}

func (g *Guide) SetFromHierarchy(sc scene.Scene, root scene.Node, sampler scene.CurveSampler) error {
	if err := g.AdoptRoot(root); err != nil {
		return err
	}
	g.LoadFromNode(root, sampler, 2)
	g.RefreshFromParams()
	g.SetPositions([]scene.Vector{root.WorldMatrix().Translation()})
	return nil
}

func (g *Guide) Draw(sc scene.Scene, parent scene.Node) (scene.Node, error) {
	pos := scene.Vector{}
	if len(g.APos) > 0 {
		pos = g.APos[0]
	}
	root := g.DrawRoot(sc, parent, pos)
	g.SetPositions([]scene.Vector{pos})
	return root, nil
}

func (g *Guide) Symmetrize() error {
	return g.SymmetrizeBase()
}
