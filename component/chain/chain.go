// Package chain implements the chain_01 variant: an ordered run of
// locators (spine, neck, limb segments). Each locator is an attachment
// point, so child components can parent anywhere along the chain.
package chain

import (
	"fmt"

	"github.com/rigforge/rigforge/component"
	"github.com/rigforge/rigforge/param"
	"github.com/rigforge/rigforge/scene"
)

// Type is the comp_type tag of this variant.
const Type = "chain_01"

// DefaultDivision is the locator count for a freshly created chain.
const DefaultDivision = 3

func init() {
	component.MustRegister(component.Factory{
		Type:    Type,
		Version: "1.2.0",
		New:     New,
	})
}

// Guide is the chain_01 component guide.
type Guide struct {
	*component.Base
}

// New creates an unpopulated chain_01 guide.
func New() component.Guide {
	b := component.NewBase(Type)
	b.MustAdd("division", param.KindInt, DefaultDivision)
	b.MustAdd("neutralpose", param.KindBool, false)
	if _, err := b.AddCurve("st_profile", []float64{1, 1, 1}, 0); err != nil {
		panic(err)
	}
	g := &Guide{Base: b}
	g.Connectors = []string{Type}
	return g
}

// Division returns the locator count, root included.
func (g *Guide) Division() int {
	d := g.IntValue("division")
	if d < 1 {
		return DefaultDivision
	}
	return d
}

func (g *Guide) LocalNames() []string {
	names := []string{component.RootLocal}
	for i := 0; i < g.Division()-1; i++ {
		names = append(names, localName(i))
	}
	return names
}

func localName(i int) string {
	return fmt.Sprintf("loc%d", i)
}

func (g *Guide) SetFromHierarchy(sc scene.Scene, root scene.Node, sampler scene.CurveSampler) error {
	if err := g.AdoptRoot(root); err != nil {
		return err
	}
	// division drives the sampling density, so scalars load first and
	// st_profile resamples at the live division, not the default.
	g.LoadScalarsFromNode(root)
	g.LoadCurvesFromNode(root, sampler, g.Division())
	g.RefreshFromParams()

	// Collect live locator positions. A missing locator means the scene
	// drifted from the declared division; latch stale and keep what we
	// found.
	positions := []scene.Vector{root.WorldMatrix().Translation()}
	for i := 0; i < g.Division()-1; i++ {
		loc, ok := sc.FindChild(root, g.NodeName(localName(i)))
		if !ok {
			g.Invalidate(param.Diagnostic{
				Component: g.FullName(),
				Kind:      param.DiagStaleGuide,
				Message:   "missing chain locator " + g.NodeName(localName(i)),
			})
			break
		}
		positions = append(positions, loc.WorldMatrix().Translation())
	}
	g.SetPositions(positions)
	return nil
}

func (g *Guide) Draw(sc scene.Scene, parent scene.Node) (scene.Node, error) {
	positions := g.APos
	if len(positions) != g.Division() {
		positions = defaultPositions(g.Division())
	}

	root := g.DrawRoot(sc, parent, positions[0])
	prev := scene.Node(root)
	for i := 1; i < len(positions); i++ {
		prev = g.DrawPart(sc, prev, localName(i-1), positions[i])
	}
	g.SetPositions(positions)
	return root, nil
}

// defaultPositions spaces a fresh chain one unit apart along Y.
func defaultPositions(division int) []scene.Vector {
	out := make([]scene.Vector, division)
	for i := range out {
		out[i] = scene.Vector{Y: float64(i)}
	}
	return out
}

func (g *Guide) Symmetrize() error {
	return g.SymmetrizeBase()
}
