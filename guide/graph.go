// Package guide owns the guide graph: the ordered set of component guides
// discovered from a scene hierarchy or loaded from a template document,
// plus the rig-level options, and the operations that materialize, update
// and duplicate guides in a host scene.
//
// The graph is data. The scene is a collaborator reached only through the
// scene package interfaces, so every operation here runs identically
// against a live host or the in-memory scene.
package guide

import (
	"time"

	"github.com/rigforge/rigforge/component"
	"github.com/rigforge/rigforge/param"
	"github.com/rigforge/rigforge/scene"
	"github.com/rigforge/rigforge/version"
)

// Scene names owned by the guide graph.
const (
	// ModelRootName is the default name of a fresh guide model root.
	ModelRootName = "guide"
	// ControllersOrgName is the container under the model root holding
	// controller shape buffers. Its contents are opaque to the core.
	ControllersOrgName = "controllers_org"
)

// Graph holds one guide: rig options, components in build order, parent
// links and controller buffers. The embedded registry carries the rig
// options; each component carries its own.
type Graph struct {
	*param.Registry

	// Model is the guide model root node, nil until discovery or an
	// initial draw binds one.
	Model scene.Node

	// Components maps fullName to its guide. ComponentsIndex preserves
	// discovery order, which is topological: parents precede children.
	Components      map[string]component.Guide
	ComponentsIndex []string

	// Parents mirrors ComponentsIndex with each component's parent
	// fullName, "model" for components attached to the model root.
	Parents []string

	// Controllers holds the controller shape buffers found under
	// controllers_org, keyed by node name.
	Controllers map[string]scene.Node

	sc        scene.Scene
	sampler   scene.CurveSampler
	collector scene.CurveCollector
	variants  *component.Registry
}

// Option configures a Graph.
type Option func(*Graph)

// WithVariants overrides the component variant registry.
func WithVariants(r *component.Registry) Option {
	return func(g *Graph) { g.variants = r }
}

// WithSampler overrides the curve sampler.
func WithSampler(s scene.CurveSampler) Option {
	return func(g *Graph) { g.sampler = s }
}

// WithCollector overrides the controller shape collector.
func WithCollector(c scene.CurveCollector) Option {
	return func(g *Graph) { g.collector = c }
}

// NewGraph creates an empty guide graph bound to a scene. Defaults: the
// process-wide variant registry, linear curve sampling, shape-buffer
// collection.
func NewGraph(sc scene.Scene, opts ...Option) *Graph {
	g := &Graph{
		Registry:    param.NewRegistry(),
		Components:  make(map[string]component.Guide),
		Controllers: make(map[string]scene.Node),
		sc:          sc,
		sampler:     scene.LinearSampler{},
		collector:   scene.ShapeCollector{},
		variants:    component.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.addOptions()
	return g
}

// Scene returns the bound scene.
func (g *Graph) Scene() scene.Scene { return g.sc }

// addOptions declares the rig-level option set.
func (g *Graph) addOptions() {
	g.MustAdd("rig_name", param.KindString, "rig")
	g.MustAdd(component.AttrIsModel, param.KindBool, true)
	_, _ = g.AddEnum("mode", []string{"final", "WIP"}, 0)
	_, _ = g.AddEnum("step", []string{
		"All Steps", "Objects", "Properties", "Operators", "Connect", "Finalize",
	}, 0)

	g.MustAdd("size", param.KindFloat, 1.0)
	g.MustAdd("classicChannelNames", param.KindBool, false)
	g.MustAdd("proxyChannels", param.KindBool, false)
	g.MustAdd("worldCtl", param.KindBool, false)
	g.MustAdd("joint_rig", param.KindBool, true)
	g.MustAdd("force_uniScale", param.KindBool, false)

	g.MustAdd("L_color_fk", param.KindInt, 6)
	g.MustAdd("L_color_ik", param.KindInt, 18)
	g.MustAdd("R_color_fk", param.KindInt, 23)
	g.MustAdd("R_color_ik", param.KindInt, 14)
	g.MustAdd("C_color_fk", param.KindInt, 17)
	g.MustAdd("C_color_ik", param.KindInt, 21)

	g.MustAdd("doPreCustomStep", param.KindBool, false)
	g.MustAdd("doPostCustomStep", param.KindBool, false)
	g.MustAdd("preCustomStep", param.KindString, "")
	g.MustAdd("postCustomStep", param.KindString, "")

	g.MustAdd("comments", param.KindString, "")
	g.MustAdd("user", param.KindString, "")
	g.MustAdd("date", param.KindString, time.Now().Format(time.RFC3339))
	g.MustAdd("version", param.KindString, version.Version)
}

// Component returns the guide registered under fullName.
func (g *Graph) Component(fullName string) (component.Guide, bool) {
	c, ok := g.Components[fullName]
	return c, ok
}

// register adds a discovered component under its fullName.
func (g *Graph) register(c component.Guide) {
	fn := c.Info().FullName()
	g.Components[fn] = c
	g.ComponentsIndex = append(g.ComponentsIndex, fn)
}

// reset drops all discovered state, keeping the option definitions.
func (g *Graph) reset() {
	g.Model = nil
	g.Components = make(map[string]component.Guide)
	g.ComponentsIndex = nil
	g.Parents = nil
	g.Controllers = make(map[string]scene.Node)
	g.ResetValidity()
}

// Valid reports whether the rig options and every component survived the
// last reconciliation pass without a stale lookup.
func (g *Graph) Valid() bool {
	if !g.Registry.Valid() {
		return false
	}
	for _, fn := range g.ComponentsIndex {
		if !g.Components[fn].Info().Valid() {
			return false
		}
	}
	return true
}

// Diagnostics aggregates the graph's own findings with every component's.
func (g *Graph) Diagnostics() []param.Diagnostic {
	out := append([]param.Diagnostic(nil), g.Registry.Diagnostics()...)
	for _, fn := range g.ComponentsIndex {
		out = append(out, g.Components[fn].Info().Diagnostics()...)
	}
	return out
}

// addOptionValues derives the options computed from discovered state,
// currently the rig size inferred from the guide's spatial extent.
func (g *Graph) addOptionValues() {
	var points []scene.Vector
	for _, fn := range g.ComponentsIndex {
		points = append(points, g.Components[fn].Info().APos...)
	}
	size := 0.0
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if d := points[i].Distance(points[j]); d > size {
				size = d
			}
		}
	}
	if size < 0.01 {
		size = 1
	}
	_ = g.Set("size", size)
}
