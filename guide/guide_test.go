package guide

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rigforge/rigforge/component"
	_ "github.com/rigforge/rigforge/component/chain"
	_ "github.com/rigforge/rigforge/component/control"
	"github.com/rigforge/rigforge/scene"
)

func mustResolve(t *testing.T, compType string) component.Guide {
	t.Helper()
	c, err := component.Resolve(compType)
	require.NoError(t, err)
	return c
}

// sampleGraph assembles world_C0 (control) <- arm_L0 (chain) <- hand_L0
// (control) as pure data, no scene nodes yet.
func sampleGraph(t *testing.T, sc scene.Scene) *Graph {
	t.Helper()
	g := NewGraph(sc)

	world := mustResolve(t, "control_01")
	world.Info().SetIdentity("world", component.SideCenter, 0)
	world.Info().SetPositions([]scene.Vector{{}})
	g.register(world)
	g.Parents = append(g.Parents, "model")

	arm := mustResolve(t, "chain_01")
	arm.Info().SetIdentity("arm", component.SideLeft, 0)
	require.NoError(t, arm.Info().Set("division", 3))
	arm.Info().SetPositions([]scene.Vector{{X: 1}, {X: 2}, {X: 3}})
	arm.Info().ParentFullName = "world_C0"
	arm.Info().ParentLocalName = component.RootLocal
	g.register(arm)
	g.Parents = append(g.Parents, "world_C0")
	world.Info().ChildComponents = append(world.Info().ChildComponents, "arm_L0")

	hand := mustResolve(t, "control_01")
	hand.Info().SetIdentity("hand", component.SideLeft, 0)
	hand.Info().SetPositions([]scene.Vector{{X: 4}})
	hand.Info().ParentFullName = "arm_L0"
	hand.Info().ParentLocalName = "loc1"
	g.register(hand)
	g.Parents = append(g.Parents, "arm_L0")
	arm.Info().ChildComponents = append(arm.Info().ChildComponents, "hand_L0")

	return g
}

// drawSample materializes the sample graph into the scene.
func drawSample(t *testing.T, sc scene.Scene) *Graph {
	t.Helper()
	g := sampleGraph(t, sc)
	res, err := g.Draw(DrawOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"world_C0", "arm_L0", "hand_L0"}, res.Built)
	return g
}

func findNode(t *testing.T, sc scene.Scene, name string) scene.Node {
	t.Helper()
	n, ok := sc.FindNode(name)
	require.True(t, ok, "node %s not in scene", name)
	return n
}
