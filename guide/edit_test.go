package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigforge/rigforge/component"
	"github.com/rigforge/rigforge/errors"
	"github.com/rigforge/rigforge/scene"
)

func TestAddComponentUnderAttachmentPoint(t *testing.T) {
	sc := scene.NewMemory()
	drawSample(t, sc)
	loc := findNode(t, sc, "arm_L0_loc1")

	g := NewGraph(sc)
	c, err := g.AddComponent("control_01", "thumb", component.SideLeft, loc)
	require.NoError(t, err)
	assert.Equal(t, "thumb_L0", c.Info().FullName())

	root := findNode(t, sc, "thumb_L0_root")
	assert.Equal(t, loc.ID(), root.Parent().ID())
	assert.Equal(t, "arm_L0", c.Info().ParentFullName)
	assert.Equal(t, "loc1", c.Info().ParentLocalName)

	// A full reconcile sees the new component in place.
	check := NewGraph(sc)
	require.NoError(t, check.SetFromHierarchy(findNode(t, sc, ModelRootName), true))
	got, ok := check.Component("thumb_L0")
	require.True(t, ok)
	assert.Equal(t, "arm_L0", got.Info().ParentFullName)
}

func TestAddComponentPicksFreeIndex(t *testing.T) {
	sc := scene.NewMemory()
	drawSample(t, sc)
	model := findNode(t, sc, ModelRootName)

	g := NewGraph(sc)
	c, err := g.AddComponent("chain_01", "arm", component.SideLeft, model)
	require.NoError(t, err)

	// arm_L0 is taken by the sample guide.
	assert.Equal(t, "arm_L1", c.Info().FullName())
	findNode(t, sc, "arm_L1_root")
	findNode(t, sc, "arm_L0_root")
}

func TestAddComponentFreshScene(t *testing.T) {
	sc := scene.NewMemory()

	g := NewGraph(sc)
	c, err := g.AddComponent("control_01", "world", "", nil)
	require.NoError(t, err)

	assert.Equal(t, "world_C0", c.Info().FullName())
	require.NotNil(t, g.Model)
	root := findNode(t, sc, "world_C0_root")
	assert.Equal(t, g.Model.ID(), root.Parent().ID())
	assert.Equal(t, []string{"model"}, g.Parents)
}

func TestAddComponentUnknownType(t *testing.T) {
	g := NewGraph(scene.NewMemory())
	_, err := g.AddComponent("tentacle_99", "blob", component.SideCenter, nil)
	require.Error(t, err)
	assert.True(t, errors.IsUnknownComponentType(err))
}

func TestAddComponentParentOutsideGuide(t *testing.T) {
	sc := scene.NewMemory()
	stray := sc.CreateNode("stray", nil)

	g := NewGraph(sc)
	_, err := g.AddComponent("control_01", "world", component.SideCenter, stray)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidSelection(err))
}

func TestRenameComponentRenamesSubtree(t *testing.T) {
	sc := scene.NewMemory()
	drawSample(t, sc)
	armRoot := findNode(t, sc, "arm_L0_root")

	g := NewGraph(sc)
	nf, err := g.RenameComponent(armRoot, "wing", component.SideRight, 0)
	require.NoError(t, err)
	assert.Equal(t, "wing_R0", nf)

	root := findNode(t, sc, "wing_R0_root")
	findNode(t, sc, "wing_R0_loc1")
	name, _ := root.Attr("comp_name")
	assert.Equal(t, "wing", name)
	side, _ := root.Attr("comp_side")
	assert.Equal(t, component.SideRight, side)

	// The hand keeps its own name but hangs off the renamed locator.
	hand := findNode(t, sc, "hand_L0_root")
	assert.Equal(t, "wing_R0_loc1", hand.Parent().Name())

	check := NewGraph(sc)
	require.NoError(t, check.SetFromHierarchy(findNode(t, sc, ModelRootName), true))
	got, ok := check.Component("hand_L0")
	require.True(t, ok)
	assert.Equal(t, "wing_R0", got.Info().ParentFullName)
}

func TestRenameComponentClashBumpsIndex(t *testing.T) {
	sc := scene.NewMemory()
	drawSample(t, sc)
	handRoot := findNode(t, sc, "hand_L0_root")

	g := NewGraph(sc)
	nf, err := g.RenameComponent(handRoot, "world", component.SideCenter, 0)
	require.NoError(t, err)

	// world_C0 is taken by the sample guide.
	assert.Equal(t, "world_C1", nf)
	findNode(t, sc, "world_C1_root")
	findNode(t, sc, "world_C0_root")
}

func TestRenameComponentRequiresComponentRoot(t *testing.T) {
	sc := scene.NewMemory()
	drawn := drawSample(t, sc)

	g := NewGraph(sc)
	_, err := g.RenameComponent(drawn.Model, "wing", component.SideLeft, 0)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidSelection(err))
}
