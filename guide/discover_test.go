package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigforge/rigforge/component"
	"github.com/rigforge/rigforge/errors"
	"github.com/rigforge/rigforge/param"
	"github.com/rigforge/rigforge/scene"
)

func TestSetFromSelectionEmpty(t *testing.T) {
	g := NewGraph(scene.NewMemory())
	err := g.SetFromSelection()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidSelection(err))
}

func TestSetFromSelectionOutsideGuide(t *testing.T) {
	sc := scene.NewMemory()
	stray := sc.CreateNode("stray", nil)

	g := NewGraph(sc)
	err := g.SetFromSelection(stray)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidSelection(err))
}

func TestSetFromSelectionWalksUpToComponentRoot(t *testing.T) {
	sc := scene.NewMemory()
	drawSample(t, sc)
	loc := findNode(t, sc, "arm_L0_loc0")

	g := NewGraph(sc)
	require.NoError(t, g.SetFromSelection(loc))

	// Selection inside the arm branch discovers the branch only, but the
	// seed still records its live parent by name.
	assert.Equal(t, []string{"arm_L0", "hand_L0"}, g.ComponentsIndex)
	assert.True(t, g.Valid())
	arm, ok := g.Component("arm_L0")
	require.True(t, ok)
	assert.Equal(t, "world_C0", arm.Info().ParentFullName)
	assert.Equal(t, component.RootLocal, arm.Info().ParentLocalName)
}

func TestSetFromSelectionMultipleNodes(t *testing.T) {
	sc := scene.NewMemory()
	drawSample(t, sc)

	hand := findNode(t, sc, "hand_L0_root")
	world := findNode(t, sc, "world_C0_root")

	// world's branch covers arm and hand again; overlapping branches must
	// not register a component twice.
	g := NewGraph(sc)
	require.NoError(t, g.SetFromSelection(hand, world))

	assert.ElementsMatch(t, []string{"hand_L0", "world_C0", "arm_L0"}, g.ComponentsIndex)
	assert.True(t, g.Valid())

	hc, ok := g.Component("hand_L0")
	require.True(t, ok)
	assert.Equal(t, "arm_L0", hc.Info().ParentFullName)
	assert.Equal(t, "loc1", hc.Info().ParentLocalName)
}

func TestSetFromSelectionAcrossModels(t *testing.T) {
	sc := scene.NewMemory()
	drawSample(t, sc)

	other := NewGraph(sc)
	foreign := other.InitialHierarchy()
	foreign.Rename("guide2")
	stranger := mustResolve(t, "control_01")
	stranger.Info().SetIdentity("stranger", component.SideCenter, 0)
	_, err := stranger.Draw(sc, foreign)
	require.NoError(t, err)

	g := NewGraph(sc)
	err = g.SetFromSelection(
		findNode(t, sc, "arm_L0_root"),
		findNode(t, sc, "stranger_C0_root"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidSelection(err))
}

func TestReconcileFullHierarchy(t *testing.T) {
	sc := scene.NewMemory()
	drawn := drawSample(t, sc)

	g := NewGraph(sc)
	require.NoError(t, g.SetFromHierarchy(drawn.Model, true))

	assert.True(t, g.Valid())
	assert.Equal(t, []string{"world_C0", "arm_L0", "hand_L0"}, g.ComponentsIndex)
	assert.Equal(t, []string{"model", "world_C0", "arm_L0"}, g.Parents)

	arm, _ := g.Component("arm_L0")
	assert.Equal(t, 3, arm.Info().IntValue("division"))
	assert.Equal(t, []string{"hand_L0"}, arm.Info().ChildComponents)

	hand, _ := g.Component("hand_L0")
	assert.Equal(t, "arm_L0", hand.Info().ParentFullName)
	assert.Equal(t, "loc1", hand.Info().ParentLocalName)
}

func TestReconcileIdempotent(t *testing.T) {
	sc := scene.NewMemory()
	drawn := drawSample(t, sc)

	g1 := NewGraph(sc)
	require.NoError(t, g1.SetFromHierarchy(drawn.Model, true))
	g2 := NewGraph(sc)
	require.NoError(t, g2.SetFromHierarchy(drawn.Model, true))

	assert.Equal(t, g1.ComponentsIndex, g2.ComponentsIndex)
	assert.Equal(t, g1.Parents, g2.Parents)
	for _, fn := range g1.ComponentsIndex {
		a, _ := g1.Component(fn)
		b, _ := g2.Component(fn)
		assert.Equal(t, a.Info().Snapshot(), b.Info().Snapshot(), fn)
	}
}

func TestUnknownComponentTypeSkipsSubtree(t *testing.T) {
	sc := scene.NewMemory()

	g := NewGraph(sc)
	model := g.InitialHierarchy()

	world := mustResolve(t, "control_01")
	world.Info().SetIdentity("world", component.SideCenter, 0)
	_, err := world.Draw(sc, model)
	require.NoError(t, err)

	weird := sc.CreateNode("blob_C0_root", model)
	weird.SetAttr(component.AttrCompType, "tentacle_99")

	// A perfectly good component below the unknown one stays undiscovered.
	inner := mustResolve(t, "control_01")
	inner.Info().SetIdentity("inner", component.SideCenter, 0)
	_, err = inner.Draw(sc, weird)
	require.NoError(t, err)

	out := NewGraph(sc)
	require.NoError(t, out.SetFromHierarchy(model, true))

	assert.Equal(t, []string{"world_C0"}, out.ComponentsIndex)
	assert.False(t, out.Valid())

	kinds := diagnosticKinds(out)
	assert.Contains(t, kinds, param.DiagUnknownComponentType)
}

func TestStaleComponentLatchesGraph(t *testing.T) {
	sc := scene.NewMemory()
	drawn := drawSample(t, sc)

	// Deleting loc1 also removes the hand parented under it.
	sc.Delete(findNode(t, sc, "arm_L0_loc1"))

	g := NewGraph(sc)
	require.NoError(t, g.SetFromHierarchy(drawn.Model, true))

	assert.False(t, g.Valid())
	assert.Equal(t, []string{"world_C0", "arm_L0"}, g.ComponentsIndex)
	assert.Contains(t, diagnosticKinds(g), param.DiagStaleGuide)

	// The latch is one-way until the next reconciliation pass.
	arm, _ := g.Component("arm_L0")
	require.NoError(t, arm.Info().Set("division", 3))
	assert.False(t, g.Valid())
}

func TestUnresolvedParentAttachesToModel(t *testing.T) {
	sc := scene.NewMemory()
	drawn := drawSample(t, sc)

	// A component rooted under an untagged intermediate node resolves
	// neither by naming nor by attachment-point identity.
	rogue := sc.CreateNode("rogue", drawn.Model)
	orphan := mustResolve(t, "control_01")
	orphan.Info().SetIdentity("orphan", component.SideCenter, 0)
	_, err := orphan.Draw(sc, rogue)
	require.NoError(t, err)

	g := NewGraph(sc)
	require.NoError(t, g.SetFromHierarchy(drawn.Model, true))

	assert.False(t, g.Valid())
	assert.Contains(t, diagnosticKinds(g), param.DiagUnresolvedParent)
	got, ok := g.Component("orphan_C0")
	require.True(t, ok)
	assert.Empty(t, got.Info().ParentFullName)
}

func TestFastAndScanParentAgree(t *testing.T) {
	sc := scene.NewMemory()
	drawn := drawSample(t, sc)

	g := NewGraph(sc)
	require.NoError(t, g.SetFromHierarchy(drawn.Model, true))

	hand, _ := g.Component("hand_L0")
	sceneParent := hand.Info().Root.Parent()
	require.NotNil(t, sceneParent)

	fastFull, fastLocal, ok := g.fastParent(sceneParent)
	require.True(t, ok)
	scanFull, scanLocal, ok := g.scanParent(sceneParent)
	require.True(t, ok)

	assert.Equal(t, fastFull, scanFull)
	assert.Equal(t, fastLocal, scanLocal)
	assert.Equal(t, "arm_L0", fastFull)
	assert.Equal(t, "loc1", fastLocal)
}

func TestSizeInference(t *testing.T) {
	sc := scene.NewMemory()
	drawn := drawSample(t, sc)

	g := NewGraph(sc)
	require.NoError(t, g.SetFromHierarchy(drawn.Model, true))

	// Attachment points span x=0..4.
	assert.InDelta(t, 4.0, g.FloatValue("size"), 1e-9)
}

func diagnosticKinds(g *Graph) []param.DiagnosticKind {
	var kinds []param.DiagnosticKind
	for _, d := range g.Diagnostics() {
		kinds = append(kinds, d.Kind)
	}
	return kinds
}
