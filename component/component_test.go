package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigforge/rigforge/scene"
)

func TestBaseIdentity(t *testing.T) {
	b := NewBase("widget_01")
	b.SetIdentity("arm", SideLeft, 0)

	assert.Equal(t, "arm_L0", b.FullName())
	assert.Equal(t, "arm_L0_wrist", b.NodeName("wrist"))
	assert.Equal(t, "arm", b.StringValue("comp_name"))
	assert.Equal(t, SideLeft, b.StringValue("comp_side"))
	assert.Equal(t, 0, b.IntValue("comp_index"))
}

func TestAdoptRoot(t *testing.T) {
	sc := scene.NewMemory()
	root := sc.CreateNode("arm_L2_root", nil)

	b := NewBase("widget_01")
	require.NoError(t, b.AdoptRoot(root))
	assert.Equal(t, "arm_L2", b.FullName())
	assert.Equal(t, 2, b.Index)
	assert.Same(t, root, b.Root)

	bad := sc.CreateNode("arm_L2_wrist", nil)
	err := NewBase("widget_01").AdoptRoot(bad)
	require.Error(t, err)

	odd := sc.CreateNode("plain", nil)
	assert.Error(t, NewBase("widget_01").AdoptRoot(odd))
}

func TestObjectByLocalName(t *testing.T) {
	sc := scene.NewMemory()
	model := sc.CreateNode("guide", nil)
	armRoot := sc.CreateNode("arm_L0_root", model)
	wrist := sc.CreateNode("arm_L0_wrist", armRoot)

	b := NewBase("widget_01")
	b.SetIdentity("arm", SideLeft, 0)

	got := b.ObjectByLocalName(sc, model, "wrist")
	require.NotNil(t, got)
	assert.Equal(t, wrist.ID(), got.ID())

	assert.Nil(t, b.ObjectByLocalName(sc, model, "elbow"))
}

func TestSetFreeIndex(t *testing.T) {
	sc := scene.NewMemory()
	model := sc.CreateNode("guide", nil)
	sc.CreateNode("arm_L0_root", model)
	sc.CreateNode("arm_L1_root", model)

	b := NewBase("widget_01")
	b.SetIdentity("arm", SideLeft, 0)
	b.SetFreeIndex(sc, model)
	assert.Equal(t, 2, b.Index)
	assert.Equal(t, "arm_L2", b.FullName())
}

func TestRenameSubtree(t *testing.T) {
	sc := scene.NewMemory()
	model := sc.CreateNode("guide", nil)
	root := sc.CreateNode("arm_L0_root", model)
	sc.CreateNode("arm_L0_wrist", root)

	b := NewBase("widget_01")
	require.NoError(t, b.AdoptRoot(root))

	b.Rename(sc, "limb", SideRight, 1)
	assert.Equal(t, "limb_R1_root", root.Name())
	_, ok := sc.FindNode("limb_R1_wrist")
	assert.True(t, ok)
	assert.Equal(t, "limb", b.StringValue("comp_name"))
}

func TestSymmetrizeBase(t *testing.T) {
	b := NewBase("widget_01")
	b.SetIdentity("arm", SideLeft, 0)
	b.SetPositions([]scene.Vector{{X: 1, Y: 2}, {X: 3}})
	require.NoError(t, b.Set("ui_host", "arm_L0_root"))

	require.NoError(t, b.SymmetrizeBase())
	assert.Equal(t, "arm_R0", b.FullName())
	assert.Equal(t, []scene.Vector{{X: -1, Y: 2}, {X: -3}}, b.APos)
	assert.Equal(t, "arm_R0_root", b.StringValue("ui_host"))

	center := NewBase("widget_01")
	center.SetIdentity("spine", SideCenter, 0)
	assert.Error(t, center.SymmetrizeBase())
}

func TestPositionsSurviveTemplateEntry(t *testing.T) {
	b := NewBase("widget_01")
	b.SetIdentity("arm", SideLeft, 0)
	b.SetPositions([]scene.Vector{{X: 0.5, Y: 1.25, Z: -2}})
	b.ParentFullName = "spine_C0"
	b.ParentLocalName = "loc1"

	entry := b.TemplateEntry()
	assert.Equal(t, "spine_C0", entry.ParentFullName)
	assert.NotNil(t, entry.ChildComponents)

	restored := NewBase("widget_01")
	restored.ApplyTemplateEntry(entry)
	assert.Equal(t, "arm_L0", restored.FullName())
	assert.Equal(t, []scene.Vector{{X: 0.5, Y: 1.25, Z: -2}}, restored.APos)
	assert.Equal(t, "loc1", restored.ParentLocalName)
}

func TestDrawRootTagsNode(t *testing.T) {
	sc := scene.NewMemory()
	parent := sc.CreateNode("guide", nil)

	b := NewBase("widget_01")
	b.SetIdentity("arm", SideLeft, 0)
	root := b.DrawRoot(sc, parent, scene.Vector{X: 2})

	assert.Equal(t, "arm_L0_root", root.Name())
	assert.True(t, root.HasAttr(AttrGuidePart))
	assert.True(t, root.HasAttr(AttrCompType))
	v, _ := root.Attr(AttrCompType)
	assert.Equal(t, "widget_01", v)
	assert.Equal(t, scene.Vector{X: 2}, root.WorldMatrix().Translation())
}
