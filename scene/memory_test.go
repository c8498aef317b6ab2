package scene

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndFind(t *testing.T) {
	m := NewMemory()
	guide := m.CreateNode("guide", nil)
	arm := m.CreateNode("arm_L0_root", guide)
	m.CreateNode("arm_L0_wrist", arm)

	found, ok := m.FindNode("arm_L0_wrist")
	require.True(t, ok)
	assert.Equal(t, "arm_L0_wrist", found.Name())
	assert.Equal(t, arm.ID(), found.Parent().ID())

	_, ok = m.FindChild(guide, "arm_L0_wrist")
	assert.True(t, ok)
	_, ok = m.FindChild(arm, "guide")
	assert.False(t, ok, "FindChild must not search upward")
}

func TestSetParentRejectsCycle(t *testing.T) {
	m := NewMemory()
	a := m.CreateNode("a", nil)
	b := m.CreateNode("b", a)

	err := m.SetParent(a, b)
	require.Error(t, err)

	// a stays a root, b stays under a
	assert.Len(t, m.Roots(), 1)
	assert.Equal(t, "a", m.Roots()[0].Name())
}

func TestDeleteSubtree(t *testing.T) {
	m := NewMemory()
	root := m.CreateNode("root", nil)
	limb := m.CreateNode("limb", root)
	m.CreateNode("hand", limb)

	m.Delete(limb)
	assert.Equal(t, 1, NodeCount(root))
	_, ok := m.FindNode("hand")
	assert.False(t, ok)
}

func TestAttrsAndConnections(t *testing.T) {
	m := NewMemory()
	n := m.CreateNode("spine_C0_root", nil)
	driver := m.CreateNode("curve_driver", nil)

	n.SetAttr("comp_type", "chain_01")
	v, ok := n.Attr("comp_type")
	require.True(t, ok)
	assert.Equal(t, "chain_01", v)
	assert.True(t, n.HasAttr("comp_type"))
	assert.False(t, n.HasAttr("missing"))

	n.Connect("st_profile", driver)
	src, ok := n.Connection("st_profile")
	require.True(t, ok)
	assert.Equal(t, driver.ID(), src.ID())
	_, ok = n.Connection("other")
	assert.False(t, ok)
}

func TestSceneRoundTrip(t *testing.T) {
	m := NewMemory()
	guide := m.CreateNode("guide", nil)
	guide.SetAttr("ismodel", true)
	arm := m.CreateNode("arm_L0_root", guide)
	arm.SetAttr("comp_type", "chain_01")
	arm.SetWorldMatrix(Identity().WithTranslation(Vector{X: 1, Y: 2, Z: 3}))
	driver := m.CreateNode("curve_driver", guide)
	driver.SetAttr(CurveKeysAttr, []float64{0, 0.5, 1})
	arm.Connect("st_profile", driver)

	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)

	root, ok := loaded.FindNode("guide")
	require.True(t, ok)
	assert.True(t, root.HasAttr("ismodel"))

	arm2, ok := loaded.FindNode("arm_L0_root")
	require.True(t, ok)
	assert.Equal(t, Vector{X: 1, Y: 2, Z: 3}, arm2.WorldMatrix().Translation())
	src, ok := arm2.Connection("st_profile")
	require.True(t, ok)
	assert.Equal(t, "curve_driver", src.Name())
}

func TestLinearSampler(t *testing.T) {
	m := NewMemory()
	curve := m.CreateNode("profile", nil)
	curve.SetAttr(CurveKeysAttr, []float64{0, 1})

	got, err := LinearSampler{}.Sample(curve, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, got)

	_, err = LinearSampler{}.Sample(curve, 1)
	assert.Error(t, err)

	bare := m.CreateNode("bare", nil)
	_, err = LinearSampler{}.Sample(bare, 4)
	assert.Error(t, err)
}

func TestVectorAndMatrix(t *testing.T) {
	assert.InDelta(t, 5.0, Vector{X: 3}.Distance(Vector{Y: 4}), 1e-9)
	assert.Equal(t, Vector{X: -2, Y: 1}, Vector{X: 2, Y: 1}.MirrorX())

	m := Identity().WithTranslation(Vector{X: 4, Y: 5, Z: 6})
	assert.Equal(t, Vector{X: -4, Y: 5, Z: 6}, m.MirrorX().Translation())
}
