package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAndParseFullName(t *testing.T) {
	assert.Equal(t, "arm_L0", FormatFullName("arm", SideLeft, 0))
	assert.Equal(t, "spine_C12", FormatFullName("spine", SideCenter, 12))

	name, side, index, ok := ParseFullName("arm_L0")
	assert.True(t, ok)
	assert.Equal(t, "arm", name)
	assert.Equal(t, SideLeft, side)
	assert.Equal(t, 0, index)

	_, _, _, ok = ParseFullName("noside")
	assert.False(t, ok)
	_, _, _, ok = ParseFullName("arm_X0")
	assert.False(t, ok)
	_, _, _, ok = ParseFullName("arm_L")
	assert.False(t, ok)
}

func TestSplitNodeName(t *testing.T) {
	full, local := SplitNodeName("arm_L0_root")
	assert.Equal(t, "arm_L0", full)
	assert.Equal(t, "root", local)

	full, local = SplitNodeName("spine_C0_loc2_extra")
	assert.Equal(t, "spine_C0", full)
	assert.Equal(t, "loc2_extra", local)

	full, local = SplitNodeName("guide")
	assert.Empty(t, full)
	assert.Empty(t, local)
}

func TestMirrorName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"arm_L0_root", "arm_R0_root"},
		{"arm_R3_loc1", "arm_L3_loc1"},
		{"spine_C0_root", "spine_C0_root"},
		{"leg_L0", "leg_R0"},
		{"Lever_L0_root", "Lever_R0_root"}, // leading segment is not a side token
		{"guide", "guide"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MirrorName(tt.in), tt.in)
	}
}

func TestMirrorSide(t *testing.T) {
	assert.Equal(t, SideRight, MirrorSide(SideLeft))
	assert.Equal(t, SideLeft, MirrorSide(SideRight))
	assert.Equal(t, SideCenter, MirrorSide(SideCenter))
}
