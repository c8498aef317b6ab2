package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelWrapping(t *testing.T) {
	err := Wrap(ErrUnknownComponentType, "arm_99")
	assert.True(t, Is(err, ErrUnknownComponentType))
	assert.True(t, IsUnknownComponentType(err))
	assert.False(t, IsInvalidSelection(err))

	err = Wrap(err, "while walking hierarchy")
	assert.True(t, IsUnknownComponentType(err), "wrapping must preserve the sentinel")
}

func TestNewUnknownComponentType(t *testing.T) {
	err := NewUnknownComponentType("tentacle_01")
	assert.True(t, IsUnknownComponentType(err))
	assert.Contains(t, err.Error(), "tentacle_01")
}

func TestNewInvalidSelection(t *testing.T) {
	err := NewInvalidSelection("node %s is not a component root", "spine_C0_root")
	assert.True(t, IsInvalidSelection(err))
	assert.Contains(t, err.Error(), "spine_C0_root")
}

func TestUnknownParamDistinctFromDuplicate(t *testing.T) {
	assert.False(t, Is(ErrUnknownParam, ErrDuplicateParam))
	assert.True(t, IsUnknownParam(Wrap(ErrUnknownParam, "blade")))
}
