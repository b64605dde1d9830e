package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/pkg/vec"
)

func TestNewEntityState_Defaults(t *testing.T) {
	s := NewEntityState(7, 2, vec.Vector3{X: 1}, vec.Vector3{Z: 90})

	assert.Equal(t, SimID(7), s.ID())
	assert.Equal(t, EntityType(2), s.Type())
	assert.Equal(t, vec.One, s.Scale())
	assert.Equal(t, engine.Color{A: 255, R: 255, G: 255, B: 255}, s.Color())
	assert.True(t, s.IsDirty(DirtyAll), "a fresh state is fully dirty")
}

func TestEntityState_DirtyOnChangeOnly(t *testing.T) {
	s := NewEntityState(1, 0, vec.Vector3{X: 1}, vec.Vector3{})
	s.ClearDirty()

	// Writing back the current value must not raise a bit.
	s.SetPosition(vec.Vector3{X: 1})
	s.SetScale(vec.One)
	s.SetLabel("")
	assert.False(t, s.IsDirty(DirtyAll))

	s.SetPosition(vec.Vector3{X: 2})
	assert.True(t, s.IsDirty(DirtyPosition))
	assert.False(t, s.IsDirty(DirtyRotation|DirtyScale|DirtyColor|DirtyLabel))

	s.SetLabel("alpha")
	assert.True(t, s.IsDirty(DirtyLabel))
}

func TestEntityState_ClearDirty(t *testing.T) {
	s := NewEntityState(1, 0, vec.Vector3{}, vec.Vector3{})
	s.SetColor(engine.Color{A: 255, R: 10})

	s.ClearDirty()
	assert.False(t, s.IsDirty(DirtyAll))

	// State survives the clear, only the bits drop.
	assert.Equal(t, engine.Color{A: 255, R: 10}, s.Color())
}
