package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scenelink/scenelink/pkg/vec"
)

func TestSimToEngine_SwapsVerticalAxis(t *testing.T) {
	got := SimToEngine(vec.Vector3{X: 1, Y: 2, Z: 3})
	assert.Equal(t, vec.Vector3{X: 1, Y: 3, Z: 2}, got)
}

func TestCoordConversions_AreInvolutions(t *testing.T) {
	v := vec.Vector3{X: -4, Y: 7, Z: 0.5}

	assert.Equal(t, v, EngineToSim(SimToEngine(v)))
	assert.Equal(t, v, SimToEngine(EngineToSim(v)))
	assert.Equal(t, v, EngineToSimRotation(SimToEngineRotation(v)))
}

func TestSimToEngineBox_Renormalizes(t *testing.T) {
	// After the axis swap the straight corner mapping can leave Min above Max
	// on an axis; the box must come back normalized.
	b := vec.BBox{
		Min: vec.Vector3{X: -1, Y: 5, Z: -2},
		Max: vec.Vector3{X: 1, Y: 6, Z: 2},
	}

	e := SimToEngineBox(b)
	assert.LessOrEqual(t, e.Min.X, e.Max.X)
	assert.LessOrEqual(t, e.Min.Y, e.Max.Y)
	assert.LessOrEqual(t, e.Min.Z, e.Max.Z)

	assert.Equal(t, b, EngineToSimBox(e))
}
