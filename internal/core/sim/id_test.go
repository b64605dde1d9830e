package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackID_RoundTrip(t *testing.T) {
	combined := PackID(42, 7)

	assert.Equal(t, SimID(42), UnpackSimID(combined))
	assert.Equal(t, uint64(7), combined&((1<<BitmaskSize)-1), "type tag lives in the low bits")
}

func TestPackID_DistinctTypes(t *testing.T) {
	assert.NotEqual(t, PackID(1, 0), PackID(1, 1))
	assert.Equal(t, UnpackSimID(PackID(1, 0)), UnpackSimID(PackID(1, 1)))
}

func TestPackID_TypeCapacity(t *testing.T) {
	assert.NotPanics(t, func() { PackID(1, 1<<(BitmaskSize+1)-1) })
	assert.Panics(t, func() { PackID(1, 1<<(BitmaskSize+1)) })
}
