package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countedResource struct {
	refs int
}

func (c *countedResource) Grab() { c.refs++ }
func (c *countedResource) Drop() { c.refs-- }

func TestHandle_GrabOnCreate(t *testing.T) {
	res := &countedResource{}

	h := NewHandle(res)
	assert.Equal(t, 1, res.refs)
	assert.True(t, h.Valid())
	assert.Same(t, res, h.Get())
}

func TestHandle_ReleaseIsIdempotent(t *testing.T) {
	res := &countedResource{}
	h := NewHandle(res)

	h.Release()
	assert.Equal(t, 0, res.refs)
	assert.False(t, h.Valid())

	h.Release()
	assert.Equal(t, 0, res.refs, "double release must not drop twice")
}

func TestHandle_NilSafe(t *testing.T) {
	var h *Handle[*countedResource]

	assert.False(t, h.Valid())
	assert.NotPanics(t, func() { h.Release() })
}
