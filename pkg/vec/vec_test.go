package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector3_Arithmetic(t *testing.T) {
	a := Vector3{X: 1, Y: 2, Z: 3}
	b := Vector3{X: 4, Y: 5, Z: 6}

	assert.Equal(t, Vector3{X: 5, Y: 7, Z: 9}, a.Add(b))
	assert.Equal(t, Vector3{X: -3, Y: -3, Z: -3}, a.Sub(b))
	assert.Equal(t, Vector3{X: 2, Y: 4, Z: 6}, a.Scale(2))
	assert.Equal(t, Vector3{X: 4, Y: 10, Z: 18}, a.MulV(b))
	assert.InDelta(t, 5, Vector3{X: 3, Y: 4}.Length(), 1e-12)
}

func TestVector3_RotateXYBy(t *testing.T) {
	// Quarter turn about the origin maps +X onto +Y.
	got := Vector3{X: 1}.RotateXYBy(90, Vector3{})
	assert.True(t, got.Near(Vector3{Y: 1}, 1e-9), "got %+v", got)

	// Rotation about an off-origin center, Z untouched.
	center := Vector3{X: 100}
	got = Vector3{X: 101, Z: 5}.RotateXYBy(90, center)
	assert.True(t, got.Near(Vector3{X: 100, Y: 1, Z: 5}, 1e-9), "got %+v", got)

	// Full turn is the identity.
	p := Vector3{X: 3, Y: -2, Z: 7}
	assert.True(t, p.RotateXYBy(360, center).Near(p, 1e-9))
}

func TestVector3_Near(t *testing.T) {
	a := Vector3{X: 1, Y: 2, Z: 3}
	assert.True(t, a.Near(Vector3{X: 1.0005, Y: 2, Z: 3}, 1e-3))
	assert.False(t, a.Near(Vector3{X: 1.1, Y: 2, Z: 3}, 1e-3))
}

func TestBBox_Extend(t *testing.T) {
	b := BBox{Min: Vector3{X: 1, Y: 1, Z: 1}, Max: Vector3{X: 1, Y: 1, Z: 1}}
	b = b.Extend(Vector3{X: -1, Y: 2, Z: 0})

	assert.Equal(t, Vector3{X: -1, Y: 1, Z: 0}, b.Min)
	assert.Equal(t, Vector3{X: 1, Y: 2, Z: 1}, b.Max)
}

func TestBBox_Corners(t *testing.T) {
	b := BBox{Max: Vector3{X: 1, Y: 2, Z: 3}}
	c := b.Corners()

	assert.Equal(t, b.Min, c[0])
	assert.Equal(t, b.Max, c[7])
	// Bit 2 selects the max X side, bit 1 max Y, bit 0 max Z.
	assert.Equal(t, Vector3{X: 1, Y: 0, Z: 3}, c[5])
	assert.Equal(t, Vector3{X: 0, Y: 2, Z: 0}, c[2])
}

func TestBBox_Edges(t *testing.T) {
	b := BBox{Max: Vector3{X: 1, Y: 1, Z: 1}}
	c := b.Corners()
	edges := b.Edges()

	assert.Len(t, edges, 12)

	// Every edge connects two corners differing on exactly one axis, and no
	// edge appears twice.
	seen := make(map[[2]int]struct{})
	for _, e := range edges {
		d := c[e[0]].Sub(c[e[1]])
		axes := 0
		if d.X != 0 {
			axes++
		}
		if d.Y != 0 {
			axes++
		}
		if d.Z != 0 {
			axes++
		}
		assert.Equal(t, 1, axes, "edge %v spans %d axes", e, axes)

		key := e
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		_, dup := seen[key]
		assert.False(t, dup, "edge %v repeated", e)
		seen[key] = struct{}{}
	}
}
