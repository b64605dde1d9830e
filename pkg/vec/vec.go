// Package vec provides the small fixed-size vector and bounding-box math
// used by the scene synchronization layer. Angles are in degrees.
package vec

import "math"

// Vector2 is a 2D vector.
type Vector2 struct {
	X, Y float64
}

// Vector3 is a 3D vector.
type Vector3 struct {
	X, Y, Z float64
}

// One is the identity scale.
var One = Vector3{1, 1, 1}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// MulV returns the component-wise product of v and o.
func (v Vector3) MulV(o Vector3) Vector3 {
	return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Length returns the Euclidean length of v.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// RotateXYBy rotates v by degrees around center in the X-Y plane
// (counter-clockwise about the +Z axis) and returns the result.
func (v Vector3) RotateXYBy(degrees float64, center Vector3) Vector3 {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	x := v.X - center.X
	y := v.Y - center.Y
	return Vector3{
		X: x*cos - y*sin + center.X,
		Y: x*sin + y*cos + center.Y,
		Z: v.Z,
	}
}

// Near reports whether v and o are equal within tolerance eps on every axis.
func (v Vector3) Near(o Vector3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps &&
		math.Abs(v.Y-o.Y) <= eps &&
		math.Abs(v.Z-o.Z) <= eps
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	Min, Max Vector3
}

// Extend grows the box to contain p.
func (b BBox) Extend(p Vector3) BBox {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
	return b
}

// Corners returns the eight corners of the box. Corner i has the max X side
// when bit 2 of i is set, the max Y side for bit 1 and the max Z side for
// bit 0, so corner 0 is Min and corner 7 is Max.
func (b BBox) Corners() [8]Vector3 {
	var c [8]Vector3
	for i := range c {
		c[i] = b.Min
		if i&4 != 0 {
			c[i].X = b.Max.X
		}
		if i&2 != 0 {
			c[i].Y = b.Max.Y
		}
		if i&1 != 0 {
			c[i].Z = b.Max.Z
		}
	}
	return c
}

// Edges returns the 12 edges of the box as corner index pairs into Corners().
func (b BBox) Edges() [12][2]int {
	return [12][2]int{
		{0, 1}, {1, 3}, {3, 2}, {2, 0},
		{4, 5}, {5, 7}, {7, 6}, {6, 4},
		{4, 0}, {5, 1}, {6, 2}, {7, 3},
	}
}
