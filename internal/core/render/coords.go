package render

import "github.com/scenelink/scenelink/pkg/vec"

// The simulation uses a right-handed basis with the x-y plane horizontal and
// z up. The engine expects a left-handed basis with the x-z plane horizontal
// and y up. Both conversions are the same y/z swap, so each function is its
// own inverse.

// SimToEngine converts a simulation-space position to engine space.
func SimToEngine(v vec.Vector3) vec.Vector3 {
	return vec.Vector3{X: v.X, Y: v.Z, Z: v.Y}
}

// EngineToSim converts an engine-space position to simulation space.
func EngineToSim(v vec.Vector3) vec.Vector3 {
	return vec.Vector3{X: v.X, Y: v.Z, Z: v.Y}
}

// SimToEngineRotation converts Euler angles (degrees) between the same bases.
func SimToEngineRotation(r vec.Vector3) vec.Vector3 {
	return vec.Vector3{X: r.X, Y: r.Z, Z: r.Y}
}

// EngineToSimRotation is the inverse of SimToEngineRotation.
func EngineToSimRotation(r vec.Vector3) vec.Vector3 {
	return vec.Vector3{X: r.X, Y: r.Z, Z: r.Y}
}

// SimToEngineBox converts a bounding box between bases, renormalizing the
// min/max corners after the axis swap.
func SimToEngineBox(b vec.BBox) vec.BBox {
	lo := SimToEngine(b.Min)
	hi := SimToEngine(b.Max)
	return vec.BBox{Min: lo, Max: lo}.Extend(hi)
}

// EngineToSimBox is the inverse of SimToEngineBox.
func EngineToSimBox(b vec.BBox) vec.BBox {
	lo := EngineToSim(b.Min)
	hi := EngineToSim(b.Max)
	return vec.BBox{Min: lo, Max: lo}.Extend(hi)
}
