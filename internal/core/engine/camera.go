package engine

import "github.com/scenelink/scenelink/pkg/vec"

// Functionality is the interaction mode a camera is currently serving.
type Functionality uint8

const (
	// FuncNeutral is the free-roaming default mode.
	FuncNeutral Functionality = iota
	// FuncFirstPerson marks a camera that may be attached to an entity.
	FuncFirstPerson
)

// Camera is an engine view point. Positions and targets are in simulation
// space; the engine adapter performs the basis conversion internally.
type Camera interface {
	Functionality() Functionality
	SetFunctionality(f Functionality)

	Position() vec.Vector3
	SetPosition(p vec.Vector3)
	Target() vec.Vector3
	SetTarget(t vec.Vector3)

	SetNearPlane(d float64)
	SetFarPlane(d float64)
}
