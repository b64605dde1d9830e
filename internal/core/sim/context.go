package sim

import (
	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/pkg/vec"
)

// Context is the simulation surface the scene layer calls back into: spawning
// and removing entities (footprint markers) and looking up shared facilities.
type Context interface {
	// AddEntity spawns an entity of the named kind and returns its id.
	AddEntity(kind string, position, rotation vec.Vector3) (SimID, error)
	// RemoveEntity removes an entity and its visual presence.
	RemoveEntity(id SimID) error
	// ActiveCamera returns the camera currently driving the view, or nil.
	ActiveCamera() engine.Camera
	// Font returns the font used for text overlays, or nil.
	Font() engine.Font
}
