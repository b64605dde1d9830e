package render

import (
	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/internal/core/sim"
	"github.com/scenelink/scenelink/pkg/vec"
)

// cameraRig tracks an attached first-person camera and keeps its look target
// consistent with the owner's movement by applying position and yaw deltas
// incrementally.
type cameraRig struct {
	desc         *FPSCameraDescriptor
	cam          engine.Camera
	lastPosition vec.Vector3
	lastRotation vec.Vector3
}

func newCameraRig(desc *FPSCameraDescriptor, cam engine.Camera, state *sim.EntityState) *cameraRig {
	cam.SetPosition(desc.AttachOffset)
	cam.SetTarget(desc.TargetOffset)
	cam.SetNearPlane(desc.NearPlane)
	cam.SetFarPlane(desc.FarPlane)
	return &cameraRig{
		desc:         desc,
		cam:          cam,
		lastPosition: state.Position(),
		lastRotation: state.Rotation(),
	}
}

// updatePosition translates the look target by the owner's movement since the
// last update. Must be called with the state's new position already set but
// before the node transform is touched.
func (r *cameraRig) updatePosition(state *sim.EntityState) {
	displacement := state.Position().Sub(r.lastPosition)
	r.cam.SetTarget(r.cam.Target().Add(displacement))
	r.lastPosition = state.Position()
}

// updateRotation rotates the look target around the owner's position by the
// yaw delta since the last update. Only rotation about the vertical axis is
// tracked.
func (r *cameraRig) updateRotation(state *sim.EntityState) {
	yawDelta := state.Rotation().Z - r.lastRotation.Z
	target := r.cam.Target().RotateXYBy(yawDelta, state.Position())
	r.cam.SetTarget(target)
	r.lastRotation = state.Rotation()
}
