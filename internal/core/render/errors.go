package render

import "errors"

// Render-specific errors
var (
	// ErrConfig marks an unparseable template or an unresolvable asset
	// reference. Fatal to that one template, never to the process.
	ErrConfig = errors.New("invalid visual template configuration")
	// ErrSceneCreation marks an engine failure to create a required node or
	// spatial-query structure. The entity keeps existing without a visual.
	ErrSceneCreation = errors.New("scene node creation failed")
	// ErrPrecondition marks an operation invoked before its required binding.
	ErrPrecondition = errors.New("required binding missing")
	// ErrIncompatibleCamera marks a camera attach with the wrong camera mode
	// or a missing first-person descriptor. The attach is aborted with no
	// state change.
	ErrIncompatibleCamera = errors.New("camera cannot be attached")
)
