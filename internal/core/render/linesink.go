package render

import (
	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/pkg/vec"
)

// LineSink receives debug line segments, one batch per tick. Endpoints are in
// engine space. Implementations are injected; the scene layer holds no global
// buffer.
type LineSink interface {
	AddSegment(from, to vec.Vector3, color engine.Color)
}

// boundingBoxColor is the color debug boxes are drawn with.
var boundingBoxColor = engine.Color{A: 255, G: 255}
