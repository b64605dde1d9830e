package enginemem

import (
	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/pkg/vec"
)

type mesh struct {
	path   string
	bbox   vec.BBox
	frames int
	refs   int
}

func (m *mesh) Grab()                 { m.refs++ }
func (m *mesh) Drop()                 { m.refs-- }
func (m *mesh) Path() string          { return m.path }
func (m *mesh) BoundingBox() vec.BBox { return m.bbox }

// Refs returns the outstanding reference count. Test helper.
func (m *mesh) Refs() int { return m.refs }

type texture struct {
	path string
	refs int
}

func (t *texture) Grab()        { t.refs++ }
func (t *texture) Drop()        { t.refs-- }
func (t *texture) Path() string { return t.path }

type terrain struct {
	path string
	refs int
}

func (t *terrain) Grab()        { t.refs++ }
func (t *terrain) Drop()        { t.refs-- }
func (t *terrain) Path() string { return t.path }

type particleSystem struct {
	path string
	refs int
}

func (p *particleSystem) Grab()        { p.refs++ }
func (p *particleSystem) Drop()        { p.refs-- }
func (p *particleSystem) Path() string { return p.path }

type font struct {
	name string
}

func (f *font) Name() string { return f.name }

// Camera implements engine.Camera in memory.
type Camera struct {
	functionality engine.Functionality
	position      vec.Vector3
	target        vec.Vector3
	nearPlane     float64
	farPlane      float64
}

var _ engine.Camera = (*Camera)(nil)

func (c *Camera) Functionality() engine.Functionality     { return c.functionality }
func (c *Camera) SetFunctionality(f engine.Functionality) { c.functionality = f }

func (c *Camera) Position() vec.Vector3     { return c.position }
func (c *Camera) SetPosition(p vec.Vector3) { c.position = p }
func (c *Camera) Target() vec.Vector3       { return c.target }
func (c *Camera) SetTarget(t vec.Vector3)   { c.target = t }

func (c *Camera) SetNearPlane(d float64) { c.nearPlane = d }
func (c *Camera) SetFarPlane(d float64)  { c.farPlane = d }

// Planes returns the configured near and far planes. Test helper.
func (c *Camera) Planes() (near, far float64) { return c.nearPlane, c.farPlane }
