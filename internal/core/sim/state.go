package sim

import (
	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/pkg/vec"
)

// DirtyBit marks one aspect of the shared state as changed since it was last
// consumed by the scene layer.
type DirtyBit uint8

const (
	DirtyPosition DirtyBit = 1 << iota
	DirtyRotation
	DirtyScale
	DirtyColor
	DirtyLabel

	DirtyAll = DirtyPosition | DirtyRotation | DirtyScale | DirtyColor | DirtyLabel
)

// EntityState is the authoritative per-entity state shared between the
// simulation (producer) and the scene layer (consumer). The simulation writes
// through the setters, which raise dirty bits on change; the scene layer
// reads, applies and clears the bits once per tick.
type EntityState struct {
	id         SimID
	entityType EntityType

	position vec.Vector3
	rotation vec.Vector3
	scale    vec.Vector3
	color    engine.Color
	label    string

	dirty DirtyBit
}

// NewEntityState creates shared state with every aspect dirty, so the first
// tick pushes the full transform into the scene.
func NewEntityState(id SimID, entityType EntityType, position, rotation vec.Vector3) *EntityState {
	return &EntityState{
		id:         id,
		entityType: entityType,
		position:   position,
		rotation:   rotation,
		scale:      vec.One,
		color:      engine.Color{A: 255, R: 255, G: 255, B: 255},
		dirty:      DirtyAll,
	}
}

func (s *EntityState) ID() SimID        { return s.id }
func (s *EntityState) Type() EntityType { return s.entityType }

func (s *EntityState) Position() vec.Vector3 { return s.position }
func (s *EntityState) Rotation() vec.Vector3 { return s.rotation }
func (s *EntityState) Scale() vec.Vector3    { return s.scale }
func (s *EntityState) Color() engine.Color   { return s.color }
func (s *EntityState) Label() string         { return s.label }

// SetPosition updates the position, raising the dirty bit only on change.
// Reapplying an unchanged transform to large nodes causes visible artifacts
// downstream, so equality is checked here once for all consumers.
func (s *EntityState) SetPosition(p vec.Vector3) {
	if p != s.position {
		s.position = p
		s.dirty |= DirtyPosition
	}
}

func (s *EntityState) SetRotation(r vec.Vector3) {
	if r != s.rotation {
		s.rotation = r
		s.dirty |= DirtyRotation
	}
}

func (s *EntityState) SetScale(sc vec.Vector3) {
	if sc != s.scale {
		s.scale = sc
		s.dirty |= DirtyScale
	}
}

func (s *EntityState) SetColor(c engine.Color) {
	if c != s.color {
		s.color = c
		s.dirty |= DirtyColor
	}
}

func (s *EntityState) SetLabel(l string) {
	if l != s.label {
		s.label = l
		s.dirty |= DirtyLabel
	}
}

// IsDirty reports whether any of the given bits are raised.
func (s *EntityState) IsDirty(bits DirtyBit) bool {
	return s.dirty&bits != 0
}

// ClearDirty lowers every dirty bit. Called by the scene layer exactly once
// at the end of each tick; partial clearing across ticks must never occur.
func (s *EntityState) ClearDirty() {
	s.dirty = 0
}
