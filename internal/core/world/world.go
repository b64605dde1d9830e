// Package world is a minimal simulation kernel: it allocates entity ids,
// owns the shared entity state, realizes entities visually through the render
// layer and drives every presence once per tick. It is the sim.Context the
// render layer calls back into for footprint spawns and camera lookups.
package world

import (
	"fmt"
	"math/rand"

	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/internal/core/observability/log"
	"github.com/scenelink/scenelink/internal/core/render"
	"github.com/scenelink/scenelink/internal/core/sim"
	"github.com/scenelink/scenelink/pkg/vec"
)

// Config carries the collaborators a World needs.
type Config struct {
	Scene engine.SceneManager
	Lines render.LineSink
	Log   log.Log
	Rand  *rand.Rand
}

type registeredTemplate struct {
	tpl        *render.VisualTemplate
	entityType sim.EntityType
}

type entity struct {
	kind     string
	state    *sim.EntityState
	presence *render.ScenePresence
}

// World implements sim.Context.
type World struct {
	cfg Config
	log log.Log

	templates map[string]registeredTemplate
	entities  map[sim.SimID]*entity
	order     []sim.SimID
	removed   int
	nextID    sim.SimID
	camera    engine.Camera
	font      engine.Font
	tick      uint64
}

var _ sim.Context = (*World)(nil)

// New creates an empty world.
func New(cfg Config) *World {
	return &World{
		cfg:       cfg,
		log:       cfg.Log.With(log.String("component", "world")),
		templates: make(map[string]registeredTemplate),
		entities:  make(map[sim.SimID]*entity),
		nextID:    1,
	}
}

// RegisterTemplate binds an entity kind to a visual template and the type tag
// packed into its scene node ids.
func (w *World) RegisterTemplate(kind string, entityType sim.EntityType, tpl *render.VisualTemplate) {
	w.templates[kind] = registeredTemplate{tpl: tpl, entityType: entityType}
}

// SetActiveCamera installs the camera handed to entities requesting a
// first-person attach.
func (w *World) SetActiveCamera(cam engine.Camera) { w.camera = cam }

// SetFont installs the font used for text overlays.
func (w *World) SetFont(font engine.Font) { w.font = font }

// AddEntity spawns an entity of a registered kind. A failed visual
// construction leaves the entity alive without a presence; only an unknown
// kind is an error.
func (w *World) AddEntity(kind string, position, rotation vec.Vector3) (sim.SimID, error) {
	reg, ok := w.templates[kind]
	if !ok {
		return 0, fmt.Errorf("unknown entity kind %q", kind)
	}

	id := w.nextID
	w.nextID++
	state := sim.NewEntityState(id, reg.entityType, position, rotation)

	e := &entity{kind: kind, state: state}
	presence, err := render.Attach(reg.tpl, id, reg.entityType, render.Deps{
		Scene: w.cfg.Scene,
		Sim:   w,
		Lines: w.cfg.Lines,
		Log:   w.cfg.Log,
		Rand:  w.cfg.Rand,
	})
	if err != nil {
		w.log.Warn("entity has no visual presence",
			log.Uint64("id", uint64(id)), log.String("kind", kind), log.Err(err))
	} else {
		presence.BindSharedState(state)
		e.presence = presence
	}

	w.entities[id] = e
	w.order = append(w.order, id)
	return id, nil
}

// RemoveEntity destroys an entity's presence and forgets it.
func (w *World) RemoveEntity(id sim.SimID) error {
	e, ok := w.entities[id]
	if !ok {
		return fmt.Errorf("no entity %d", id)
	}
	if e.presence != nil {
		e.presence.Destroy()
	}
	delete(w.entities, id)
	w.removed++
	return nil
}

// ActiveCamera returns the installed camera, or nil.
func (w *World) ActiveCamera() engine.Camera { return w.camera }

// Font returns the installed font, or nil.
func (w *World) Font() engine.Font { return w.font }

// State returns the shared state of an entity.
func (w *World) State(id sim.SimID) (*sim.EntityState, bool) {
	e, ok := w.entities[id]
	if !ok {
		return nil, false
	}
	return e.state, true
}

// Presence returns the visual presence of an entity, which may be nil.
func (w *World) Presence(id sim.SimID) (*render.ScenePresence, bool) {
	e, ok := w.entities[id]
	if !ok {
		return nil, false
	}
	return e.presence, true
}

// Len returns the number of live entities.
func (w *World) Len() int { return len(w.entities) }

// Tick advances every visual presence by dt seconds, in spawn order.
// Entities spawned during the tick (footprints) are picked up next tick.
func (w *World) Tick(dt float64) {
	live := w.order
	for _, id := range live {
		e, ok := w.entities[id]
		if !ok || e.presence == nil {
			continue
		}
		if err := e.presence.Tick(dt); err != nil {
			w.log.Error("presence tick failed", log.Uint64("id", uint64(id)), log.Err(err))
		}
	}
	w.compact()
	w.tick++
}

// compact drops removed ids from the tick order once enough accumulate.
func (w *World) compact() {
	if w.removed < 32 && w.removed*2 < len(w.order) {
		return
	}
	next := w.order[:0]
	for _, id := range w.order {
		if _, ok := w.entities[id]; ok {
			next = append(next, id)
		}
	}
	w.order = next
	w.removed = 0
}

// Close destroys every presence.
func (w *World) Close() {
	for id, e := range w.entities {
		if e.presence != nil {
			e.presence.Destroy()
		}
		delete(w.entities, id)
	}
	w.order = nil
	w.removed = 0
}

// EntityFrame is one entity's state in a snapshot.
type EntityFrame struct {
	ID       sim.SimID   `json:"id"`
	Kind     string      `json:"kind"`
	Node     string      `json:"node"`
	Position vec.Vector3 `json:"position"`
	Rotation vec.Vector3 `json:"rotation"`
	Scale    vec.Vector3 `json:"scale"`
	Label    string      `json:"label,omitempty"`
}

// Snapshot captures the world after a tick, in simulation space.
type Snapshot struct {
	Tick     uint64        `json:"tick"`
	Entities []EntityFrame `json:"entities"`
}

var nodeKindNames = map[render.NodeKind]string{
	render.NodeNone:     "none",
	render.NodeMesh:     "mesh",
	render.NodeTerrain:  "terrain",
	render.NodeParticle: "particle",
}

// Snapshot returns the current world state in spawn order.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{Tick: w.tick, Entities: make([]EntityFrame, 0, len(w.entities))}
	for _, id := range w.order {
		e, ok := w.entities[id]
		if !ok {
			continue
		}
		frame := EntityFrame{
			ID:       id,
			Kind:     e.kind,
			Node:     nodeKindNames[render.NodeNone],
			Position: e.state.Position(),
			Rotation: e.state.Rotation(),
			Scale:    e.state.Scale(),
			Label:    e.state.Label(),
		}
		if e.presence != nil {
			frame.Node = nodeKindNames[e.presence.NodeKind()]
		}
		s.Entities = append(s.Entities, frame)
	}
	return s
}
