// Package render binds simulation entities to scene-graph nodes: templates
// describe what an entity looks like, presences own the node built from a
// template and push dirty shared state into it every tick.
package render

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/internal/core/observability/log"
	"github.com/scenelink/scenelink/internal/core/sim"
	"github.com/scenelink/scenelink/pkg/vec"
)

// NodeKind tells which branch of a template produced the presence's node.
type NodeKind uint8

const (
	NodeNone NodeKind = iota
	NodeMesh
	NodeTerrain
	NodeParticle
)

// labelColor is the color of text overlays.
var labelColor = engine.Color{A: 255, R: 128}

// labelOffset is where the text overlay floats relative to the node, in
// simulation space.
var labelOffset = vec.Vector3{Z: 10}

// Deps carries the collaborators a presence needs. Scene, Sim and Log are
// required; Lines may be nil when bounding boxes are disabled and Rand
// defaults to a time-seeded source.
type Deps struct {
	Scene engine.SceneManager
	Sim   sim.Context
	Lines LineSink
	Log   log.Log
	Rand  *rand.Rand
}

// noCopy makes go vet flag value copies of ScenePresence.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// ScenePresence is the mutable per-entity object owning exactly one scene
// node built from a visual template. Pointer-only; never copy a presence.
type ScenePresence struct {
	noCopy noCopy

	tpl   *VisualTemplate
	scene engine.SceneManager
	sctx  sim.Context
	lines LineSink
	log   log.Log

	packedID uint64

	node         engine.SceneNode
	nodeHandle   *engine.Handle[engine.SceneNode]
	meshNode     engine.AnimatedMeshNode
	terrainNode  engine.TerrainNode
	particleNode engine.ParticleNode
	textNode     engine.TextNode
	kind         NodeKind

	startFrame int
	endFrame   int

	shared     *sim.EntityState
	fpsCamera  *FPSCameraDescriptor
	rig        *cameraRig
	footprints *footprintTrail
}

// Attach realizes an entity visually from a template. Exactly one branch
// fires, checked in fixed priority order: mesh, then terrain, then particle
// system; a template with none of them yields a valid presence without a
// node. Failure to build a required spatial-query structure is a hard
// construction failure because downstream collision logic assumes it exists.
func Attach(tpl *VisualTemplate, id sim.SimID, entityType sim.EntityType, deps Deps) (*ScenePresence, error) {
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	p := &ScenePresence{
		tpl:      tpl,
		scene:    deps.Scene,
		sctx:     deps.Sim,
		lines:    deps.Lines,
		log:      deps.Log.With(log.Uint64("entity", uint64(id))),
		packedID: sim.PackID(id, entityType),
	}

	switch {
	case tpl.Mesh() != nil:
		if err := p.attachMesh(); err != nil {
			return nil, err
		}
	case tpl.Terrain() != nil:
		if err := p.attachTerrain(); err != nil {
			return nil, err
		}
	case tpl.ParticleSystem() != nil:
		if err := p.attachParticles(); err != nil {
			return nil, err
		}
	}

	if p.node != nil {
		for i, tex := range tpl.Textures() {
			p.node.SetMaterialTexture(i, tex)
		}
		for _, f := range tpl.MaterialFlags() {
			p.node.SetMaterialFlag(f.Flag, f.Value)
		}
		p.node.SetMaterialType(tpl.MaterialType())
		p.applyScale()
		p.node.SetID(p.packedID)
		p.nodeHandle = engine.NewHandle[engine.SceneNode](p.node)
	}

	p.fpsCamera = tpl.FPSCamera()
	if fp := tpl.Footprints(); fp != nil {
		p.footprints = newFootprintTrail(*fp, deps.Sim, rng, p.log)
	}
	return p, nil
}

func (p *ScenePresence) attachMesh() error {
	node, err := p.scene.AddAnimatedMeshNode(p.tpl.Mesh())
	if err != nil {
		return fmt.Errorf("%w: animated mesh node: %v", ErrSceneCreation, err)
	}
	if p.tpl.CastsShadow() {
		node.AddShadowVolume()
	}

	// Freeze on the first frame until an animation is explicitly requested.
	node.SetAnimationSpeed(0)
	p.startFrame = node.StartFrame()
	p.endFrame = node.EndFrame()
	node.SetFrameLoop(0, 0)
	node.SetCurrentFrame(0)

	selector, err := p.scene.CreateTriangleSelector(node)
	if err != nil {
		node.Remove()
		return fmt.Errorf("%w: triangle selector: %v", ErrSceneCreation, err)
	}
	node.SetTriangleSelector(selector)

	// Merge into the parent's aggregate so collision queries see the
	// compound scene, not just this mesh.
	if parent := node.Parent(); parent != nil {
		meta := p.scene.CreateMetaTriangleSelector()
		meta.AddSelector(parent.TriangleSelector())
		meta.AddSelector(selector)
		parent.SetTriangleSelector(meta)
		meta.Drop()
	}
	selector.Drop()

	p.meshNode = node
	p.node = node
	p.kind = NodeMesh
	return nil
}

func (p *ScenePresence) attachTerrain() error {
	node, err := p.scene.AddTerrainNode(p.tpl.Terrain())
	if err != nil {
		return fmt.Errorf("%w: terrain node: %v", ErrSceneCreation, err)
	}
	scale := p.tpl.ScaleTexture()
	node.ScaleTexture(scale.X, scale.Y)

	selector, err := p.scene.CreateTerrainTriangleSelector(node)
	if err != nil {
		node.Remove()
		return fmt.Errorf("%w: terrain triangle selector: %v", ErrSceneCreation, err)
	}
	node.SetTriangleSelector(selector)
	selector.Drop()

	p.terrainNode = node
	p.node = node
	p.kind = NodeTerrain
	return nil
}

func (p *ScenePresence) attachParticles() error {
	node, err := p.scene.AddParticleNode(p.tpl.ParticleSystem())
	if err != nil {
		return fmt.Errorf("%w: particle node: %v", ErrSceneCreation, err)
	}
	// Particles are non-solid: no triangle selector.
	p.particleNode = node
	p.node = node
	p.kind = NodeParticle
	return nil
}

// BindSharedState binds the authoritative entity state the presence reads
// each tick. Must happen before the first Tick.
func (p *ScenePresence) BindSharedState(state *sim.EntityState) {
	p.shared = state
}

// Tick consumes the dirty bits of the shared state, applying each changed
// aspect to the scene node and leaving the others untouched. Reapplying
// unchanged transforms to large nodes causes visible artifacts in the engine,
// hence the selective updates. All dirty bits are cleared at the end, never
// partially across ticks.
func (p *ScenePresence) Tick(dt float64) error {
	if p.shared == nil {
		return fmt.Errorf("%w: shared entity state not bound", ErrPrecondition)
	}
	if p.node == nil {
		return nil
	}

	if p.shared.IsDirty(sim.DirtyPosition) {
		// The rig needs the pre-update tracking state, so it goes first.
		if p.rig != nil {
			p.rig.updatePosition(p.shared)
		}
		p.node.SetPosition(SimToEngine(p.shared.Position()))
		if p.meshNode != nil && p.footprints != nil {
			p.footprints.step(p.shared.Position(), p.shared.Rotation())
		}
	}

	if p.shared.IsDirty(sim.DirtyRotation) {
		if p.rig != nil {
			p.rig.updateRotation(p.shared)
		}
		p.node.SetRotation(SimToEngineRotation(p.shared.Rotation()))
	}

	if p.shared.IsDirty(sim.DirtyScale) {
		p.applyScale()
	}

	if p.shared.IsDirty(sim.DirtyLabel) && p.tpl.DrawLabel() {
		p.SetText(p.shared.Label())
	}

	if p.shared.IsDirty(sim.DirtyColor) {
		if p.meshNode != nil {
			p.meshNode.SetDiffuseColor(p.shared.Color())
		}
	}

	if p.tpl.DrawBoundingBox() && p.lines != nil {
		box := p.node.TransformedBoundingBox()
		corners := box.Corners()
		for _, edge := range box.Edges() {
			p.lines.AddSegment(corners[edge[0]], corners[edge[1]], boundingBoxColor)
		}
	}

	if p.fpsCamera != nil && p.rig == nil {
		if cam := p.sctx.ActiveCamera(); cam != nil {
			if err := p.AttachCamera(cam); err != nil {
				p.log.Debug("deferred camera attach failed", log.Err(err))
			}
		}
	}

	p.shared.ClearDirty()
	return nil
}

// applyScale recomputes the node scale as the component-wise product of the
// template scale and the entity's custom scale.
func (p *ScenePresence) applyScale() {
	scale := p.tpl.Scale()
	if p.shared != nil {
		scale = scale.MulV(p.shared.Scale())
	}
	p.node.SetScale(SimToEngine(scale))
}

// AttachCamera attaches a first-person camera to the presence. The camera
// must be first-person capable and the template must carry a camera
// descriptor; otherwise the attach is aborted with no state change. A
// previously attached camera is returned to the neutral mode, not destroyed.
func (p *ScenePresence) AttachCamera(cam engine.Camera) error {
	if p.shared == nil {
		return fmt.Errorf("%w: shared entity state not bound", ErrPrecondition)
	}
	if p.fpsCamera == nil {
		return fmt.Errorf("%w: template has no first-person camera descriptor", ErrIncompatibleCamera)
	}
	if cam == nil || cam.Functionality() != engine.FuncFirstPerson {
		return fmt.Errorf("%w: camera is not first-person capable", ErrIncompatibleCamera)
	}
	if p.rig != nil && p.rig.cam != cam {
		p.rig.cam.SetFunctionality(engine.FuncNeutral)
	}
	p.rig = newCameraRig(p.fpsCamera, cam, p.shared)
	p.log.Debug("camera attached")
	return nil
}

// SetText updates, creates or removes the floating text overlay.
func (p *ScenePresence) SetText(text string) {
	if text == "" {
		if p.textNode != nil {
			p.textNode.Remove()
			p.textNode = nil
		}
		return
	}
	if p.textNode != nil {
		p.textNode.SetText(text)
		return
	}
	font := p.sctx.Font()
	if font == nil {
		p.log.Warn("no font available for label", log.String("label", text))
		return
	}
	node, err := p.scene.AddTextNode(font, text, labelColor, p.node, SimToEngine(labelOffset))
	if err != nil {
		p.log.Warn("text overlay creation failed", log.Err(err))
		return
	}
	p.textNode = node
}

// Destroy releases the scene node, removes the text overlay and removes every
// outstanding footprint entity from the simulation.
func (p *ScenePresence) Destroy() {
	if p.textNode != nil {
		p.textNode.Remove()
		p.textNode = nil
	}
	if p.node != nil {
		p.node.Remove()
		p.nodeHandle.Release()
		p.node = nil
		p.meshNode = nil
		p.terrainNode = nil
		p.particleNode = nil
		p.kind = NodeNone
	}
	if p.footprints != nil {
		p.footprints.clear()
	}
}

// Template returns the shared visual template the presence was built from.
func (p *ScenePresence) Template() *VisualTemplate { return p.tpl }

// NodeKind reports which template branch produced the node.
func (p *ScenePresence) NodeKind() NodeKind { return p.kind }

// ID returns the packed scene node identifier.
func (p *ScenePresence) ID() uint64 { return p.packedID }

// BoundingBox returns the node-local bounding box in simulation space.
func (p *ScenePresence) BoundingBox() vec.BBox {
	if p.node == nil {
		return vec.BBox{}
	}
	return EngineToSimBox(p.node.BoundingBox())
}

// TransformedBoundingBox returns the world-space bounding box in simulation
// space.
func (p *ScenePresence) TransformedBoundingBox() vec.BBox {
	if p.node == nil {
		return vec.BBox{}
	}
	return EngineToSimBox(p.node.TransformedBoundingBox())
}

// TransformVector applies the node's absolute transformation to a
// simulation-space vector.
func (p *ScenePresence) TransformVector(v vec.Vector3) vec.Vector3 {
	if p.node == nil {
		return vec.Vector3{}
	}
	return EngineToSim(p.node.TransformVector(SimToEngine(v)))
}

// Position returns the node's current position in simulation space.
func (p *ScenePresence) Position() vec.Vector3 {
	if p.node == nil {
		return vec.Vector3{}
	}
	return EngineToSim(p.node.Position())
}

// Scale returns the node's current scale in simulation space.
func (p *ScenePresence) Scale() vec.Vector3 {
	if p.node == nil {
		return vec.Vector3{}
	}
	return EngineToSim(p.node.Scale())
}

// MeshBufferForLOD exposes the terrain geometry at a level of detail. Only
// terrain-kind presences have one.
func (p *ScenePresence) MeshBufferForLOD(lod int) (engine.MeshBuffer, bool) {
	if p.terrainNode == nil {
		return nil, false
	}
	return p.terrainNode.MeshBufferForLOD(lod)
}
