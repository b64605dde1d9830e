package enginemem

import (
	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/pkg/vec"
)

// node carries the state common to every scene node kind. Reference counting
// mirrors the engine contract: a node is created holding the scene's own
// reference, Remove drops it, and the node is freed once the count reaches
// zero.
type node struct {
	eng      *Engine
	id       uint64
	refs     int
	removed  bool
	position vec.Vector3
	rotation vec.Vector3
	scale    vec.Vector3
	bbox     vec.BBox
	textures map[int]engine.Texture
	flags    map[engine.MaterialFlag]bool
	material engine.MaterialType
	parent   engine.SceneNode
	selector engine.TriangleSelector
}

func newNode(e *Engine) *node {
	return &node{
		eng:      e,
		refs:     1,
		scale:    vec.One,
		textures: make(map[int]engine.Texture),
		flags:    make(map[engine.MaterialFlag]bool),
		material: engine.MatSolid,
	}
}

func (n *node) Grab() { n.refs++ }

func (n *node) Drop() {
	n.refs--
	if n.refs == 0 {
		n.eng.nodeFreed()
	}
}

func (n *node) ID() uint64      { return n.id }
func (n *node) SetID(id uint64) { n.id = id }

func (n *node) Position() vec.Vector3     { return n.position }
func (n *node) SetPosition(p vec.Vector3) { n.position = p }
func (n *node) Rotation() vec.Vector3     { return n.rotation }
func (n *node) SetRotation(r vec.Vector3) { n.rotation = r }
func (n *node) Scale() vec.Vector3        { return n.scale }
func (n *node) SetScale(s vec.Vector3)    { n.scale = s }

func (n *node) SetMaterialTexture(layer int, tex engine.Texture) { n.textures[layer] = tex }
func (n *node) SetMaterialFlag(flag engine.MaterialFlag, on bool) {
	n.flags[flag] = on
}
func (n *node) SetMaterialType(mat engine.MaterialType) { n.material = mat }

func (n *node) BoundingBox() vec.BBox { return n.bbox }

// TransformedBoundingBox applies scale and translation only. The headless
// engine does not rotate extents; debug geometry only needs rough bounds.
func (n *node) TransformedBoundingBox() vec.BBox {
	return vec.BBox{
		Min: n.bbox.Min.MulV(n.scale).Add(n.position),
		Max: n.bbox.Max.MulV(n.scale).Add(n.position),
	}
}

func (n *node) TransformVector(v vec.Vector3) vec.Vector3 {
	return v.MulV(n.scale).Add(n.position)
}

func (n *node) Parent() engine.SceneNode { return n.parent }

func (n *node) TriangleSelector() engine.TriangleSelector { return n.selector }

// SetTriangleSelector grabs the new selector and drops the previous one, the
// same ownership handshake the real engine performs.
func (n *node) SetTriangleSelector(sel engine.TriangleSelector) {
	if sel != nil {
		sel.Grab()
	}
	if n.selector != nil {
		n.selector.Drop()
	}
	n.selector = sel
}

func (n *node) Remove() {
	if n.removed {
		return
	}
	n.removed = true
	n.parent = nil
	n.Drop()
}

// Removed reports whether the node has been detached. Test helper.
func (n *node) Removed() bool { return n.removed }

// Refs returns the current reference count. Test helper.
func (n *node) Refs() int { return n.refs }

// MaterialType returns the applied material type. Test helper.
func (n *node) MaterialType() engine.MaterialType { return n.material }

// MaterialFlagValue returns the applied value of a material flag. Test helper.
func (n *node) MaterialFlagValue(flag engine.MaterialFlag) (bool, bool) {
	v, ok := n.flags[flag]
	return v, ok
}

// Texture returns the texture bound to a layer. Test helper.
func (n *node) Texture(layer int) (engine.Texture, bool) {
	t, ok := n.textures[layer]
	return t, ok
}

// meshNode implements engine.AnimatedMeshNode.
type meshNode struct {
	node

	mesh         *mesh
	shadowVolume bool
	speed        float64
	loopStart    int
	loopEnd      int
	currentFrame int
	startFrame   int
	endFrame     int
	cycle        engine.AnimationCycle
	hasCycle     bool
	diffuse      engine.Color
}

func (n *meshNode) AddShadowVolume() { n.shadowVolume = true }

func (n *meshNode) SetAnimationSpeed(fps float64) { n.speed = fps }
func (n *meshNode) SetFrameLoop(start, end int)   { n.loopStart, n.loopEnd = start, end }
func (n *meshNode) SetCurrentFrame(frame int)     { n.currentFrame = frame }
func (n *meshNode) StartFrame() int               { return n.startFrame }
func (n *meshNode) EndFrame() int                 { return n.endFrame }

func (n *meshNode) SetAnimationCycle(cycle engine.AnimationCycle) {
	n.cycle = cycle
	n.hasCycle = true
}

func (n *meshNode) SetDiffuseColor(c engine.Color) { n.diffuse = c }

// AnimationState returns speed, loop range and the active cycle. Test helper.
func (n *meshNode) AnimationState() (speed float64, loopStart, loopEnd int, cycle engine.AnimationCycle, hasCycle bool) {
	return n.speed, n.loopStart, n.loopEnd, n.cycle, n.hasCycle
}

// DiffuseColor returns the primary material diffuse color. Test helper.
func (n *meshNode) DiffuseColor() engine.Color { return n.diffuse }

// HasShadowVolume reports whether a shadow sub-node was attached. Test helper.
func (n *meshNode) HasShadowVolume() bool { return n.shadowVolume }

// terrainNode implements engine.TerrainNode.
type terrainNode struct {
	node

	terrain       *terrain
	texScaleX     float64
	texScaleY     float64
	lodBufferSize int
}

func (n *terrainNode) ScaleTexture(x, y float64) { n.texScaleX, n.texScaleY = x, y }

func (n *terrainNode) MeshBufferForLOD(lod int) (engine.MeshBuffer, bool) {
	if lod < 0 {
		return nil, false
	}
	return meshBuffer{vertices: 1 << uint(8-min(lod, 8))}, true
}

// TextureScale returns the applied tiling factors. Test helper.
func (n *terrainNode) TextureScale() (x, y float64) { return n.texScaleX, n.texScaleY }

// particleNode implements engine.ParticleNode.
type particleNode struct {
	node

	system *particleSystem
}

// textNode implements engine.TextNode.
type textNode struct {
	text    string
	color   engine.Color
	parent  engine.SceneNode
	offset  vec.Vector3
	removed bool
}

func (n *textNode) SetText(text string) { n.text = text }
func (n *textNode) Remove()             { n.removed = true }

// Text returns the current overlay text. Test helper.
func (n *textNode) Text() string { return n.text }

// Removed reports whether the overlay was removed. Test helper.
func (n *textNode) Removed() bool { return n.removed }

type meshBuffer struct {
	vertices int
}

func (b meshBuffer) VertexCount() int { return b.vertices }

// triangleSelector implements engine.TriangleSelector.
type triangleSelector struct {
	refs int
}

func (s *triangleSelector) Grab() { s.refs++ }
func (s *triangleSelector) Drop() { s.refs-- }

// Refs returns the current reference count. Test helper.
func (s *triangleSelector) Refs() int { return s.refs }

// metaTriangleSelector implements engine.MetaTriangleSelector.
type metaTriangleSelector struct {
	triangleSelector

	children []engine.TriangleSelector
}

func (s *metaTriangleSelector) AddSelector(sel engine.TriangleSelector) {
	if sel != nil {
		sel.Grab()
		s.children = append(s.children, sel)
	}
}

// SelectorCount returns the number of aggregated selectors. Test helper.
func (s *metaTriangleSelector) SelectorCount() int { return len(s.children) }
