// Package enginemem is a headless in-memory implementation of the engine
// capability surface. Nodes record the state pushed into them instead of
// rendering, which is enough to drive the synchronization layer in tests and
// in the scened demo binary.
package enginemem

import (
	"fmt"
	"strings"
	"sync"

	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/pkg/vec"
)

// Option configures an Engine.
type Option func(*Engine)

// Strict makes asset loads fail unless the asset was registered beforehand.
// The default is to synthesize assets on demand.
func Strict() Option {
	return func(e *Engine) { e.strict = true }
}

// Engine implements engine.SceneManager and engine.Driver in memory.
type Engine struct {
	mu sync.Mutex

	strict        bool
	failSelectors bool

	meshes    map[string]*mesh
	textures  map[string]*texture
	terrains  map[string]*terrain
	particles map[string]*particleSystem
	shaders   map[string]engine.MaterialType
	fonts     map[string]*font

	nextShader engine.MaterialType
	root       *node
	liveNodes  int
}

var (
	_ engine.SceneManager = (*Engine)(nil)
	_ engine.Driver       = (*Engine)(nil)
)

// New creates an empty headless engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		meshes:     make(map[string]*mesh),
		textures:   make(map[string]*texture),
		terrains:   make(map[string]*terrain),
		particles:  make(map[string]*particleSystem),
		shaders:    make(map[string]engine.MaterialType),
		fonts:      make(map[string]*font),
		nextShader: engine.MatShaderBase,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.root = newNode(e)
	return e
}

// FailSelectorBuilds forces CreateTriangleSelector and
// CreateTerrainTriangleSelector to fail. Used to exercise the hard
// construction failure path.
func (e *Engine) FailSelectorBuilds(fail bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failSelectors = fail
}

// LiveNodes returns the number of nodes still attached or referenced.
func (e *Engine) LiveNodes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.liveNodes
}

// RegisterMesh makes a mesh asset resolvable. frames is the native keyframe
// count of the mesh.
func (e *Engine) RegisterMesh(path string, bbox vec.BBox, frames int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.meshes[path] = &mesh{path: path, bbox: bbox, frames: frames}
}

// RegisterTexture makes a texture asset resolvable.
func (e *Engine) RegisterTexture(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.textures[path] = &texture{path: path}
}

// RegisterTerrain makes a heightmap asset resolvable.
func (e *Engine) RegisterTerrain(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.terrains[path] = &terrain{path: path}
}

// RegisterParticleSystem makes a particle system asset resolvable.
func (e *Engine) RegisterParticleSystem(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.particles[path] = &particleSystem{path: path}
}

// RegisterShader makes the shader pair base.vert/base.frag loadable.
func (e *Engine) RegisterShader(base string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.shaders[base]; !ok {
		e.shaders[base] = e.nextShader
		e.nextShader++
	}
}

// AddCamera creates a camera in the neutral mode.
func (e *Engine) AddCamera() *Camera {
	return &Camera{functionality: engine.FuncNeutral}
}

// --- engine.Driver ---

func (e *Engine) LoadMesh(path string) (engine.Mesh, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, ok := e.meshes[path]
	if !ok {
		if e.strict {
			return nil, fmt.Errorf("mesh not found: %s", path)
		}
		m = &mesh{
			path:   path,
			bbox:   vec.BBox{Min: vec.Vector3{X: -0.5, Y: -0.5, Z: -0.5}, Max: vec.Vector3{X: 0.5, Y: 0.5, Z: 0.5}},
			frames: 40,
		}
		e.meshes[path] = m
	}
	return m, nil
}

func (e *Engine) LoadTexture(path string) (engine.Texture, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.textures[path]
	if !ok {
		if e.strict {
			return nil, fmt.Errorf("texture not found: %s", path)
		}
		t = &texture{path: path}
		e.textures[path] = t
	}
	return t, nil
}

func (e *Engine) LoadTerrain(path string) (engine.Terrain, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.terrains[path]
	if !ok {
		if e.strict {
			return nil, fmt.Errorf("terrain not found: %s", path)
		}
		t = &terrain{path: path}
		e.terrains[path] = t
	}
	return t, nil
}

func (e *Engine) LoadParticleSystem(path string) (engine.ParticleSystem, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.particles[path]
	if !ok {
		if e.strict {
			return nil, fmt.Errorf("particle system not found: %s", path)
		}
		p = &particleSystem{path: path}
		e.particles[path] = p
	}
	return p, nil
}

func (e *Engine) LoadShaderProgram(vertexPath, fragmentPath string) (engine.MaterialType, error) {
	base := strings.TrimSuffix(vertexPath, ".vert")
	if base != strings.TrimSuffix(fragmentPath, ".frag") {
		return engine.MatSolid, fmt.Errorf("mismatched shader pair: %s / %s", vertexPath, fragmentPath)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if mat, ok := e.shaders[base]; ok {
		return mat, nil
	}
	if e.strict {
		return engine.MatSolid, fmt.Errorf("shader program not found: %s", base)
	}
	mat := e.nextShader
	e.nextShader++
	e.shaders[base] = mat
	return mat, nil
}

func (e *Engine) LoadFont(path string) (engine.Font, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, ok := e.fonts[path]
	if !ok {
		if e.strict {
			return nil, fmt.Errorf("font not found: %s", path)
		}
		f = &font{name: path}
		e.fonts[path] = f
	}
	return f, nil
}

// --- engine.SceneManager ---

func (e *Engine) RootNode() engine.SceneNode {
	return e.root
}

func (e *Engine) AddAnimatedMeshNode(m engine.Mesh) (engine.AnimatedMeshNode, error) {
	mm, ok := m.(*mesh)
	if !ok || mm == nil {
		return nil, fmt.Errorf("foreign mesh handle")
	}
	n := &meshNode{node: *newNode(e), mesh: mm}
	n.bbox = mm.bbox
	n.endFrame = mm.frames - 1
	e.attach(&n.node)
	return n, nil
}

func (e *Engine) AddTerrainNode(t engine.Terrain) (engine.TerrainNode, error) {
	tt, ok := t.(*terrain)
	if !ok || tt == nil {
		return nil, fmt.Errorf("foreign terrain handle")
	}
	n := &terrainNode{node: *newNode(e), terrain: tt}
	// Heightmap patches get a fixed footprint; extents only matter for the
	// debug geometry paths.
	n.bbox = vec.BBox{Max: vec.Vector3{X: 256, Y: 32, Z: 256}}
	e.attach(&n.node)
	return n, nil
}

func (e *Engine) AddParticleNode(p engine.ParticleSystem) (engine.ParticleNode, error) {
	pp, ok := p.(*particleSystem)
	if !ok || pp == nil {
		return nil, fmt.Errorf("foreign particle system handle")
	}
	n := &particleNode{node: *newNode(e), system: pp}
	e.attach(&n.node)
	return n, nil
}

func (e *Engine) AddTextNode(f engine.Font, text string, color engine.Color, parent engine.SceneNode, offset vec.Vector3) (engine.TextNode, error) {
	if f == nil {
		return nil, fmt.Errorf("no font")
	}
	return &textNode{text: text, color: color, parent: parent, offset: offset}, nil
}

func (e *Engine) CreateTriangleSelector(n engine.AnimatedMeshNode) (engine.TriangleSelector, error) {
	e.mu.Lock()
	fail := e.failSelectors
	e.mu.Unlock()
	if fail {
		return nil, fmt.Errorf("selector build rejected")
	}
	return &triangleSelector{refs: 1}, nil
}

func (e *Engine) CreateTerrainTriangleSelector(n engine.TerrainNode) (engine.TriangleSelector, error) {
	e.mu.Lock()
	fail := e.failSelectors
	e.mu.Unlock()
	if fail {
		return nil, fmt.Errorf("selector build rejected")
	}
	return &triangleSelector{refs: 1}, nil
}

func (e *Engine) CreateMetaTriangleSelector() engine.MetaTriangleSelector {
	return &metaTriangleSelector{triangleSelector: triangleSelector{refs: 1}}
}

func (e *Engine) attach(n *node) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n.parent = e.root
	e.liveNodes++
}

func (e *Engine) nodeFreed() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.liveNodes--
}
