package enginemem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/pkg/vec"
)

func TestEngine_NodeLifecycle(t *testing.T) {
	e := New()

	m, err := e.LoadMesh("a.md2")
	require.NoError(t, err)
	n, err := e.AddAnimatedMeshNode(m)
	require.NoError(t, err)
	assert.Equal(t, 1, e.LiveNodes())

	// An extra reference keeps the node alive across Remove.
	n.Grab()
	n.Remove()
	assert.Equal(t, 1, e.LiveNodes())

	n.Drop()
	assert.Equal(t, 0, e.LiveNodes())
}

func TestEngine_RemoveIsIdempotent(t *testing.T) {
	e := New()

	m, _ := e.LoadMesh("a.md2")
	n, err := e.AddAnimatedMeshNode(m)
	require.NoError(t, err)

	n.Remove()
	n.Remove()
	assert.Equal(t, 0, e.LiveNodes())
}

func TestEngine_SelectorOwnership(t *testing.T) {
	e := New()

	m, _ := e.LoadMesh("a.md2")
	n, err := e.AddAnimatedMeshNode(m)
	require.NoError(t, err)

	sel, err := e.CreateTriangleSelector(n)
	require.NoError(t, err)

	n.SetTriangleSelector(sel)
	sel.Drop() // creator's reference

	counted := sel.(interface{ Refs() int })
	assert.Equal(t, 1, counted.Refs(), "the node holds the surviving reference")

	n.SetTriangleSelector(nil)
	assert.Equal(t, 0, counted.Refs())
}

func TestEngine_MetaSelectorAggregates(t *testing.T) {
	e := New()

	meta := e.CreateMetaTriangleSelector()
	m, _ := e.LoadMesh("a.md2")
	n, err := e.AddAnimatedMeshNode(m)
	require.NoError(t, err)
	sel, err := e.CreateTriangleSelector(n)
	require.NoError(t, err)

	meta.AddSelector(sel)
	meta.AddSelector(nil)

	counted := meta.(interface{ SelectorCount() int })
	assert.Equal(t, 1, counted.SelectorCount(), "nil selectors are skipped")
}

func TestEngine_StrictLoads(t *testing.T) {
	e := New(Strict())

	_, err := e.LoadMesh("unregistered.md2")
	assert.Error(t, err)

	e.RegisterMesh("known.md2", vec.BBox{Max: vec.One}, 20)
	m, err := e.LoadMesh("known.md2")
	require.NoError(t, err)
	assert.Equal(t, vec.BBox{Max: vec.One}, m.BoundingBox())
}

func TestEngine_ShaderPairValidation(t *testing.T) {
	e := New()

	_, err := e.LoadShaderProgram("toon.vert", "glow.frag")
	assert.Error(t, err, "mismatched pair names are rejected")

	mat, err := e.LoadShaderProgram("toon.vert", "toon.frag")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, int32(mat), int32(engine.MatShaderBase))

	again, err := e.LoadShaderProgram("toon.vert", "toon.frag")
	require.NoError(t, err)
	assert.Equal(t, mat, again, "one program, one material id")
}

func TestEngine_ForeignHandlesRejected(t *testing.T) {
	e := New()

	_, err := e.AddAnimatedMeshNode(nil)
	assert.Error(t, err)
	_, err = e.AddTerrainNode(nil)
	assert.Error(t, err)
	_, err = e.AddParticleNode(nil)
	assert.Error(t, err)
}

func TestEngine_TextNodeRequiresFont(t *testing.T) {
	e := New()

	_, err := e.AddTextNode(nil, "hello", engine.Color{}, nil, vec.Vector3{})
	assert.Error(t, err)

	f, err := e.LoadFont("fonts/default.png")
	require.NoError(t, err)
	n, err := e.AddTextNode(f, "hello", engine.Color{A: 255, R: 128}, nil, vec.Vector3{Y: 10})
	require.NoError(t, err)
	assert.Equal(t, "hello", n.(interface{ Text() string }).Text())
}
