// Package engine declares the capability surface the scene synchronization
// layer needs from a 3D engine: node factories, collision selector builders
// and refcounted asset handles. The real renderer lives behind these
// interfaces; enginemem provides a headless implementation.
package engine

import "github.com/scenelink/scenelink/pkg/vec"

// SceneNode is an engine-managed object in the render graph. Transform
// setters take values already converted to engine space.
type SceneNode interface {
	Resource

	ID() uint64
	SetID(id uint64)

	Position() vec.Vector3
	SetPosition(p vec.Vector3)
	Rotation() vec.Vector3
	SetRotation(r vec.Vector3)
	Scale() vec.Vector3
	SetScale(s vec.Vector3)

	SetMaterialTexture(layer int, tex Texture)
	SetMaterialFlag(flag MaterialFlag, on bool)
	SetMaterialType(mat MaterialType)

	// BoundingBox is in node-local engine space, TransformedBoundingBox in
	// world engine space.
	BoundingBox() vec.BBox
	TransformedBoundingBox() vec.BBox
	// TransformVector applies the node's absolute transformation to v.
	TransformVector(v vec.Vector3) vec.Vector3

	Parent() SceneNode
	TriangleSelector() TriangleSelector
	SetTriangleSelector(sel TriangleSelector)

	// Remove detaches the node from the scene graph. The node is freed once
	// all outstanding references are dropped.
	Remove()
}

// AnimatedMeshNode is a SceneNode backed by a keyframed mesh.
type AnimatedMeshNode interface {
	SceneNode

	AddShadowVolume()
	SetAnimationSpeed(framesPerSecond float64)
	SetFrameLoop(start, end int)
	SetCurrentFrame(frame int)
	StartFrame() int
	EndFrame() int
	SetAnimationCycle(cycle AnimationCycle)
	// SetDiffuseColor sets the diffuse color of the primary material. Only
	// animated mesh nodes expose this path.
	SetDiffuseColor(c Color)
}

// TerrainNode is a SceneNode built from a heightmap.
type TerrainNode interface {
	SceneNode

	ScaleTexture(x, y float64)
	MeshBufferForLOD(lod int) (MeshBuffer, bool)
}

// ParticleNode is a SceneNode emitting particles. Particles are non-solid, so
// no triangle selector is ever built for one.
type ParticleNode interface {
	SceneNode
}

// TextNode is a billboard text overlay attached to a parent node.
type TextNode interface {
	SetText(text string)
	Remove()
}

// TriangleSelector is a spatial-query acceleration structure enabling
// collision queries against one node's geometry.
type TriangleSelector interface {
	Resource
}

// MetaTriangleSelector aggregates several selectors so collision queries see
// a compound scene.
type MetaTriangleSelector interface {
	TriangleSelector

	AddSelector(sel TriangleSelector)
}

// Font is an opaque handle to a loaded font face.
type Font interface {
	Name() string
}

// MeshBuffer is an opaque chunk of renderable geometry.
type MeshBuffer interface {
	VertexCount() int
}

// SceneManager creates and owns scene graph nodes.
type SceneManager interface {
	// RootNode is the implicit parent of nodes created by the Add* factories.
	RootNode() SceneNode

	AddAnimatedMeshNode(mesh Mesh) (AnimatedMeshNode, error)
	AddTerrainNode(terrain Terrain) (TerrainNode, error)
	AddParticleNode(system ParticleSystem) (ParticleNode, error)
	AddTextNode(font Font, text string, color Color, parent SceneNode, offset vec.Vector3) (TextNode, error)

	CreateTriangleSelector(node AnimatedMeshNode) (TriangleSelector, error)
	CreateTerrainTriangleSelector(node TerrainNode) (TriangleSelector, error)
	CreateMetaTriangleSelector() MetaTriangleSelector
}
