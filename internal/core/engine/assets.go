package engine

import "github.com/scenelink/scenelink/pkg/vec"

// Mesh is a loaded keyframed mesh asset.
type Mesh interface {
	Resource

	Path() string
	BoundingBox() vec.BBox
}

// Texture is a loaded texture asset.
type Texture interface {
	Resource

	Path() string
}

// Terrain is a loaded heightmap asset.
type Terrain interface {
	Resource

	Path() string
}

// ParticleSystem is a loaded particle system description.
type ParticleSystem interface {
	Resource

	Path() string
}

// Driver loads assets from the engine's resource backend.
type Driver interface {
	LoadMesh(path string) (Mesh, error)
	LoadTexture(path string) (Texture, error)
	LoadTerrain(path string) (Terrain, error)
	LoadParticleSystem(path string) (ParticleSystem, error)
	// LoadShaderProgram compiles a vertex+fragment pair into a material type.
	LoadShaderProgram(vertexPath, fragmentPath string) (MaterialType, error)
	LoadFont(path string) (Font, error)
}
