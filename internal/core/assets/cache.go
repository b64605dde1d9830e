// Package assets resolves mesh, texture, terrain, particle and shader
// references through the engine driver, caching every loaded handle so the
// same asset is never loaded twice.
package assets

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"

	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/internal/core/observability/log"
)

// Cache is a process-wide asset cache keyed by asset kind and path.
type Cache struct {
	drv engine.Driver
	log log.Log
	sf  singleflight.Group

	mu        sync.Mutex
	meshes    map[uint64]engine.Mesh
	textures  map[uint64]engine.Texture
	terrains  map[uint64]engine.Terrain
	particles map[uint64]engine.ParticleSystem
	shaders   map[uint64]engine.MaterialType
	fonts     map[uint64]engine.Font
}

// NewCache creates an empty cache over the given driver.
func NewCache(drv engine.Driver, lg log.Log) *Cache {
	return &Cache{
		drv:       drv,
		log:       lg.With(log.String("component", "assets")),
		meshes:    make(map[uint64]engine.Mesh),
		textures:  make(map[uint64]engine.Texture),
		terrains:  make(map[uint64]engine.Terrain),
		particles: make(map[uint64]engine.ParticleSystem),
		shaders:   make(map[uint64]engine.MaterialType),
		fonts:     make(map[uint64]engine.Font),
	}
}

// Mesh resolves an animated mesh asset.
func (c *Cache) Mesh(path string) (engine.Mesh, error) {
	return load(c, c.meshes, "mesh", path, c.drv.LoadMesh)
}

// Texture resolves a texture asset.
func (c *Cache) Texture(path string) (engine.Texture, error) {
	return load(c, c.textures, "texture", path, c.drv.LoadTexture)
}

// Terrain resolves a heightmap asset.
func (c *Cache) Terrain(path string) (engine.Terrain, error) {
	return load(c, c.terrains, "terrain", path, c.drv.LoadTerrain)
}

// ParticleSystem resolves a particle system asset.
func (c *Cache) ParticleSystem(path string) (engine.ParticleSystem, error) {
	return load(c, c.particles, "particle", path, c.drv.LoadParticleSystem)
}

// Font resolves a font asset.
func (c *Cache) Font(path string) (engine.Font, error) {
	return load(c, c.fonts, "font", path, c.drv.LoadFont)
}

// ShaderMaterial compiles the vertex+fragment pair named after base into a
// material type.
func (c *Cache) ShaderMaterial(base string) (engine.MaterialType, error) {
	return load(c, c.shaders, "shader", base, func(b string) (engine.MaterialType, error) {
		return c.drv.LoadShaderProgram(b+".vert", b+".frag")
	})
}

// load returns the cached handle for kind:path or resolves it through fn.
// Concurrent loads of the same asset are collapsed into one driver call.
func load[T any](c *Cache, table map[uint64]T, kind, path string, fn func(string) (T, error)) (T, error) {
	key := kind + ":" + path
	sum := xxhash.Sum64String(key)

	c.mu.Lock()
	if v, ok := table[sum]; ok {
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err, _ := c.sf.Do(key, func() (any, error) {
		loaded, err := fn(path)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		table[sum] = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		c.log.Debug("asset load failed", log.String("kind", kind), log.String("path", path), log.Err(err))
		var zero T
		return zero, err
	}
	return v.(T), nil
}
