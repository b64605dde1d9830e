package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scenelink/scenelink/internal/core/assets"
	"github.com/scenelink/scenelink/internal/core/config"
	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/internal/core/observability/log"
	"github.com/scenelink/scenelink/pkg/vec"
)

const defaultAnimationSpeed = 25.0

// FootprintDescriptor configures the footprint trail of entities built from a
// template. The step counter lives on the per-entity trail, not here, so
// entities sharing one template keep independent cadences.
type FootprintDescriptor struct {
	// FramesPerStep is how many movement steps pass between two spawns.
	FramesPerStep uint32
	// TrailMax bounds the number of live footprint entities.
	TrailMax uint32
	// ObjectKind is the entity kind spawned as a marker.
	ObjectKind string
}

// FPSCameraDescriptor configures how a first-person camera attaches to an
// entity.
type FPSCameraDescriptor struct {
	AttachOffset vec.Vector3
	TargetOffset vec.Vector3
	NearPlane    float64
	FarPlane     float64
}

// VisualTemplate is an immutable, shareable descriptor of an entity's visual
// representation, built once from configuration and read by every scene
// presence instantiated from it.
type VisualTemplate struct {
	mesh          *engine.Handle[engine.Mesh]
	textures      []engine.Texture
	terrain       engine.Terrain
	particles     engine.ParticleSystem
	materialType  engine.MaterialType
	materialFlags []engine.FlagSetting

	scale           vec.Vector3
	scaleTexture    vec.Vector2
	castsShadow     bool
	drawBoundingBox bool
	drawLabel       bool
	animationSpeed  float64

	fpsCamera  *FPSCameraDescriptor
	footprints *FootprintDescriptor
}

// BuildTemplate constructs a template from the Render section of a property
// document. Every referenced asset is resolved eagerly; an unresolvable
// reference fails the build with ErrConfig.
func BuildTemplate(props *config.PropertyMap, cache *assets.Cache, lg log.Log) (*VisualTemplate, error) {
	t := &VisualTemplate{
		materialType:   engine.MatSolid,
		scale:          vec.One,
		scaleTexture:   vec.Vector2{X: 1, Y: 1},
		animationSpeed: defaultAnimationSpeed,
	}

	if path, ok := props.String("Render.AniMesh"); ok && path != "" {
		mesh, err := cache.Mesh(path)
		if err != nil {
			return nil, fmt.Errorf("%w: mesh %q: %v", ErrConfig, path, err)
		}
		t.mesh = engine.NewHandle(mesh)
	}

	if v, ok := props.Bool("Render.CastsShadow"); ok {
		t.castsShadow = v
	}
	if v, ok := props.Bool("Render.DrawBoundingBox"); ok {
		t.drawBoundingBox = v
	}
	if v, ok := props.Bool("Render.DrawLabel"); ok {
		t.drawLabel = v
	}
	if v, ok := props.Float("Render.AnimationSpeed"); ok {
		t.animationSpeed = v
	}

	if props.Has("Render.FPSCamera") {
		cam := &FPSCameraDescriptor{
			TargetOffset: vec.Vector3{X: 100},
			NearPlane:    10,
			FarPlane:     1000,
		}
		if v, ok := props.Vector3("Render.FPSCamera.attach_point"); ok {
			cam.AttachOffset = v
		}
		if v, ok := props.Vector3("Render.FPSCamera.target"); ok {
			cam.TargetOffset = v
		}
		if v, ok := props.Float("Render.FPSCamera.near_plane"); ok {
			cam.NearPlane = v
		}
		if v, ok := props.Float("Render.FPSCamera.far_plane"); ok {
			cam.FarPlane = v
		}
		t.fpsCamera = cam
		lg.Debug("template uses a first-person camera")
	}

	if props.Has("Render.Footprints") {
		fp := &FootprintDescriptor{FramesPerStep: 1}
		if v, ok := props.Uint("Render.Footprints.Frames"); ok && v > 0 {
			fp.FramesPerStep = v
		}
		if v, ok := props.Uint("Render.Footprints.Trail"); ok {
			fp.TrailMax = v
		}
		if v, ok := props.String("Render.Footprints.Object"); ok {
			fp.ObjectKind = v
		}
		t.footprints = fp
	}

	if path, ok := props.String("Render.Terrain"); ok && path != "" {
		terrain, err := cache.Terrain(path)
		if err != nil {
			return nil, fmt.Errorf("%w: terrain %q: %v", ErrConfig, path, err)
		}
		t.terrain = terrain
	}

	if path, ok := props.String("Render.ParticleSystem"); ok && path != "" {
		particles, err := cache.ParticleSystem(path)
		if err != nil {
			return nil, fmt.Errorf("%w: particle system %q: %v", ErrConfig, path, err)
		}
		t.particles = particles
	}

	if err := t.collectRenderChildren(props, cache, lg); err != nil {
		return nil, err
	}

	if name, ok := props.String("Render.MaterialType"); ok {
		t.materialType = ResolveMaterialType(name, cache, lg)
	}

	if v, ok := props.Vector3("Render.Scale"); ok {
		t.scale = v
	}
	if v, ok := props.Vector2("Render.ScaleTexture"); ok {
		t.scaleTexture = v
	}

	return t, nil
}

// collectRenderChildren scans the direct children of the Render section for
// indexed Texture<N> references and MaterialFlag<Name> toggles.
func (t *VisualTemplate) collectRenderChildren(props *config.PropertyMap, cache *assets.Cache, lg log.Log) error {
	type indexedTexture struct {
		index int
		tex   engine.Texture
	}
	var textures []indexedTexture

	for _, child := range props.Children("Render") {
		name := strings.ToLower(child.Name)

		if strings.HasPrefix(name, "texture") {
			index, err := strconv.Atoi(name[len("texture"):])
			if err != nil {
				continue
			}
			tex, err := cache.Texture(child.Value)
			if err != nil {
				return fmt.Errorf("%w: texture %q: %v", ErrConfig, child.Value, err)
			}
			textures = append(textures, indexedTexture{index: index, tex: tex})
			continue
		}

		if strings.HasPrefix(name, "materialflag") {
			flag, ok := ParseMaterialFlag(child.Name[len("materialflag"):], child.Value)
			if !ok {
				lg.Debug("dropping unrecognized material flag", log.String("name", child.Name))
				continue
			}
			t.materialFlags = append(t.materialFlags, flag)
		}
	}

	// Children() sorts by name, which breaks down past Texture9; order by
	// the numeric suffix instead.
	for i := 1; i < len(textures); i++ {
		for j := i; j > 0 && textures[j-1].index > textures[j].index; j-- {
			textures[j-1], textures[j] = textures[j], textures[j-1]
		}
	}
	for _, it := range textures {
		t.textures = append(t.textures, it.tex)
	}
	return nil
}

// Clone returns a copy that deep-copies the texture and material-flag
// sequences while sharing the refcounted mesh handle.
func (t *VisualTemplate) Clone() *VisualTemplate {
	c := *t
	c.textures = append([]engine.Texture(nil), t.textures...)
	c.materialFlags = append([]engine.FlagSetting(nil), t.materialFlags...)
	if t.mesh.Valid() {
		c.mesh = engine.NewHandle(t.mesh.Get())
	}
	return &c
}

// Close releases the template's exclusively-held mesh reference.
func (t *VisualTemplate) Close() {
	t.mesh.Release()
}

// Mesh returns the resolved mesh asset, or nil.
func (t *VisualTemplate) Mesh() engine.Mesh {
	if !t.mesh.Valid() {
		return nil
	}
	return t.mesh.Get()
}

func (t *VisualTemplate) Textures() []engine.Texture               { return t.textures }
func (t *VisualTemplate) Terrain() engine.Terrain                  { return t.terrain }
func (t *VisualTemplate) ParticleSystem() engine.ParticleSystem    { return t.particles }
func (t *VisualTemplate) MaterialType() engine.MaterialType        { return t.materialType }
func (t *VisualTemplate) MaterialFlags() []engine.FlagSetting      { return t.materialFlags }
func (t *VisualTemplate) Scale() vec.Vector3                       { return t.scale }
func (t *VisualTemplate) ScaleTexture() vec.Vector2                { return t.scaleTexture }
func (t *VisualTemplate) CastsShadow() bool                        { return t.castsShadow }
func (t *VisualTemplate) DrawBoundingBox() bool                    { return t.drawBoundingBox }
func (t *VisualTemplate) DrawLabel() bool                          { return t.drawLabel }
func (t *VisualTemplate) AnimationSpeed() float64                  { return t.animationSpeed }
func (t *VisualTemplate) FPSCamera() *FPSCameraDescriptor          { return t.fpsCamera }
func (t *VisualTemplate) Footprints() *FootprintDescriptor         { return t.footprints }
