package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenelink/scenelink/internal/core/assets"
	"github.com/scenelink/scenelink/internal/core/config"
	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/internal/core/engine/enginemem"
	"github.com/scenelink/scenelink/internal/core/observability/log"
	"github.com/scenelink/scenelink/pkg/vec"
)

func testCache(t *testing.T, opts ...enginemem.Option) (*enginemem.Engine, *assets.Cache) {
	t.Helper()
	eng := enginemem.New(opts...)
	return eng, assets.NewCache(eng, log.NewNop())
}

func mustTemplate(t *testing.T, cache *assets.Cache, doc map[string]any) *VisualTemplate {
	t.Helper()
	tpl, err := BuildTemplate(config.FromMap(doc), cache, log.NewNop())
	require.NoError(t, err)
	t.Cleanup(tpl.Close)
	return tpl
}

func TestBuildTemplate_Defaults(t *testing.T) {
	_, cache := testCache(t)
	tpl := mustTemplate(t, cache, map[string]any{})

	assert.Nil(t, tpl.Mesh())
	assert.Nil(t, tpl.Terrain())
	assert.Nil(t, tpl.ParticleSystem())
	assert.Equal(t, engine.MatSolid, tpl.MaterialType())
	assert.Equal(t, vec.One, tpl.Scale())
	assert.Equal(t, vec.Vector2{X: 1, Y: 1}, tpl.ScaleTexture())
	assert.Equal(t, 25.0, tpl.AnimationSpeed())
	assert.False(t, tpl.CastsShadow())
	assert.False(t, tpl.DrawBoundingBox())
	assert.False(t, tpl.DrawLabel())
	assert.Nil(t, tpl.FPSCamera())
	assert.Nil(t, tpl.Footprints())
}

func TestBuildTemplate_FullDocument(t *testing.T) {
	_, cache := testCache(t)
	tpl := mustTemplate(t, cache, map[string]any{
		"render": map[string]any{
			"AniMesh":              "characters/steve.md2",
			"CastsShadow":          true,
			"DrawBoundingBox":      true,
			"DrawLabel":            true,
			"AnimationSpeed":       40,
			"MaterialType":         "transparent_alpha",
			"MaterialFlagLighting": "false",
			"Scale":                "2 2 4",
			"Texture0":             "characters/steve.png",
		},
	})

	require.NotNil(t, tpl.Mesh())
	assert.Equal(t, "characters/steve.md2", tpl.Mesh().Path())
	assert.True(t, tpl.CastsShadow())
	assert.True(t, tpl.DrawBoundingBox())
	assert.True(t, tpl.DrawLabel())
	assert.Equal(t, 40.0, tpl.AnimationSpeed())
	assert.Equal(t, engine.MatTransparentAlpha, tpl.MaterialType())
	assert.Equal(t, vec.Vector3{X: 2, Y: 2, Z: 4}, tpl.Scale())

	require.Len(t, tpl.Textures(), 1)
	assert.Equal(t, "characters/steve.png", tpl.Textures()[0].Path())

	require.Len(t, tpl.MaterialFlags(), 1)
	assert.Equal(t, engine.FlagSetting{Flag: engine.FlagLighting, Value: false}, tpl.MaterialFlags()[0])
}

func TestBuildTemplate_TextureOrderIsNumeric(t *testing.T) {
	_, cache := testCache(t)
	tpl := mustTemplate(t, cache, map[string]any{
		"render": map[string]any{
			"Texture10": "c.png",
			"Texture2":  "b.png",
			"Texture0":  "a.png",
		},
	})

	require.Len(t, tpl.Textures(), 3)
	assert.Equal(t, "a.png", tpl.Textures()[0].Path())
	assert.Equal(t, "b.png", tpl.Textures()[1].Path())
	assert.Equal(t, "c.png", tpl.Textures()[2].Path())
}

func TestBuildTemplate_UnknownMaterialFlagIsDropped(t *testing.T) {
	_, cache := testCache(t)
	tpl := mustTemplate(t, cache, map[string]any{
		"render": map[string]any{
			"MaterialFlagGlitter":  "true",
			"MaterialFlagLighting": "true",
		},
	})

	require.Len(t, tpl.MaterialFlags(), 1)
	assert.Equal(t, engine.FlagLighting, tpl.MaterialFlags()[0].Flag)
}

func TestBuildTemplate_FPSCamera(t *testing.T) {
	_, cache := testCache(t)

	t.Run("defaults", func(t *testing.T) {
		tpl := mustTemplate(t, cache, map[string]any{
			"render": map[string]any{
				"FPSCamera": map[string]any{},
			},
		})
		cam := tpl.FPSCamera()
		require.NotNil(t, cam)
		assert.Equal(t, vec.Vector3{}, cam.AttachOffset)
		assert.Equal(t, vec.Vector3{X: 100}, cam.TargetOffset)
		assert.Equal(t, 10.0, cam.NearPlane)
		assert.Equal(t, 1000.0, cam.FarPlane)
	})

	t.Run("overrides", func(t *testing.T) {
		tpl := mustTemplate(t, cache, map[string]any{
			"render": map[string]any{
				"FPSCamera": map[string]any{
					"attach_point": "0 0 2",
					"target":       "50 0 2",
					"near_plane":   1,
					"far_plane":    500,
				},
			},
		})
		cam := tpl.FPSCamera()
		require.NotNil(t, cam)
		assert.Equal(t, vec.Vector3{Z: 2}, cam.AttachOffset)
		assert.Equal(t, vec.Vector3{X: 50, Z: 2}, cam.TargetOffset)
		assert.Equal(t, 1.0, cam.NearPlane)
		assert.Equal(t, 500.0, cam.FarPlane)
	})
}

func TestBuildTemplate_Footprints(t *testing.T) {
	_, cache := testCache(t)
	tpl := mustTemplate(t, cache, map[string]any{
		"render": map[string]any{
			"Footprints": map[string]any{
				"Frames": 0, // below the minimum, clamped to 1
				"Trail":  6,
				"Object": "footprint",
			},
		},
	})

	fp := tpl.Footprints()
	require.NotNil(t, fp)
	assert.Equal(t, uint32(1), fp.FramesPerStep)
	assert.Equal(t, uint32(6), fp.TrailMax)
	assert.Equal(t, "footprint", fp.ObjectKind)
}

func TestBuildTemplate_MissingAssetFails(t *testing.T) {
	_, cache := testCache(t, enginemem.Strict())

	_, err := BuildTemplate(config.FromMap(map[string]any{
		"render": map[string]any{
			"AniMesh": "missing.md2",
		},
	}), cache, log.NewNop())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)

	_, err = BuildTemplate(config.FromMap(map[string]any{
		"render": map[string]any{
			"Texture0": "missing.png",
		},
	}), cache, log.NewNop())
	assert.ErrorIs(t, err, ErrConfig)
}

func TestTemplate_CloneSharesMesh(t *testing.T) {
	_, cache := testCache(t)
	tpl := mustTemplate(t, cache, map[string]any{
		"render": map[string]any{
			"AniMesh":              "characters/steve.md2",
			"MaterialFlagLighting": "true",
		},
	})

	refs := tpl.Mesh().(interface{ Refs() int })

	clone := tpl.Clone()
	assert.Same(t, tpl.Mesh(), clone.Mesh())
	assert.Equal(t, 2, refs.Refs(), "clone takes its own mesh reference")

	// The flag slice is copied, not aliased.
	clone.materialFlags[0].Value = false
	assert.True(t, tpl.MaterialFlags()[0].Value)

	clone.Close()
	assert.Equal(t, 1, refs.Refs())
	assert.NotNil(t, tpl.Mesh())
}
