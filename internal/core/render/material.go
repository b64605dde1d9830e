package render

import (
	"strings"

	"github.com/scenelink/scenelink/internal/core/assets"
	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/internal/core/observability/log"
)

// materialTypes maps the closed set of material type names, matched
// case-insensitively.
var materialTypes = map[string]engine.MaterialType{
	"solid":                   engine.MatSolid,
	"lightmap":                engine.MatLightmap,
	"lightmapadd":             engine.MatLightmapAdd,
	"lightmap_mod2":           engine.MatLightmapMod2,
	"lightmap_mod4":           engine.MatLightmapMod4,
	"lighting":                engine.MatLighting,
	"lighting_mod2":           engine.MatLightingMod2,
	"lighting_mod4":           engine.MatLightingMod4,
	"detail":                  engine.MatDetail,
	"spheremap":               engine.MatSphereMap,
	"reflection2layer":        engine.MatReflection2Layer,
	"transparentaddcolor":     engine.MatTransparentAddColor,
	"transparent_alpha":       engine.MatTransparentAlpha,
	"transparent_cutoff":      engine.MatTransparentCutoff,
	"transparent_vertex":      engine.MatTransparentVertex,
	"transparent_refl_2layer": engine.MatTransparentRefl2Layer,
	"normalmap":               engine.MatNormalMap,
	"parallaxmap":             engine.MatParallaxMap,
}

// materialFlags maps the closed set of material flag names, matched on the
// uppercased suffix of a MaterialFlag<Name> config key.
var materialFlags = map[string]engine.MaterialFlag{
	"WIREFRAME":          engine.FlagWireframe,
	"POINTCLOUD":         engine.FlagPointCloud,
	"GOURAUD_SHADING":    engine.FlagGouraudShading,
	"LIGHTING":           engine.FlagLighting,
	"ZBUFFER":            engine.FlagZBuffer,
	"ZWRITE_ENABLE":      engine.FlagZWriteEnable,
	"BACK_FACE_CULLING":  engine.FlagBackFaceCulling,
	"BILINEAR_FILTER":    engine.FlagBilinearFilter,
	"TRILINEAR_FILTER":   engine.FlagTrilinearFilter,
	"ANISOTROPIC_FILTER": engine.FlagAnisotropicFilter,
	"FOG_ENABLE":         engine.FlagFogEnable,
	"NORMALIZE_NORMALS":  engine.FlagNormalizeNormals,
	"TEXTURE_WRAP":       engine.FlagTextureWrap,
}

// ResolveMaterialType resolves a material type name. Names outside the fixed
// table are treated as the base path of a loadable vertex+fragment shader
// pair; if that also fails the type falls back to solid.
func ResolveMaterialType(name string, cache *assets.Cache, lg log.Log) engine.MaterialType {
	if name == "" {
		return engine.MatSolid
	}
	if mat, ok := materialTypes[strings.ToLower(name)]; ok {
		return mat
	}
	if mat, err := cache.ShaderMaterial(name); err == nil {
		return mat
	}
	lg.Warn("unknown material type, falling back to solid", log.String("name", name))
	return engine.MatSolid
}

// ParseMaterialFlag converts a MaterialFlag<Name> key suffix and its value
// into a flag setting. Unrecognized names report false and are dropped by the
// caller.
func ParseMaterialFlag(name, value string) (engine.FlagSetting, bool) {
	flag, ok := materialFlags[strings.ToUpper(name)]
	if !ok {
		return engine.FlagSetting{}, false
	}
	v := strings.ToLower(value)
	return engine.FlagSetting{Flag: flag, Value: v == "true" || v == "1"}, true
}
