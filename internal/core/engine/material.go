package engine

// MaterialType selects the fixed-function material pipeline for a node.
// Values above MatShaderBase identify dynamically loaded shader programs.
type MaterialType int32

const (
	MatSolid MaterialType = iota
	MatLightmap
	MatLightmapAdd
	MatLightmapMod2
	MatLightmapMod4
	MatLighting
	MatLightingMod2
	MatLightingMod4
	MatDetail
	MatSphereMap
	MatReflection2Layer
	MatTransparentAddColor
	MatTransparentAlpha
	MatTransparentCutoff
	MatTransparentVertex
	MatTransparentRefl2Layer
	MatNormalMap
	MatParallaxMap

	// MatShaderBase is the first id handed out for loaded shader programs.
	MatShaderBase MaterialType = 1000
)

// MaterialFlag is a per-node render toggle.
type MaterialFlag uint8

const (
	FlagWireframe MaterialFlag = iota
	FlagPointCloud
	FlagGouraudShading
	FlagLighting
	FlagZBuffer
	FlagZWriteEnable
	FlagBackFaceCulling
	FlagBilinearFilter
	FlagTrilinearFilter
	FlagAnisotropicFilter
	FlagFogEnable
	FlagNormalizeNormals
	FlagTextureWrap
)

// FlagSetting pairs a material flag with its desired value.
type FlagSetting struct {
	Flag  MaterialFlag
	Value bool
}

// Color is an ARGB color with 8 bits per channel.
type Color struct {
	A, R, G, B uint8
}
