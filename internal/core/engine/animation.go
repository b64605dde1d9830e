package engine

// AnimationCycle identifies a named keyframe range baked into a mesh format.
type AnimationCycle uint8

const (
	AnimStand AnimationCycle = iota
	AnimRun
	AnimAttack
	AnimPainA
	AnimPainB
	AnimPainC
	AnimJump
	AnimFlip
	AnimSalute
	AnimFallback
	AnimWave
	AnimPoint
	AnimCrouchStand
	AnimCrouchWalk
	AnimCrouchAttack
	AnimCrouchPain
	AnimCrouchDeath
	AnimDeathFallback
	AnimDeathFallforward
	AnimDeathFallbackSlow
	AnimBoom
)
