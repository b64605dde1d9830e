package render

import (
	"strings"

	"github.com/scenelink/scenelink/internal/core/engine"
	"github.com/scenelink/scenelink/internal/core/observability/log"
)

// animationCycles maps the fixed set of named animation cycles, matched
// case-insensitively.
var animationCycles = map[string]engine.AnimationCycle{
	"stand":              engine.AnimStand,
	"run":                engine.AnimRun,
	"attack":             engine.AnimAttack,
	"pain_a":             engine.AnimPainA,
	"pain_b":             engine.AnimPainB,
	"pain_c":             engine.AnimPainC,
	"jump":               engine.AnimJump,
	"flip":               engine.AnimFlip,
	"salute":             engine.AnimSalute,
	"fallback":           engine.AnimFallback,
	"wave":               engine.AnimWave,
	"point":              engine.AnimPoint,
	"crouch_stand":       engine.AnimCrouchStand,
	"crouch_walk":        engine.AnimCrouchWalk,
	"crouch_attack":      engine.AnimCrouchAttack,
	"crouch_pain":        engine.AnimCrouchPain,
	"crouch_death":       engine.AnimCrouchDeath,
	"death_fallback":     engine.AnimDeathFallback,
	"death_fallforward":  engine.AnimDeathFallforward,
	"death_fallbackslow": engine.AnimDeathFallbackSlow,
	"boom":               engine.AnimBoom,
}

// SetAnimation switches the presence to a named animation cycle at the given
// speed. A speed of zero or less falls back to the template's animation
// speed. Requests are driven by external scripted commands that may probe
// capability, so an unknown name or a non-animated node is a reportable soft
// condition, never an error.
func (p *ScenePresence) SetAnimation(name string, speed float64) bool {
	if p.meshNode == nil {
		p.log.Warn("node is not an animated mesh, cannot set animation", log.String("animation", name))
		return false
	}
	cycle, ok := animationCycles[strings.ToLower(name)]
	if !ok {
		p.log.Warn("unknown animation", log.String("animation", name))
		return false
	}
	if speed <= 0 {
		speed = p.tpl.AnimationSpeed()
	}
	p.meshNode.SetFrameLoop(p.startFrame, p.endFrame)
	p.meshNode.SetAnimationCycle(cycle)
	p.meshNode.SetAnimationSpeed(speed)
	return true
}
