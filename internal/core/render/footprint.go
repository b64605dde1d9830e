package render

import (
	"math/rand"

	"github.com/scenelink/scenelink/internal/core/observability/log"
	"github.com/scenelink/scenelink/internal/core/sim"
	"github.com/scenelink/scenelink/pkg/sequence"
	"github.com/scenelink/scenelink/pkg/vec"
)

// footprintTrail spawns ephemeral marker entities behind a moving entity and
// keeps at most TrailMax of them alive, evicting the oldest first. The step
// counter is owned here, per entity, so presences built from the same
// template step independently.
type footprintTrail struct {
	desc    FootprintDescriptor
	sctx    sim.Context
	rng     *rand.Rand
	log     log.Log
	counter uint32
	trail   *sequence.Queue[sim.SimID]
}

func newFootprintTrail(desc FootprintDescriptor, sctx sim.Context, rng *rand.Rand, lg log.Log) *footprintTrail {
	return &footprintTrail{
		desc:  desc,
		sctx:  sctx,
		rng:   rng,
		log:   lg,
		trail: sequence.NewQueue[sim.SimID](int(desc.TrailMax) + 1),
	}
}

// offset returns a small pseudo-random horizontal displacement with a fixed
// vertical drop, so markers land on the ground and not inside the owner.
func (f *footprintTrail) offset() vec.Vector3 {
	return vec.Vector3{
		X: f.rng.Float64() - 0.5,
		Y: f.rng.Float64() - 0.5,
		Z: -1.5,
	}
}

// step is invoked once per movement of the owner. Every FramesPerStep-th call
// spawns a marker at the owner's position and trims the trail to its bound.
func (f *footprintTrail) step(position, rotation vec.Vector3) {
	spawn := f.counter%f.desc.FramesPerStep == 0
	f.counter++
	if !spawn {
		return
	}

	id, err := f.sctx.AddEntity(f.desc.ObjectKind, position.Add(f.offset()), rotation)
	if err != nil {
		f.log.Warn("footprint spawn failed", log.String("kind", f.desc.ObjectKind), log.Err(err))
		return
	}
	f.trail.PushBack(id)

	if uint32(f.trail.Len()) > f.desc.TrailMax {
		if oldest, ok := f.trail.PopFront(); ok {
			if err := f.sctx.RemoveEntity(oldest); err != nil {
				f.log.Warn("footprint removal failed", log.Uint64("id", uint64(oldest)), log.Err(err))
			}
		}
	}
}

// clear removes every outstanding marker from the simulation.
func (f *footprintTrail) clear() {
	for id := range f.trail.All() {
		if err := f.sctx.RemoveEntity(id); err != nil {
			f.log.Warn("footprint removal failed", log.Uint64("id", uint64(id)), log.Err(err))
		}
	}
	f.trail = sequence.NewQueue[sim.SimID](1)
}

// ids returns the live marker ids from oldest to newest. Test helper.
func (f *footprintTrail) ids() []sim.SimID {
	return f.trail.Collect()
}
