// Package sim holds the simulation-side types the scene layer consumes: entity
// identifiers, the shared per-entity state with its dirty bits, and the
// context interface through which scene code reaches back into the
// simulation.
package sim

import "fmt"

// SimID identifies a simulation entity.
type SimID uint64

// EntityType is a small category tag packed into scene node ids.
type EntityType uint32

// BitmaskSize is the number of low bits of a packed id reserved for the
// entity type.
const BitmaskSize = 4

// PackID packs a simulation id and an entity type into one scene node id.
// entityType must be strictly less than 2^(BitmaskSize+1); violating that is
// a programming error.
func PackID(id SimID, entityType EntityType) uint64 {
	if uint64(entityType) >= 1<<(BitmaskSize+1) {
		panic(fmt.Sprintf("sim: entity type %d exceeds packed id capacity", entityType))
	}
	return uint64(id)<<BitmaskSize | uint64(entityType)
}

// UnpackSimID recovers the simulation id from a packed scene node id.
func UnpackSimID(combined uint64) SimID {
	return SimID(combined >> BitmaskSize)
}
