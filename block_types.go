package urbangraph

import (
	"math/rand"
)

// BlockType indicates the rough density of what is built on a block.
// Every plot in a block inherits the block's type.
type BlockType string

const (
	Park     = "park"      // open space, nothing is built
	LowRise  = "low-rise"  // houses, small shops
	MidRise  = "mid-rise"  // apartments, offices
	HighRise = "high-rise" // towers
)

var (
	// allBlockTypes in ID order
	allBlockTypes = []BlockType{Park, LowRise, MidRise, HighRise}

	blockindex = map[BlockType]int{
		Park:     0,
		LowRise:  1,
		MidRise:  2,
		HighRise: 3,
	}
)

// ID returns the index of a block type (Park is 0).
func (b BlockType) ID() int {
	id, ok := blockindex[b]
	if !ok {
		return -1
	}
	return id
}

// Buildable returns if buildings may be placed on this type of block
func (b BlockType) Buildable() bool {
	return b != Park && b.ID() >= 0
}

// blockTypeForID returns the block type for the given id (see ID())
func blockTypeForID(i int) BlockType {
	if i < 0 || i >= len(allBlockTypes) {
		return Park
	}
	return allBlockTypes[i]
}

// AllBlockTypes returns every block type in ID order
func AllBlockTypes() []BlockType {
	return append([]BlockType{}, allBlockTypes...)
}

// randomBlockType picks a type uniformly
func randomBlockType(rng *rand.Rand) BlockType {
	return allBlockTypes[rng.Intn(len(allBlockTypes))]
}
