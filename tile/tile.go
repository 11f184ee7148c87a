// Package tile defines the tile vocabulary shared by the descriptor codec,
// the board composer, and the simulator: a small closed enum plus the two
// predicates (solid, standable) the simulator's gravity step depends on.
package tile

// Kind is a single grid cell's content. Values 0-5 are the ones storable in
// a descriptor's digit stream; Crystal is overlaid onto the grid after
// decode and is never itself a digit value (see descriptor.Decode).
type Kind uint8

const (
	None       Kind = 0
	SoftBlock  Kind = 1
	HardBlock  Kind = 2
	SoftLadder Kind = 3
	HardLadder Kind = 4
	Pick       Kind = 5
	Crystal    Kind = 10
)

// Solid reports whether a tile blocks horizontal/diagonal motion into it.
func (k Kind) Solid() bool {
	return k == SoftBlock || k == HardBlock
}

// Standable reports whether a tile halts a falling player.
func (k Kind) Standable() bool {
	return k == SoftBlock || k == SoftLadder
}

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case SoftBlock:
		return "SoftBlock"
	case HardBlock:
		return "HardBlock"
	case SoftLadder:
		return "SoftLadder"
	case HardLadder:
		return "HardLadder"
	case Pick:
		return "Pick"
	case Crystal:
		return "Crystal"
	default:
		return "Unknown"
	}
}
