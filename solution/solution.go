// Package solution implements C2: decoding (and, for tests, encoding) the
// variable-length move stream that accompanies a puzzle submission.
package solution

import (
	"github.com/holiman/uint256"

	"puzzlechain/radix"
)

// MaxMoves bounds numMoves so a malformed or adversarial submission cannot
// force an unbounded decode; it matches an 8-bit move counter.
const MaxMoves = 255

// Kind identifies which action a Move performs.
type Kind uint8

const (
	Move        Kind = 0
	Mine        Kind = 1
	PlaceBlock  Kind = 2
	PlaceLadder Kind = 3
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "Move"
	case Mine:
		return "Mine"
	case PlaceBlock:
		return "PlaceBlock"
	case PlaceLadder:
		return "PlaceLadder"
	default:
		return "Unknown"
	}
}

// Direction identifies which of the eight compass directions (or Wait) a
// Move applies to. Only a subset is meaningful per Kind; see package sim.
type Direction uint8

const (
	Right     Direction = 1
	Left      Direction = 2
	Up        Direction = 3
	Down      Direction = 4
	RightUp   Direction = 5
	RightDown Direction = 6
	LeftUp    Direction = 7
	LeftDown  Direction = 8
	Wait      Direction = 9
)

func (d Direction) String() string {
	switch d {
	case Right:
		return "Right"
	case Left:
		return "Left"
	case Up:
		return "Up"
	case Down:
		return "Down"
	case RightUp:
		return "RightUp"
	case RightDown:
		return "RightDown"
	case LeftUp:
		return "LeftUp"
	case LeftDown:
		return "LeftDown"
	case Wait:
		return "Wait"
	default:
		return "Unknown"
	}
}

// DX and DY give the coordinate delta of a directional step. Up/Down/Wait do
// not participate in horizontal resolution and Left/Right do not in
// vertical; sim uses the same vector for every Kind and decides per Kind
// which directions it accepts.
func (d Direction) DX() int {
	switch d {
	case Right, RightUp, RightDown:
		return 1
	case Left, LeftUp, LeftDown:
		return -1
	default:
		return 0
	}
}

func (d Direction) DY() int {
	switch d {
	case Down, RightDown, LeftDown:
		return 1
	case Up, RightUp, LeftUp:
		return -1
	default:
		return 0
	}
}

// Move is one decoded instruction: an action paired with a direction.
type Move struct {
	Kind      Kind
	Direction Direction
}

// thousand is the modulus that isolates words[0]'s three lowest decimal
// digits: the numMoves counter.
var thousand = uint256.NewInt(1000)

// Decode reads numMoves directly as words[0] mod 1000 (its three
// lowest LSD-first decimal digits), then streams numMoves (kind, direction)
// digit pairs starting from digit position 3 — equivalent to continuing the
// same stream with markers already at mod = prev = 1000, per the wire
// format — across word boundaries exactly as radix.Stream does for any
// other digit stream. Decode is total: a numMoves value above MaxMoves is
// clamped to MaxMoves rather than rejected, and a words slice too short to
// supply every claimed move silently yields zero-valued trailing moves
// (kind Move, direction 0), matching the stream's own past-end-is-zero
// semantics.
func Decode(words []*uint256.Int) []Move {
	numMoves := 0
	if len(words) > 0 {
		numMoves = int(new(uint256.Int).Mod(words[0], thousand).Uint64())
	}
	if numMoves > MaxMoves {
		numMoves = MaxMoves
	}

	s := radix.NewStream(words)
	s.SetScale(thousand)

	moves := make([]Move, numMoves)
	for i := range moves {
		moves[i] = Move{
			Kind:      Kind(s.Next()),
			Direction: Direction(s.Next()),
		}
	}
	return moves
}

// Encode packs moves into a single 256-bit word stream: the 3-digit
// numMoves counter first, then one (kind, direction) digit pair per move.
// It exists for round-trip tests; production flows never construct one.
func Encode(moves []Move) []*uint256.Int {
	n := len(moves)
	totalDigits := 3 + 2*n
	numWords := (totalDigits + 76) / 77 // 77 decimal digits fit per 256-bit word
	if numWords < 1 {
		numWords = 1
	}

	enc := radix.NewEncoder(numWords)
	enc.PutDigits(uint8(n%10), uint8((n/10)%10), uint8((n/100)%10))

	for _, m := range moves {
		enc.PutDigits(uint8(m.Kind), uint8(m.Direction))
	}

	return enc.Words()
}
