// Package descriptor implements C1: decoding (and, for tests, encoding) a
// single 20x14 puzzle descriptor from/to its four-word 256-bit wire
// representation.
package descriptor

import (
	"github.com/holiman/uint256"

	"puzzlechain/radix"
	"puzzlechain/tile"
)

// Width and Height are the fixed dimensions of one descriptor's own window.
// Descriptor dimensions are fixed at 20x14; there is no dynamic puzzle size.
const (
	Width  = 20
	Height = 14
)

// Objects is the decoded trio of 3-digit objects every descriptor carries:
// crystal always, start and exit only in the quadrant assigned that role.
// Coordinates are local to this descriptor's own Width x Height window —
// the caller (board.Compose) translates them into composite coordinates.
type Objects struct {
	CrystalX, CrystalY uint8

	HasStart       bool
	StartX, StartY uint8

	HasExit       bool
	ExitX, ExitY uint8
}

// Decode reads one descriptor's tile digits, row-major, directly into dst
// over the window [xStart,xEnd) x [yStart,yEnd), then decodes the three
// trailing 3-digit objects (crystal, start, exit). Digits for an absent
// start/exit role are still consumed as placeholders so later digits stay
// aligned (see radix.Stream.SkipObject).
//
// Decode is total: it never rejects an input. Out-of-range tile digit
// values (6-9) are written as-is; they satisfy no tile predicate used by
// the simulator and so behave as an inert, never-standable, never-solid
// tile, exactly as the source encoder's decoder let them propagate.
//
// dst must be at least yEnd rows of xEnd columns; the composite board
// (board.Compose) and single-descriptor round-trip tests both satisfy this
// by sizing dst to their own full extent.
func Decode(words []*uint256.Int, dst [][]tile.Kind, xStart, yStart, xEnd, yEnd int, useStart, useExit bool) Objects {
	s := radix.NewStream(words)

	for y := yStart; y < yEnd; y++ {
		for x := xStart; x < xEnd; x++ {
			dst[y][x] = tile.Kind(s.Next())
		}
	}

	crystal := s.NextObject()
	objs := Objects{CrystalX: crystal.X, CrystalY: crystal.Y}

	if useStart {
		start := s.NextObject()
		objs.HasStart = true
		objs.StartX, objs.StartY = start.X, start.Y
	} else {
		s.SkipObject()
	}

	if useExit {
		exit := s.NextObject()
		objs.HasExit = true
		objs.ExitX, objs.ExitY = exit.X, exit.Y
	} else {
		s.SkipObject()
	}

	dst[yStart+int(objs.CrystalY)][xStart+int(objs.CrystalX)] = tile.Crystal

	return objs
}

// Puzzle is a complete, encodable single descriptor: the full Width x
// Height tile grid (pre-crystal-overlay, i.e. what a minter would submit)
// plus its three objects. It exists for the codec round-trip property and
// for building test fixtures; production decode flows never construct one.
type Puzzle struct {
	Tiles [Height][Width]tile.Kind
	Objects
}

// Encode packs p into four 256-bit words using the same digit order Decode
// reads: 280 tile digits row-major, then crystal, then start (or a
// placeholder), then exit (or a placeholder).
func Encode(p Puzzle) []*uint256.Int {
	enc := radix.NewEncoder(4)

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			v := p.Tiles[y][x]
			if v == tile.Crystal {
				v = tile.None
			}
			enc.Put(uint8(v))
		}
	}

	putObject(enc, p.CrystalX, p.CrystalY)

	if p.HasStart {
		putObject(enc, p.StartX, p.StartY)
	} else {
		enc.PutDigits(0, 0, 0)
	}

	if p.HasExit {
		putObject(enc, p.ExitX, p.ExitY)
	} else {
		enc.PutDigits(0, 0, 0)
	}

	return enc.Words()
}

// putObject inverts the quadrant fold: it picks the one quadrant in
// {1,2,3,4} whose fold rule reconstructs (x, y) and writes that quadrant's
// raw digits, so Decode's NextObject recovers exactly (x, y).
func putObject(enc *radix.Encoder, x, y uint8) {
	quadrant := uint8(1)
	yDigit, xDigit := y, x

	if y >= 10 {
		quadrant += 2
		yDigit = y - 10
	}
	if x >= 10 {
		quadrant++
		xDigit = x - 10
	}

	enc.PutDigits(quadrant, yDigit, xDigit)
}
