package descriptor

import (
	"testing"

	"puzzlechain/tile"
)

func blankBoard(width, height int) [][]tile.Kind {
	b := make([][]tile.Kind, height)
	for y := range b {
		b[y] = make([]tile.Kind, width)
	}
	return b
}

func TestDecode_RoundTripTilesAndCrystal(t *testing.T) {
	var p Puzzle
	p.Tiles[3][1] = tile.SoftBlock
	p.Tiles[0][0] = tile.HardLadder
	p.CrystalX, p.CrystalY = 5, 2

	words := Encode(p)
	dst := blankBoard(Width, Height)
	objs := Decode(words, dst, 0, 0, Width, Height, false, false)

	if dst[3][1] != tile.SoftBlock {
		t.Fatalf("tile (1,3) = %v, want SoftBlock", dst[3][1])
	}
	if dst[0][0] != tile.HardLadder {
		t.Fatalf("tile (0,0) = %v, want HardLadder", dst[0][0])
	}
	if dst[2][5] != tile.Crystal {
		t.Fatalf("crystal cell = %v, want Crystal overlay", dst[2][5])
	}
	if objs.CrystalX != 5 || objs.CrystalY != 2 {
		t.Fatalf("crystal obj = (%d,%d), want (5,2)", objs.CrystalX, objs.CrystalY)
	}
}

func TestDecode_RoundTripStartAndExit(t *testing.T) {
	var p Puzzle
	p.HasStart, p.StartX, p.StartY = true, 17, 12
	p.HasExit, p.ExitX, p.ExitY = true, 3, 1
	p.CrystalX, p.CrystalY = 0, 0

	words := Encode(p)
	dst := blankBoard(Width, Height)
	objs := Decode(words, dst, 0, 0, Width, Height, true, true)

	if !objs.HasStart || objs.StartX != 17 || objs.StartY != 12 {
		t.Fatalf("start = %+v, want (17,12)", objs)
	}
	if !objs.HasExit || objs.ExitX != 3 || objs.ExitY != 1 {
		t.Fatalf("exit = %+v, want (3,1)", objs)
	}
}

func TestDecode_AbsentStartExitSkipped(t *testing.T) {
	var p Puzzle
	p.HasStart, p.StartX, p.StartY = true, 5, 5
	p.HasExit, p.ExitX, p.ExitY = true, 6, 6

	words := Encode(p)
	dst := blankBoard(Width, Height)
	objs := Decode(words, dst, 0, 0, Width, Height, false, false)

	if objs.HasStart || objs.HasExit {
		t.Fatalf("objs = %+v, want both absent when useStart/useExit are false", objs)
	}
}

func TestDecode_WindowOffsetWritesAbsoluteCoordinates(t *testing.T) {
	var p Puzzle
	p.Tiles[0][0] = tile.Pick
	p.CrystalX, p.CrystalY = 1, 1

	words := Encode(p)
	dst := blankBoard(40, 28)
	Decode(words, dst, 20, 14, 40, 28, false, false)

	if dst[14][20] != tile.Pick {
		t.Fatalf("tile at board offset (20,14) = %v, want Pick", dst[14][20])
	}
	if dst[15][21] != tile.Crystal {
		t.Fatalf("crystal at board offset (21,15) = %v, want Crystal", dst[15][21])
	}
}

func TestDecode_EveryQuadrantFoldCombination(t *testing.T) {
	cases := []struct {
		x, y uint8
	}{
		{x: 3, y: 2},   // quadrant 1: x<10, y<10
		{x: 15, y: 2},  // quadrant 2: x>=10, y<10
		{x: 3, y: 11},  // quadrant 3: x<10, y>=10
		{x: 19, y: 13}, // quadrant 4: x>=10, y>=10
	}

	for _, c := range cases {
		var p Puzzle
		p.CrystalX, p.CrystalY = c.x, c.y
		words := Encode(p)
		dst := blankBoard(Width, Height)
		objs := Decode(words, dst, 0, 0, Width, Height, false, false)
		if objs.CrystalX != c.x || objs.CrystalY != c.y {
			t.Fatalf("(%d,%d) round-tripped to (%d,%d)", c.x, c.y, objs.CrystalX, objs.CrystalY)
		}
	}
}

func TestDecode_OutOfRangeTileDigitIsInert(t *testing.T) {
	// Digit values 6-9 never appear from Encode, but Decode must still be
	// total: it writes them through unchanged rather than rejecting.
	var p Puzzle
	p.CrystalX, p.CrystalY = 5, 5 // keep the crystal overlay off (0,0)
	enc := Encode(p)
	enc[0].AddUint64(enc[0], 7) // tile (0,0) is the stream's first digit: 0 -> 7
	dst := blankBoard(Width, Height)
	Decode(enc, dst, 0, 0, Width, Height, false, false)

	if dst[0][0] != tile.Kind(7) {
		t.Fatalf("tile (0,0) = %d, want out-of-range digit 7 written through", dst[0][0])
	}
	if dst[0][0].Solid() || dst[0][0].Standable() {
		t.Fatalf("out-of-range tile %d satisfies a tile predicate, want inert", dst[0][0])
	}
}
