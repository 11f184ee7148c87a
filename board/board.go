// Package board implements C3: assembling one 40x28 composite board out of
// four 20x14 descriptors, picking which quadrant holds the player start and
// which holds the exit, and setting the crystal target.
package board

import (
	"github.com/pkg/errors"

	"github.com/holiman/uint256"

	"puzzlechain/descriptor"
	"puzzlechain/descriptorstore"
	"puzzlechain/tile"
)

// Width and Height are the composite board's fixed dimensions: four 20x14
// descriptors arranged 2x2.
const (
	Width  = 2 * descriptor.Width
	Height = 2 * descriptor.Height
)

// Board is a freshly assembled composite board: never shared across
// simulations, owned exclusively by the caller that composed it.
type Board struct {
	Tiles [Height][Width]tile.Kind

	PlayerX, PlayerY uint8
	ExitX, ExitY     uint8

	TargetCrystals uint8
}

// quadrantOffset returns the (xStart, yStart) top-left corner of subframe k
// (k in 0..3) within the composite board, per the (k mod 2, k div 2) layout.
func quadrantOffset(k int) (x, y int) {
	return (k % 2) * descriptor.Width, (k / 2) * descriptor.Height
}

// Compose decodes the four descriptors referenced by puzzleIDs through
// store, lays each into its 20x14 subframe of the composite board, and
// derives the player start / exit / crystal target from setupData's three
// LSD-first decimal digits: digit0 = startQuadrant, digit1 = exitQuadrant,
// digit2 = targetCrystals. Both quadrants are reduced mod 4 before use.
func Compose(store descriptorstore.Store, puzzleIDs [4]*uint256.Int, setupData uint16) (*Board, error) {
	startQuadrant := int(setupData%10) % 4
	exitQuadrant := int((setupData/10)%10) % 4
	targetCrystals := uint8((setupData / 100) % 10)

	b := &Board{TargetCrystals: targetCrystals}

	dst := make([][]tile.Kind, Height)
	for y := range dst {
		dst[y] = make([]tile.Kind, Width)
	}

	for k := 0; k < 4; k++ {
		words, err := store.GetPuzzle(puzzleIDs[k])
		if err != nil {
			return nil, errors.Wrapf(err, "composing quadrant %d", k)
		}

		xStart, yStart := quadrantOffset(k)
		xEnd, yEnd := xStart+descriptor.Width, yStart+descriptor.Height

		useStart := k == startQuadrant
		useExit := k == exitQuadrant

		objs := descriptor.Decode(toPointers(words), dst, xStart, yStart, xEnd, yEnd, useStart, useExit)

		if useStart {
			b.PlayerX = uint8(xStart) + objs.StartX
			b.PlayerY = uint8(yStart) + objs.StartY
		}
		if useExit {
			b.ExitX = uint8(xStart) + objs.ExitX
			b.ExitY = uint8(yStart) + objs.ExitY
		}
	}

	for y := 0; y < Height; y++ {
		copy(b.Tiles[y][:], dst[y])
	}

	return b, nil
}

func toPointers(words [4]*uint256.Int) []*uint256.Int {
	return words[:]
}
