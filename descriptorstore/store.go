// Package descriptorstore declares the read-only external collaborator that
// owns persisted puzzle descriptors, plus an in-memory implementation used
// by tests and the CLI's offline modes.
package descriptorstore

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Store is the narrow read-only interface the board composer depends on. A
// production binding talks to the mint registry; it is out of scope here
// (see descriptorstore.Memory for the collaborator used by this repo).
type Store interface {
	// GetPuzzle returns the four-word descriptor minted under id.
	GetPuzzle(id *uint256.Int) ([4]*uint256.Int, error)
	// TotalMinted returns the count of descriptors minted so far.
	TotalMinted() *uint256.Int
}

// ErrUnknownPuzzle is returned by Memory.GetPuzzle for an id that was never
// registered.
type ErrUnknownPuzzle struct {
	ID *uint256.Int
}

func (e ErrUnknownPuzzle) Error() string {
	return fmt.Sprintf("descriptorstore: no puzzle minted with id %s", e.ID.String())
}

// Memory is a trivial in-memory Store: an id-keyed map populated by tests
// or by the CLI's compose/simulate/compete commands when reading descriptors straight
// off the command line.
type Memory struct {
	puzzles map[string][4]*uint256.Int
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{puzzles: make(map[string][4]*uint256.Int)}
}

// Put registers words under id, overwriting any prior registration — tests
// use this freely even though a real mint registry would never allow it.
func (m *Memory) Put(id *uint256.Int, words [4]*uint256.Int) {
	m.puzzles[id.String()] = words
}

func (m *Memory) GetPuzzle(id *uint256.Int) ([4]*uint256.Int, error) {
	words, ok := m.puzzles[id.String()]
	if !ok {
		return [4]*uint256.Int{}, ErrUnknownPuzzle{ID: id}
	}
	return words, nil
}

func (m *Memory) TotalMinted() *uint256.Int {
	return uint256.NewInt(uint64(len(m.puzzles)))
}
