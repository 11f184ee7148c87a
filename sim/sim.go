// Package sim implements the gravity-driven tile simulator that executes a
// decoded move stream against a composite board and decides whether the
// resulting state is a win.
//
// Shape note: small typed state, a handful of pure dispatch functions, and
// one stateful driver type tying them together.
package sim

import (
	"puzzlechain/board"
	"puzzlechain/solution"
	"puzzlechain/tile"
)

// Reason is the exhaustive, comparable tag for every way a simulation step
// can fail. The simulator never returns a plain error from its hot path;
// Reason is matched exhaustively by the strict and boolean entry points.
type Reason uint8

const (
	// ReasonNone means the simulation reached the terminal checks and
	// passed both of them: the solution is valid.
	ReasonNone Reason = iota
	ReasonCannotMoveUp
	ReasonNoPicks
	ReasonNothingToMine
	ReasonNoTileToPlace
	ReasonCannotPlace
	ReasonMovedIntoSolid
	ReasonNotAtExit
	ReasonNotEnoughCrystals
	// ReasonMovedOutOfBounds fails a direction that would carry the player
	// off the board's edge immediately, rather than letting playerX/Y wrap
	// and rely on an out-of-range tile lookup to fail the step later.
	ReasonMovedOutOfBounds
	// ReasonInvalidDirection rejects a diagonal direction on Move, and
	// Wait on any move kind, rather than silently reinterpreting either.
	ReasonInvalidDirection
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "None"
	case ReasonCannotMoveUp:
		return "CannotMoveUp"
	case ReasonNoPicks:
		return "NoPicks"
	case ReasonNothingToMine:
		return "NothingToMine"
	case ReasonNoTileToPlace:
		return "NoTileToPlace"
	case ReasonCannotPlace:
		return "CannotPlace"
	case ReasonMovedIntoSolid:
		return "MovedIntoSolid"
	case ReasonNotAtExit:
		return "NotAtExit"
	case ReasonNotEnoughCrystals:
		return "NotEnoughCrystals"
	case ReasonMovedOutOfBounds:
		return "MovedOutOfBounds"
	case ReasonInvalidDirection:
		return "InvalidDirection"
	default:
		return "Unknown"
	}
}

// Failure carries a Reason plus whatever coordinates or counters explain
// it. Not every field is populated for every Reason; zero value means "not
// applicable."
type Failure struct {
	Reason Reason

	X, Y uint8
	Tile tile.Kind

	Have, Need uint8
}

// Inventory is the four small pickup/placement counters a player carries:
// non-decreasing except where a move explicitly consumes one.
type Inventory struct {
	Picks     uint8
	SoftTiles uint8
	Ladders   uint8
	Crystals  uint8
}

// state is the simulator's entire working set: the caller's board, which
// Strict mutates in place (mined, placed and collected tiles), the player's
// position, and inventory. A state lives for a single Strict/Bool call.
type state struct {
	b  *board.Board
	x  uint8
	y  uint8
	inv Inventory
}

func (s *state) tileAt(x, y uint8) tile.Kind {
	return s.b.Tiles[y][x]
}

func (s *state) setTileAt(x, y uint8, k tile.Kind) {
	s.b.Tiles[y][x] = k
}

// inBounds reports whether (x, y) lies within the board's extent.
func inBounds(x, y uint8) bool {
	return int(x) < board.Width && int(y) < board.Height
}

// gravityAndPickup drops the player through non-standable cells, collecting
// picks and crystals along the way, run after initialization and after
// every move. It is a fixed-point operation: once it returns, either the
// player is on a SoftLadder (which suspends gravity at once), the cell
// directly below the player is standable, or the player sits on the bottom
// row.
func (s *state) gravityAndPickup() {
	if s.tileAt(s.x, s.y) == tile.SoftLadder {
		return
	}

	s.collectAt(s.x, s.y)

	for int(s.y) < board.Height-1 {
		below := s.tileAt(s.x, s.y+1)
		if below.Standable() {
			return
		}
		s.y++
		s.collectAt(s.x, s.y)
	}
}

// collectAt picks up a Pick or Crystal at (x, y) into inventory and clears
// the cell; any other tile is left untouched.
func (s *state) collectAt(x, y uint8) {
	switch s.tileAt(x, y) {
	case tile.Pick:
		s.inv.Picks++
		s.setTileAt(x, y, tile.None)
	case tile.Crystal:
		s.inv.Crystals++
		s.setTileAt(x, y, tile.None)
	}
}

// target resolves the cell addressed by a Mine/Place move's direction,
// failing with ReasonMovedOutOfBounds if it would fall off the board.
func (s *state) target(d solution.Direction) (x, y uint8, ok bool) {
	nx := int(s.x) + d.DX()
	ny := int(s.y) + d.DY()
	if nx < 0 || ny < 0 || nx >= board.Width || ny >= board.Height {
		return 0, 0, false
	}
	return uint8(nx), uint8(ny), true
}

// applyMove dispatches one decoded move by kind, mutating s.
func (s *state) applyMove(m solution.Move) *Failure {
	switch m.Kind {
	case solution.Move:
		return s.applyWalk(m.Direction)
	case solution.Mine:
		return s.applyMine(m.Direction)
	case solution.PlaceBlock:
		return s.applyPlace(m.Direction, &s.inv.SoftTiles, tile.SoftBlock)
	case solution.PlaceLadder:
		return s.applyPlace(m.Direction, &s.inv.Ladders, tile.SoftLadder)
	default:
		return &Failure{Reason: ReasonInvalidDirection, X: s.x, Y: s.y}
	}
}

// applyWalk handles Move: only Left/Right/Up/Down are meaningful; a
// diagonal direction is rejected rather than silently reinterpreted. Up
// requires the current cell to be a SoftLadder.
func (s *state) applyWalk(d solution.Direction) *Failure {
	switch d {
	case solution.Left, solution.Right, solution.Up, solution.Down:
	default:
		return &Failure{Reason: ReasonInvalidDirection, X: s.x, Y: s.y}
	}

	if d == solution.Up && s.tileAt(s.x, s.y) != tile.SoftLadder {
		return &Failure{Reason: ReasonCannotMoveUp, X: s.x, Y: s.y}
	}

	nx := int(s.x) + d.DX()
	ny := int(s.y) + d.DY()
	if nx < 0 || ny < 0 || nx >= board.Width || ny >= board.Height {
		return &Failure{Reason: ReasonMovedOutOfBounds, X: s.x, Y: s.y}
	}

	s.x, s.y = uint8(nx), uint8(ny)
	return nil
}

// applyMine handles Mine: any of the eight compass directions resolves a
// target cell; SoftBlock/SoftLadder targets are consumed into inventory,
// anything else fails.
func (s *state) applyMine(d solution.Direction) *Failure {
	if d == solution.Wait {
		return &Failure{Reason: ReasonInvalidDirection, X: s.x, Y: s.y}
	}
	if s.inv.Picks == 0 {
		return &Failure{Reason: ReasonNoPicks, X: s.x, Y: s.y}
	}

	tx, ty, ok := s.target(d)
	if !ok {
		return &Failure{Reason: ReasonMovedOutOfBounds, X: s.x, Y: s.y}
	}

	switch s.tileAt(tx, ty) {
	case tile.SoftBlock:
		s.inv.SoftTiles++
	case tile.SoftLadder:
		s.inv.Ladders++
	default:
		return &Failure{Reason: ReasonNothingToMine, X: tx, Y: ty}
	}

	s.inv.Picks--
	s.setTileAt(tx, ty, tile.None)
	return nil
}

// applyPlace handles PlaceBlock/PlaceLadder: symmetric consumption of
// inventory into a None target cell, writing placed as the new tile.
func (s *state) applyPlace(d solution.Direction, count *uint8, placed tile.Kind) *Failure {
	if d == solution.Wait {
		return &Failure{Reason: ReasonInvalidDirection, X: s.x, Y: s.y}
	}
	if *count == 0 {
		return &Failure{Reason: ReasonNoTileToPlace, Tile: placed, X: s.x, Y: s.y}
	}

	tx, ty, ok := s.target(d)
	if !ok {
		return &Failure{Reason: ReasonMovedOutOfBounds, X: s.x, Y: s.y}
	}

	if s.tileAt(tx, ty) != tile.None {
		return &Failure{Reason: ReasonCannotPlace, Tile: placed, X: tx, Y: ty}
	}

	*count--
	s.setTileAt(tx, ty, placed)
	return nil
}

// Strict runs the full move stream against b and returns ReasonNone on
// success or the first Failure encountered. It is total: bounded by
// len(moves) move-dispatch steps plus, after each, a gravity loop bounded
// by board.Height — at most len(moves)*board.Height + board.Height cell
// operations overall.
func Strict(b *board.Board, moves []solution.Move) Failure {
	s := &state{b: b, x: b.PlayerX, y: b.PlayerY}
	s.gravityAndPickup()

	for _, m := range moves {
		if f := s.applyMove(m); f != nil {
			return *f
		}

		if s.tileAt(s.x, s.y).Solid() {
			return Failure{Reason: ReasonMovedIntoSolid, X: s.x, Y: s.y}
		}

		s.gravityAndPickup()
	}

	if s.x != b.ExitX || s.y != b.ExitY {
		return Failure{Reason: ReasonNotAtExit, X: s.x, Y: s.y}
	}
	if s.inv.Crystals < b.TargetCrystals {
		return Failure{
			Reason: ReasonNotEnoughCrystals,
			Have:   s.inv.Crystals,
			Need:   b.TargetCrystals,
		}
	}

	return Failure{Reason: ReasonNone}
}

// Bool is the boolean entry point the challenge protocol invokes: it must
// never propagate a failure reason, only true or false.
func Bool(b *board.Board, moves []solution.Move) bool {
	return Strict(b, moves).Reason == ReasonNone
}
