// Package challenge implements C5: the commit-reveal-challenge state machine
// that gates who claims a competition's prize, sitting around the simulator
// the way an optimistic verification layer sits around an expensive check —
// cheap to commit and reveal, expensive only for whoever disputes the result.
package challenge

import (
	"time"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	"puzzlechain/board"
	"puzzlechain/descriptorstore"
	"puzzlechain/ledger"
	"puzzlechain/sim"
	"puzzlechain/solution"
)

// Reason is the exhaustive, comparable tag for every way a protocol call can
// fail, mirroring sim.Reason's role for the simulator: total, never a plain
// error from the hot path.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonBondNotEnough
	ReasonSolutionNotEqualHash
	ReasonCompetitionAlreadyFinished
	ReasonOutsideTestTimeWindow
	ReasonHashAlreadySet
	ReasonNoSolutionOwner
	ReasonSolutionIsValid
	ReasonCompetitionStillRunning
	ReasonUnclaimedPrize
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "None"
	case ReasonBondNotEnough:
		return "BondNotEnough"
	case ReasonSolutionNotEqualHash:
		return "SolutionNotEqualHash"
	case ReasonCompetitionAlreadyFinished:
		return "CompetitionAlreadyFinished"
	case ReasonOutsideTestTimeWindow:
		return "OutsideTestTimeWindow"
	case ReasonHashAlreadySet:
		return "HashAlreadySet"
	case ReasonNoSolutionOwner:
		return "NoSolutionOwner"
	case ReasonSolutionIsValid:
		return "SolutionIsValid"
	case ReasonCompetitionStillRunning:
		return "CompetitionStillRunning"
	case ReasonUnclaimedPrize:
		return "UnclaimedPrize"
	default:
		return "Unknown"
	}
}

// Error wraps a Reason as the error type every failing call returns. Every
// call finishes all its checks before it touches the ledger, so a non-nil
// Error means no state mutated.
type Error struct {
	Reason Reason
}

func (e Error) Error() string {
	return "challenge: " + e.Reason.String()
}

// Clock is the injected wall-clock collaborator; tests supply a fixed or
// steppable implementation instead of wall time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock backing production use.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Competition is one running round: the puzzle to solve and the prize at
// stake, keyed implicitly (there is at most one outstanding competition).
type Competition struct {
	PuzzleIDs   [4]*uint256.Int
	SetupData   uint16
	StartTs     time.Time
	PrizeAmount *uint256.Int
}

// solutionState is the current submission's lifecycle: committed, then
// revealed, until a challenge or an award clears it.
type solutionState struct {
	submitter string
	hash      [32]byte
	revealed  bool
	moves     []solution.Move
}

// Protocol is the stateful driver tying the descriptor store, bond/prize
// ledger, and simulator together behind the commit-reveal-challenge state
// machine. Exactly one Protocol instance serializes one competition at a
// time; there is never more than one outstanding solution.
type Protocol struct {
	store  descriptorstore.Store
	ledger ledger.Ledger
	clock  Clock

	requiredBond *uint256.Int
	compDur      time.Duration
	testDur      time.Duration

	competition *Competition
	current     *solutionState
}

// NewProtocol returns a Protocol with no competition running and sensible
// defaults: a 1 hour commit-reveal window and a 15 minute test window.
func NewProtocol(store descriptorstore.Store, lg ledger.Ledger, clock Clock) *Protocol {
	return &Protocol{
		store:        store,
		ledger:       lg,
		clock:        clock,
		requiredBond: uint256.NewInt(0),
		compDur:      time.Hour,
		testDur:      15 * time.Minute,
	}
}

// HashMoves computes keccak256 over the wire-order (kind, direction) byte
// pairs of moves, the preimage committed during commit() and checked during
// reveal().
func HashMoves(moves []solution.Move) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, m := range moves {
		h.Write([]byte{byte(m.Kind), byte(m.Direction)})
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// competitionRunning reports whether a competition exists and now is not
// after its StartTs + compDur + testDur.
func (p *Protocol) competitionRunning(now time.Time) bool {
	if p.competition == nil {
		return false
	}
	windowEnd := p.competition.StartTs.Add(p.compDur + p.testDur)
	return !now.After(windowEnd)
}

// adminGuard is the shared precondition for setRequiredBond/setDurations/
// startCompetition: no competition running, and no outstanding solution
// whose bond or prize hasn't been resolved yet.
func (p *Protocol) adminGuard() error {
	if p.competitionRunning(p.clock.Now()) {
		return Error{Reason: ReasonCompetitionStillRunning}
	}
	if p.current != nil {
		return Error{Reason: ReasonUnclaimedPrize}
	}
	return nil
}

// SetRequiredBond updates the bond a commit must lock. Disallowed while a
// competition is running or a solution is outstanding.
func (p *Protocol) SetRequiredBond(amount *uint256.Int) error {
	if err := p.adminGuard(); err != nil {
		return err
	}
	p.requiredBond = new(uint256.Int).Set(amount)
	return nil
}

// SetDurations updates compDur/testDur for future competitions.
func (p *Protocol) SetDurations(compDur, testDur time.Duration) error {
	if err := p.adminGuard(); err != nil {
		return err
	}
	p.compDur = compDur
	p.testDur = testDur
	return nil
}

// StartCompetition begins a new round, allocating prizeAmount into the
// ledger's prize pool.
func (p *Protocol) StartCompetition(puzzleIDs [4]*uint256.Int, setupData uint16, prizeAmount *uint256.Int) error {
	if err := p.adminGuard(); err != nil {
		return err
	}

	p.competition = &Competition{
		PuzzleIDs:   puzzleIDs,
		SetupData:   setupData,
		StartTs:     p.clock.Now(),
		PrizeAmount: new(uint256.Int).Set(prizeAmount),
	}
	p.ledger.AllocatePrize(prizeAmount)
	return nil
}

// Commit binds hash as submitter's committed solution preimage, locking
// requiredBond from their ledger balance.
func (p *Protocol) Commit(submitter string, hash [32]byte) error {
	now := p.clock.Now()
	if p.competition == nil || now.After(p.competition.StartTs.Add(p.compDur)) {
		return Error{Reason: ReasonCompetitionAlreadyFinished}
	}
	if p.current != nil {
		return Error{Reason: ReasonHashAlreadySet}
	}
	if p.ledger.AvailableBond(submitter).Lt(p.requiredBond) {
		return Error{Reason: ReasonBondNotEnough}
	}

	if err := p.ledger.LockBond(submitter, p.requiredBond); err != nil {
		return Error{Reason: ReasonBondNotEnough}
	}
	p.current = &solutionState{submitter: submitter, hash: hash}
	return nil
}

// Reveal discloses submitter's move stream. It must match the committed
// hash; it does not itself award anything.
func (p *Protocol) Reveal(submitter string, moves []solution.Move) error {
	now := p.clock.Now()
	if p.competition == nil || now.After(p.competition.StartTs.Add(p.compDur)) {
		return Error{Reason: ReasonCompetitionAlreadyFinished}
	}
	if p.current == nil || p.current.submitter != submitter {
		return Error{Reason: ReasonNoSolutionOwner}
	}
	if HashMoves(moves) != p.current.hash {
		return Error{Reason: ReasonSolutionNotEqualHash}
	}

	p.current.moves = moves
	p.current.revealed = true
	return nil
}

// TakePlayerBond lets challenger dispute the committed submission during the
// test window. If the revealed moves fail simulation (including a never
// revealed commit, simulated as an empty move stream), the submitter's bond
// is slashed to challenger; if they pass, the call fails with
// ReasonSolutionIsValid and nothing moves.
func (p *Protocol) TakePlayerBond(challenger string) error {
	now := p.clock.Now()
	if p.competition == nil {
		return Error{Reason: ReasonOutsideTestTimeWindow}
	}
	testStart := p.competition.StartTs.Add(p.compDur)
	testEnd := testStart.Add(p.testDur)
	if !now.After(testStart) || now.After(testEnd) {
		return Error{Reason: ReasonOutsideTestTimeWindow}
	}
	if p.current == nil {
		return Error{Reason: ReasonNoSolutionOwner}
	}

	b, err := board.Compose(p.store, p.competition.PuzzleIDs, p.competition.SetupData)
	if err != nil {
		return Error{Reason: ReasonNoSolutionOwner}
	}

	if sim.Bool(b, p.current.moves) {
		return Error{Reason: ReasonSolutionIsValid}
	}

	submitter := p.current.submitter
	p.ledger.PayBondTo(challenger, submitter, p.requiredBond)
	p.current = nil
	return nil
}

// UnlockBondAwardPrize pays the prize pool to the revealed submitter and
// releases their bond once the test window has closed undisputed.
func (p *Protocol) UnlockBondAwardPrize() error {
	now := p.clock.Now()
	if p.competition == nil {
		return Error{Reason: ReasonCompetitionStillRunning}
	}
	testEnd := p.competition.StartTs.Add(p.compDur + p.testDur)
	if !now.After(testEnd) {
		return Error{Reason: ReasonCompetitionStillRunning}
	}
	if p.current == nil || !p.current.revealed {
		return Error{Reason: ReasonNoSolutionOwner}
	}

	submitter := p.current.submitter
	p.ledger.UnlockBond(submitter, p.requiredBond)
	p.ledger.RewardPrizeTo(submitter)
	p.current = nil
	return nil
}
