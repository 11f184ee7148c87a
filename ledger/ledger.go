// Package ledger declares the write-only external collaborator that holds
// submitter bonds and the prize pool, plus an in-memory implementation used
// by tests and the CLI's offline modes.
package ledger

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Ledger is the narrow interface the challenge protocol mutates through.
// The protocol only calls these after every reverting check has passed, so
// none of these methods need to be transactional from the caller's point of
// view — a production binding is the one responsible for atomicity.
type Ledger interface {
	// AvailableBond returns account's unlocked bond balance.
	AvailableBond(account string) *uint256.Int
	// LockBond fails if available < amount.
	LockBond(account string, amount *uint256.Int) error
	// UnlockBond releases amount previously locked for account back to its
	// available balance.
	UnlockBond(account string, amount *uint256.Int)
	// PayBondTo is the atomic slash-and-transfer: amount moves out of
	// fromAccount's locked balance directly to recipient's available one.
	PayBondTo(recipient, fromAccount string, amount *uint256.Int)
	// AllocatePrize earmarks amount as the running competition's prize pool.
	AllocatePrize(amount *uint256.Int)
	// RewardPrizeTo pays the allocated prize pool to recipient and resets it.
	RewardPrizeTo(recipient string)
}

// ErrInsufficientBond is returned by Memory.LockBond when account's
// available balance is less than the amount requested.
type ErrInsufficientBond struct {
	Account   string
	Available *uint256.Int
	Requested *uint256.Int
}

func (e ErrInsufficientBond) Error() string {
	return fmt.Sprintf("ledger: %s has %s available, requested %s", e.Account, e.Available.String(), e.Requested.String())
}

// Memory is a trivial in-memory Ledger: separate available/locked balances
// per account and a single prize-pool counter.
type Memory struct {
	available map[string]*uint256.Int
	locked    map[string]*uint256.Int
	prizePool *uint256.Int
}

// NewMemory returns an empty ledger.
func NewMemory() *Memory {
	return &Memory{
		available: make(map[string]*uint256.Int),
		locked:    make(map[string]*uint256.Int),
		prizePool: uint256.NewInt(0),
	}
}

// Credit gives account additional available bond; a test-only setup helper,
// the real ledger's deposit path is out of scope.
func (m *Memory) Credit(account string, amount *uint256.Int) {
	bal := m.balanceOf(m.available, account)
	bal.Add(bal, amount)
	m.available[account] = bal
}

func (m *Memory) balanceOf(bucket map[string]*uint256.Int, account string) *uint256.Int {
	if v, ok := bucket[account]; ok {
		return v
	}
	return uint256.NewInt(0)
}

func (m *Memory) AvailableBond(account string) *uint256.Int {
	return new(uint256.Int).Set(m.balanceOf(m.available, account))
}

func (m *Memory) LockBond(account string, amount *uint256.Int) error {
	avail := m.balanceOf(m.available, account)
	if avail.Lt(amount) {
		return ErrInsufficientBond{Account: account, Available: new(uint256.Int).Set(avail), Requested: new(uint256.Int).Set(amount)}
	}
	avail = new(uint256.Int).Sub(avail, amount)
	m.available[account] = avail

	locked := m.balanceOf(m.locked, account)
	locked = new(uint256.Int).Add(locked, amount)
	m.locked[account] = locked
	return nil
}

func (m *Memory) UnlockBond(account string, amount *uint256.Int) {
	locked := m.balanceOf(m.locked, account)
	locked = new(uint256.Int).Sub(locked, amount)
	m.locked[account] = locked

	avail := m.balanceOf(m.available, account)
	avail = new(uint256.Int).Add(avail, amount)
	m.available[account] = avail
}

func (m *Memory) PayBondTo(recipient, fromAccount string, amount *uint256.Int) {
	locked := m.balanceOf(m.locked, fromAccount)
	locked = new(uint256.Int).Sub(locked, amount)
	m.locked[fromAccount] = locked

	avail := m.balanceOf(m.available, recipient)
	avail = new(uint256.Int).Add(avail, amount)
	m.available[recipient] = avail
}

func (m *Memory) AllocatePrize(amount *uint256.Int) {
	m.prizePool = new(uint256.Int).Add(m.prizePool, amount)
}

func (m *Memory) RewardPrizeTo(recipient string) {
	avail := m.balanceOf(m.available, recipient)
	avail = new(uint256.Int).Add(avail, m.prizePool)
	m.available[recipient] = avail
	m.prizePool = uint256.NewInt(0)
}
