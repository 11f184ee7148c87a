package ledger

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestMemory_LockThenUnlockRoundTrips(t *testing.T) {
	m := NewMemory()
	m.Credit("alice", uint256.NewInt(100))

	if err := m.LockBond("alice", uint256.NewInt(40)); err != nil {
		t.Fatalf("LockBond failed: %v", err)
	}
	if got := m.AvailableBond("alice").Uint64(); got != 60 {
		t.Fatalf("available = %d, want 60", got)
	}

	m.UnlockBond("alice", uint256.NewInt(40))
	if got := m.AvailableBond("alice").Uint64(); got != 100 {
		t.Fatalf("available after unlock = %d, want 100", got)
	}
}

func TestMemory_LockInsufficientBondFails(t *testing.T) {
	m := NewMemory()
	m.Credit("alice", uint256.NewInt(10))

	err := m.LockBond("alice", uint256.NewInt(40))
	if err == nil {
		t.Fatalf("expected insufficient-bond error")
	}
	if _, ok := err.(ErrInsufficientBond); !ok {
		t.Fatalf("err = %T, want ErrInsufficientBond", err)
	}
	if got := m.AvailableBond("alice").Uint64(); got != 10 {
		t.Fatalf("available after failed lock = %d, want unchanged 10", got)
	}
}

func TestMemory_PayBondToSlashesFromLockedToRecipient(t *testing.T) {
	m := NewMemory()
	m.Credit("alice", uint256.NewInt(100))
	if err := m.LockBond("alice", uint256.NewInt(100)); err != nil {
		t.Fatalf("LockBond failed: %v", err)
	}

	m.PayBondTo("bob", "alice", uint256.NewInt(100))

	if got := m.AvailableBond("bob").Uint64(); got != 100 {
		t.Fatalf("bob available = %d, want 100", got)
	}
	if got := m.AvailableBond("alice").Uint64(); got != 0 {
		t.Fatalf("alice available = %d, want 0", got)
	}
}

func TestMemory_AllocateThenRewardPrizePaysAndResetsPool(t *testing.T) {
	m := NewMemory()
	m.AllocatePrize(uint256.NewInt(500))
	m.RewardPrizeTo("winner")

	if got := m.AvailableBond("winner").Uint64(); got != 500 {
		t.Fatalf("winner available = %d, want 500", got)
	}

	m.RewardPrizeTo("winner")
	if got := m.AvailableBond("winner").Uint64(); got != 500 {
		t.Fatalf("second reward paid again: available = %d, want still 500", got)
	}
}
