package core

import "testing"

func TestAccountViewZeroInitialised(t *testing.T) {
	s := NewAccountState()
	v := s.Track()
	acct := v.GetAccount(Address{1})
	if acct.Nonce != 0 || acct.Available != 0 || acct.Locked != 0 {
		t.Fatalf("expected zero account, got %+v", acct)
	}
}

func TestAccountViewDiscardWithoutCommitLeavesBaseUntouched(t *testing.T) {
	s := NewAccountState()
	v := s.Track()
	v.AdjustAvailable(Address{1}, 100)
	v.IncreaseNonce(Address{1})
	// no Commit()

	fresh := s.Track()
	acct := fresh.GetAccount(Address{1})
	if acct.Available != 0 || acct.Nonce != 0 {
		t.Fatalf("base state was mutated without commit: %+v", acct)
	}
}

func TestAccountViewCommitPromotesOverlay(t *testing.T) {
	s := NewAccountState()
	v := s.Track()
	v.AdjustAvailable(Address{1}, 100)
	v.AdjustLocked(Address{1}, 10)
	v.IncreaseNonce(Address{1})
	v.Commit()

	fresh := s.Track()
	acct := fresh.GetAccount(Address{1})
	if acct.Available != 100 || acct.Locked != 10 || acct.Nonce != 1 {
		t.Fatalf("commit did not promote overlay: %+v", acct)
	}
}

func TestAccountViewNegativeDeltaPanicsOnUnderflow(t *testing.T) {
	s := NewAccountState()
	v := s.Track()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on underflow")
		}
	}()
	v.AdjustAvailable(Address{1}, -1)
}

func TestAccountViewReadsOverlayBeforeBase(t *testing.T) {
	s := NewAccountState()
	seed := s.Track()
	seed.AdjustAvailable(Address{1}, 50)
	seed.Commit()

	v := s.Track()
	v.AdjustAvailable(Address{1}, 25)
	if got := v.GetAccount(Address{1}).Available; got != 75 {
		t.Fatalf("overlay read = %d, want 75", got)
	}
	// base is untouched until commit
	if got := s.get(Address{1}).Available; got != 50 {
		t.Fatalf("base mutated before commit: %d", got)
	}
}
