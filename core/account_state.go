package core

import "sync"

// Account is the per-address ledger entry. The zero value is the implicit
// state of any address never written to.
type Account struct {
	Nonce     uint64
	Available Amount
	Locked    Amount
}

// AccountState is the committed, base account store. It is never mutated
// directly by the executor: callers obtain a staged AccountView via
// Track(), have the executor operate on that view, and then Commit() or
// discard it.
//
// It follows the same mutex-guarded-map shape as a typical account
// manager, generalized here into the base half of a copy-on-write
// overlay.
type AccountState struct {
	mu       sync.RWMutex
	accounts map[Address]Account
}

// NewAccountState returns an empty account store.
func NewAccountState() *AccountState {
	return &AccountState{accounts: make(map[Address]Account)}
}

// Track returns a staged view overlaying this store. Writes to the view
// are invisible to the base store (and to any other staged view) until
// Commit is called.
func (s *AccountState) Track() *AccountView {
	return &AccountView{base: s, overlay: make(map[Address]Account)}
}

func (s *AccountState) get(addr Address) Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts[addr]
}

func (s *AccountState) commit(overlay map[Address]Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for addr, acct := range overlay {
		s.accounts[addr] = acct
	}
}

// AccountView is a copy-on-write overlay over an AccountState. Reads
// consult the overlay first, then fall back to the base store; writes go
// only to the overlay. It is not safe for concurrent use by more than one
// goroutine — each call into the executor must be given a view no other
// activity is concurrently using.
type AccountView struct {
	base    *AccountState
	overlay map[Address]Account
}

// GetAccount returns the current (overlay-then-base) value for addr, zero
// initialised if never referenced.
func (v *AccountView) GetAccount(addr Address) Account {
	if acct, ok := v.overlay[addr]; ok {
		return acct
	}
	return v.base.get(addr)
}

// AdjustAvailable adds delta (which may be negative) to addr's available
// balance. Callers must guarantee this is never invoked with a delta that
// would drive the balance negative; a violation panics rather than
// silently wrapping, since it can only mean the executor's own guards
// failed to catch an invalid transition before mutating state.
func (v *AccountView) AdjustAvailable(addr Address, delta int64) {
	acct := v.GetAccount(addr)
	acct.Available = mustApplyDelta(acct.Available, delta)
	v.overlay[addr] = acct
}

// AdjustLocked adds delta (which may be negative) to addr's locked
// balance, under the same contract as AdjustAvailable.
func (v *AccountView) AdjustLocked(addr Address, delta int64) {
	acct := v.GetAccount(addr)
	acct.Locked = mustApplyDelta(acct.Locked, delta)
	v.overlay[addr] = acct
}

// IncreaseNonce increments addr's nonce by one.
func (v *AccountView) IncreaseNonce(addr Address) {
	acct := v.GetAccount(addr)
	acct.Nonce++
	v.overlay[addr] = acct
}

// Commit promotes every overlay write into the base AccountState. After
// Commit, the view may still be used; its overlay remains as an
// already-applied diff. Callers are expected to discard the view once
// committed.
func (v *AccountView) Commit() {
	v.base.commit(v.overlay)
}

// mustApplyDelta applies a signed delta to an Amount via the checked
// Sum/Sub primitives, panicking on overflow/underflow. This is never a
// transaction failure: the executor's guard sequence must already have
// ensured the delta is representable before this is called.
func mustApplyDelta(base Amount, delta int64) Amount {
	if delta >= 0 {
		v, err := Sum(base, Amount(delta))
		if err != nil {
			panic(err)
		}
		return v
	}
	v, err := Sub(base, Amount(-delta))
	if err != nil {
		panic(err)
	}
	return v
}
