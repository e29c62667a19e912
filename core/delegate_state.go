package core

import "sync"

// Delegate is the registered-validator record keyed by address.
// RegisteredBlock is advisory metadata, not consulted by the executor's
// rules.
type Delegate struct {
	Name            []byte
	Votes           Amount
	RegisteredBlock uint64
}

type voteEdge struct {
	voter    Address
	delegate Address
}

// DelegateState is the committed, base delegate store: the by-address and
// by-name indexes plus the per-(voter,delegate) vote ledger. Like
// AccountState, it is only mutated through a staged DelegateView obtained
// via Track().
//
// It enforces an address<->name bijection: each address registers at
// most one delegate name, and each name resolves to at most one address.
// It is staged the same way as AccountState for symmetry with the rest
// of the executor's state contract.
type DelegateState struct {
	mu       sync.RWMutex
	byAddr   map[Address]Delegate
	byName   map[string]Address
	voteLedger map[voteEdge]Amount
}

// NewDelegateState returns an empty delegate store.
func NewDelegateState() *DelegateState {
	return &DelegateState{
		byAddr:     make(map[Address]Delegate),
		byName:     make(map[string]Address),
		voteLedger: make(map[voteEdge]Amount),
	}
}

// Track returns a staged view overlaying this store.
func (s *DelegateState) Track() *DelegateView {
	return &DelegateView{
		base:       s,
		byAddr:     make(map[Address]Delegate),
		byName:     make(map[string]Address),
		voteLedger: make(map[voteEdge]Amount),
	}
}

func (s *DelegateState) getByAddr(addr Address) (Delegate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byAddr[addr]
	return d, ok
}

func (s *DelegateState) getByName(name string) (Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byName[name]
	return a, ok
}

func (s *DelegateState) getVote(edge voteEdge) Amount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voteLedger[edge]
}

func (s *DelegateState) commit(v *DelegateView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for addr, d := range v.byAddr {
		s.byAddr[addr] = d
	}
	for name, addr := range v.byName {
		s.byName[name] = addr
	}
	for edge, amt := range v.voteLedger {
		s.voteLedger[edge] = amt
	}
}

// DelegateView is a copy-on-write overlay over a DelegateState.
//
// Register enforces the address/name uniqueness constraint against the
// overlay as well as the base, so the bijection holds even across
// multiple registrations staged within a single uncommitted view.
type DelegateView struct {
	base *DelegateState

	byAddr     map[Address]Delegate
	byName     map[string]Address
	voteLedger map[voteEdge]Amount
}

// GetDelegateByAddress returns the delegate registered at addr, if any,
// consulting the overlay before the base.
func (v *DelegateView) GetDelegateByAddress(addr Address) (Delegate, bool) {
	if d, ok := v.byAddr[addr]; ok {
		return d, true
	}
	return v.base.getByAddr(addr)
}

// GetDelegateByName returns the address registered under name, if any.
func (v *DelegateView) GetDelegateByName(name []byte) (Address, bool) {
	key := string(name)
	if addr, ok := v.byName[key]; ok {
		return addr, true
	}
	return v.base.getByName(key)
}

// isRegisteredAddr reports whether addr is registered in either the
// overlay or the base.
func (v *DelegateView) isRegisteredAddr(addr Address) bool {
	if _, ok := v.byAddr[addr]; ok {
		return true
	}
	if _, ok := v.base.getByAddr(addr); ok {
		return true
	}
	return false
}

// isRegisteredName reports whether name is registered in either the
// overlay or the base.
func (v *DelegateView) isRegisteredName(name []byte) bool {
	key := string(name)
	if _, ok := v.byName[key]; ok {
		return true
	}
	if _, ok := v.base.getByName(key); ok {
		return true
	}
	return false
}

// Register attempts to register addr under name. It fails (returns false,
// leaving the view unmutated) if addr is already registered or name is
// already taken, checked against both the overlay and the base.
func (v *DelegateView) Register(addr Address, name []byte) bool {
	if v.isRegisteredAddr(addr) || v.isRegisteredName(name) {
		return false
	}
	nameCopy := make([]byte, len(name))
	copy(nameCopy, name)
	v.byAddr[addr] = Delegate{Name: nameCopy}
	v.byName[string(nameCopy)] = addr
	return true
}

// Vote adds amount to the (voter,delegate) edge and to delegate's tally.
// It fails if delegate is not a registered address.
func (v *DelegateView) Vote(voter, delegate Address, amount Amount) bool {
	d, ok := v.GetDelegateByAddress(delegate)
	if !ok {
		return false
	}
	edge := voteEdge{voter: voter, delegate: delegate}
	current := v.getVoteEdge(edge)
	newEdge := MustSum(current, amount)
	d.Votes = MustSum(d.Votes, amount)
	v.voteLedger[edge] = newEdge
	v.byAddr[delegate] = d
	return true
}

// Unvote subtracts amount from the (voter,delegate) edge and from
// delegate's tally. It fails if the edge's current amount is less than
// amount, or if delegate is not a registered address.
func (v *DelegateView) Unvote(voter, delegate Address, amount Amount) bool {
	edge := voteEdge{voter: voter, delegate: delegate}
	current := v.getVoteEdge(edge)
	if current < amount {
		return false
	}
	d, ok := v.GetDelegateByAddress(delegate)
	if !ok {
		return false
	}
	newEdge, err := Sub(current, amount)
	if err != nil {
		panic(err)
	}
	newVotes, err := Sub(d.Votes, amount)
	if err != nil {
		panic(err)
	}
	d.Votes = newVotes
	v.voteLedger[edge] = newEdge
	v.byAddr[delegate] = d
	return true
}

func (v *DelegateView) getVoteEdge(edge voteEdge) Amount {
	if amt, ok := v.voteLedger[edge]; ok {
		return amt
	}
	return v.base.getVote(edge)
}

// VoteOf returns the current amount voter has staked on delegate.
func (v *DelegateView) VoteOf(voter, delegate Address) Amount {
	return v.getVoteEdge(voteEdge{voter: voter, delegate: delegate})
}

// Commit promotes every overlay write into the base DelegateState.
func (v *DelegateView) Commit() {
	v.base.commit(v)
}

// ValidateDelegateName reports whether name has a valid delegate name
// syntax: length in [3,16], bytes drawn only from [a-z0-9_].
func ValidateDelegateName(name []byte) bool {
	if len(name) < 3 || len(name) > 16 {
		return false
	}
	for _, b := range name {
		switch {
		case b >= 'a' && b <= 'z':
		case b >= '0' && b <= '9':
		case b == '_':
		default:
			return false
		}
	}
	return true
}
