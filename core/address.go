package core

import (
	"encoding/hex"
	"fmt"
)

// Address is a 20-byte opaque account identifier.
type Address [20]byte

// EmptyAddress is the distinguished all-zero address used as the DELEGATE
// transaction's recipient marker and, more generally, as a burn sink.
var EmptyAddress = Address{}

// ParseAddress decodes a hex-encoded 20-byte address, with or without a
// leading "0x".
func ParseAddress(s string) (Address, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("core: invalid address %q: %w", s, err)
	}
	if len(b) != 20 {
		return Address{}, fmt.Errorf("core: invalid address %q: want 20 bytes, got %d", s, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// String renders the address as a 0x-prefixed hex string.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// IsEmpty reports whether a is the all-zero EmptyAddress.
func (a Address) IsEmpty() bool {
	return a == EmptyAddress
}
