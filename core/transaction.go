package core

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
)

// Kind enumerates the closed set of transaction kinds the executor
// dispatches on. Kinds never need dynamic lookup — exhaustive switches in
// executor.go cover all four.
type Kind uint8

const (
	TRANSFER Kind = iota + 1
	DELEGATE
	VOTE
	UNVOTE
)

func (k Kind) String() string {
	switch k {
	case TRANSFER:
		return "TRANSFER"
	case DELEGATE:
		return "DELEGATE"
	case VOTE:
		return "VOTE"
	case UNVOTE:
		return "UNVOTE"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// MaxDataLen is the maximum length, in bytes, of a transaction's data
// field.
const MaxDataLen = 128

// Transaction is an immutable signed record once constructed via Sign.
// From and Hash are derived fields, populated by Sign, never set directly
// by callers.
type Transaction struct {
	NetworkID uint8
	Kind      Kind
	To        Address
	Value     Amount
	Fee       Amount
	Nonce     uint64
	Timestamp int64 // ms since epoch
	Data      []byte

	Signature []byte  // 65-byte {R || S || V}, set by Sign
	From      Address // derived: address_of(signer pubkey), set by Sign
	Hash      [32]byte
}

// ErrInvalidFormat reports a structural problem with the transaction: an
// oversized data field, a missing/zero hash, or a malformed/unverifiable
// signature.
var ErrInvalidFormat = errors.New("core: invalid transaction format")

// canonicalPayload builds the fixed-layout wire encoding signed over:
//
//	network_id:u8 | kind:u8 | to:20 | value:u64 | fee:u64 | nonce:u64 |
//	timestamp:i64 | data_len:u32 | data:bytes
//
// everything big-endian, signature excluded.
func (tx *Transaction) canonicalPayload() []byte {
	var buf bytes.Buffer
	buf.WriteByte(tx.NetworkID)
	buf.WriteByte(byte(tx.Kind))
	buf.Write(tx.To[:])

	var b8 [8]byte
	binary.BigEndian.PutUint64(b8[:], uint64(tx.Value))
	buf.Write(b8[:])
	binary.BigEndian.PutUint64(b8[:], uint64(tx.Fee))
	buf.Write(b8[:])
	binary.BigEndian.PutUint64(b8[:], tx.Nonce)
	buf.Write(b8[:])
	binary.BigEndian.PutUint64(b8[:], uint64(tx.Timestamp))
	buf.Write(b8[:])

	var b4 [4]byte
	binary.BigEndian.PutUint32(b4[:], uint32(len(tx.Data)))
	buf.Write(b4[:])
	buf.Write(tx.Data)

	return buf.Bytes()
}

// computeHash hashes the canonical payload (signature excluded).
func (tx *Transaction) computeHash() [32]byte {
	return sha256.Sum256(tx.canonicalPayload())
}

// Sign computes tx.Hash over the canonical payload, signs it with priv,
// and sets tx.Signature and the derived tx.From. Call this once, after all
// other fields are populated; the transaction is immutable thereafter.
func (tx *Transaction) Sign(priv *ecdsa.PrivateKey) error {
	tx.Hash = tx.computeHash()
	sig, err := SignHash(priv, tx.Hash)
	if err != nil {
		return fmt.Errorf("core: sign transaction: %w", err)
	}
	tx.Signature = sig
	tx.From = AddressOfPubKey(&priv.PublicKey)
	return nil
}

// Validate performs the structural checks that precede dispatch: nonzero
// hash, data length bound, a signature that verifies over Hash and
// recovers to From, and a matching network id. It does not consult
// account or delegate state, and it does not enforce the network's fee
// floor — that is a distinct guard checked by the executor so it can be
// reported as its own failure kind.
func (tx *Transaction) Validate(networkID uint8) error {
	if tx.Hash == ([32]byte{}) {
		return fmt.Errorf("%w: zero hash", ErrInvalidFormat)
	}
	if tx.Hash != tx.computeHash() {
		return fmt.Errorf("%w: hash does not match canonical payload", ErrInvalidFormat)
	}
	if len(tx.Data) > MaxDataLen {
		return fmt.Errorf("%w: data length %d exceeds %d", ErrInvalidFormat, len(tx.Data), MaxDataLen)
	}
	if tx.NetworkID != networkID {
		return fmt.Errorf("%w: network id %d != %d", ErrInvalidFormat, tx.NetworkID, networkID)
	}
	if err := VerifySignature(tx.Hash, tx.Signature, tx.From); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}
