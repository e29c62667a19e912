package core

import (
	"crypto/ecdsa"
	"errors"

	"github.com/ethereum/go-ethereum/crypto"
)

// This file is an opaque cryptographic facade: sign, verify, and
// address-of-pubkey. It is a thin wrapper over go-ethereum's secp256k1
// implementation.

// ErrInvalidSignature is returned by VerifySignature when the signature
// does not validate against the provided hash and public key.
var ErrInvalidSignature = errors.New("core: invalid signature")

// SignHash signs a 32-byte hash with priv and returns the 65-byte
// {R || S || V} signature.
func SignHash(priv *ecdsa.PrivateKey, hash [32]byte) ([]byte, error) {
	return crypto.Sign(hash[:], priv)
}

// VerifySignature reports whether sig is a valid signature over hash that
// recovers to an address equal to from.
func VerifySignature(hash [32]byte, sig []byte, from Address) error {
	if len(sig) != 65 {
		return ErrInvalidSignature
	}
	pub, err := crypto.SigToPub(hash[:], sig)
	if err != nil {
		return ErrInvalidSignature
	}
	if !crypto.VerifySignature(crypto.FromECDSAPub(pub), hash[:], sig[:64]) {
		return ErrInvalidSignature
	}
	if AddressOfPubKey(pub) != from {
		return ErrInvalidSignature
	}
	return nil
}

// AddressOfPubKey derives the 20-byte Address for an ECDSA public key.
func AddressOfPubKey(pub *ecdsa.PublicKey) Address {
	var out Address
	copy(out[:], crypto.PubkeyToAddress(*pub).Bytes())
	return out
}
