package types

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

const (
	// PublicKeyLength is the length of an account address in bytes.
	PublicKeyLength = 32
	// SignatureLength is the length of an ed25519 signature in bytes.
	SignatureLength = 64
)

var (
	ErrInvalidBase58        = errors.New("invalid base58 string")
	ErrInvalidPublicKeySize = errors.New("invalid public key size")
	ErrInvalidSignatureSize = errors.New("invalid signature size")
)

// SystemProgramID is the address of the native system program.
var SystemProgramID = PublicKey{}

// PublicKey is a 32 byte account address, rendered in base58.
type PublicKey [PublicKeyLength]byte

// PublicKeyFromBase58 decodes a base58 address.
func PublicKeyFromBase58(s string) (PublicKey, error) {
	if s == "" {
		return PublicKey{}, ErrInvalidBase58
	}
	decoded := base58.Decode(s)
	if len(decoded) == 0 {
		return PublicKey{}, ErrInvalidBase58
	}
	return PublicKeyFromBytes(decoded)
}

// MustPublicKeyFromBase58 is like PublicKeyFromBase58 but panics on error.
// It is meant for constants.
func MustPublicKeyFromBase58(s string) PublicKey {
	pk, err := PublicKeyFromBase58(s)
	if err != nil {
		panic(fmt.Sprintf("invalid public key %q: %v", s, err))
	}
	return pk
}

// PublicKeyFromBytes copies b into a PublicKey.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeyLength {
		return pk, fmt.Errorf("%w: %d", ErrInvalidPublicKeySize, len(b))
	}
	copy(pk[:], b)
	return pk, nil
}

// Bytes returns a copy of the key bytes.
func (pk PublicKey) Bytes() []byte {
	b := make([]byte, PublicKeyLength)
	copy(b, pk[:])
	return b
}

// String returns the base58 representation.
func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

// IsZero reports whether pk is the all zero key.
func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

// Equals compares two keys.
func (pk PublicKey) Equals(other PublicKey) bool {
	return bytes.Equal(pk[:], other[:])
}

// MarshalText implements encoding.TextMarshaler.
func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	decoded, err := PublicKeyFromBase58(string(text))
	if err != nil {
		return err
	}
	*pk = decoded
	return nil
}

// Verify checks an ed25519 signature made by pk.
func (pk PublicKey) Verify(message []byte, sig Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(pk[:]), message, sig[:])
}

// Signature is an ed25519 signature, also used as transaction id.
type Signature [SignatureLength]byte

// SignatureFromBytes copies b into a Signature.
func SignatureFromBytes(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureLength {
		return sig, fmt.Errorf("%w: %d", ErrInvalidSignatureSize, len(b))
	}
	copy(sig[:], b)
	return sig, nil
}

// SignatureFromBase58 decodes a base58 signature.
func SignatureFromBase58(s string) (Signature, error) {
	decoded := base58.Decode(s)
	if len(decoded) == 0 {
		return Signature{}, ErrInvalidBase58
	}
	return SignatureFromBytes(decoded)
}

// String returns the base58 representation.
func (s Signature) String() string {
	return base58.Encode(s[:])
}
