package types

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Keypair is an ed25519 key pair as stored by the cluster CLI tools: a JSON
// array holding the 64 bytes of seed followed by public key.
type Keypair struct {
	private ed25519.PrivateKey
	public  PublicKey
}

// NewKeypair generates a fresh key pair from rand.
func NewKeypair(rand io.Reader) (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand)
	if err != nil {
		return nil, err
	}
	pk, _ := PublicKeyFromBytes(pub)
	return &Keypair{private: priv, public: pk}, nil
}

// NewRandomKeypair generates a key pair from crypto/rand.
func NewRandomKeypair() (*Keypair, error) {
	return NewKeypair(rand.Reader)
}

// KeypairFromSecretKey builds a key pair from the 64 byte secret key.
func KeypairFromSecretKey(secret []byte) (*Keypair, error) {
	if len(secret) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid secret key size: %d", len(secret))
	}
	priv := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize])
	pk, _ := PublicKeyFromBytes(priv.Public().(ed25519.PublicKey))
	if !pk.Equals(PublicKey(secret[ed25519.SeedSize:])) {
		return nil, fmt.Errorf("secret key does not match its public key")
	}
	return &Keypair{private: priv, public: pk}, nil
}

// LoadKeypairFile reads a JSON keypair file.
func LoadKeypairFile(path string) (*Keypair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var secret []byte
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return nil, fmt.Errorf("decode keypair file %s: %w", path, err)
	}
	for _, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("decode keypair file %s: byte out of range: %d", path, v)
		}
		secret = append(secret, byte(v))
	}
	return KeypairFromSecretKey(secret)
}

// SaveKeypairFile writes kp as a JSON keypair file readable only by the owner.
func SaveKeypairFile(path string, kp *Keypair) error {
	ints := make([]int, len(kp.private))
	for i, b := range kp.private {
		ints[i] = int(b)
	}
	data, err := json.Marshal(ints)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// PublicKey returns the address of the key pair.
func (kp *Keypair) PublicKey() PublicKey {
	return kp.public
}

// Address returns the address of the key pair.
func (kp *Keypair) Address() PublicKey {
	return kp.public
}

// Sign signs message with the private key.
func (kp *Keypair) Sign(message []byte) (Signature, error) {
	return SignatureFromBytes(ed25519.Sign(kp.private, message))
}
