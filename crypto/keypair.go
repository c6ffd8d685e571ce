// Package crypto implements the cryptographic primitives adapter.
//
// This package handles key generation, sealing, signing, and hashing using
// the NaCl cryptography library through Go's x/crypto packages and the
// standard library's Ed25519 implementation.
//
// Example:
//
//	keys, err := crypto.GenerateBoxKeyPair()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Public key:", base58.Encode(keys.Public[:]))
package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
)

// BoxKeyPair is a NaCl crypto_box key pair (Curve25519) used to derive
// precomputed sealing and opening keys between two peers.
type BoxKeyPair struct {
	Public  [32]byte
	Private [32]byte
}

// SigningKeyPair is an Ed25519 key pair used to produce detached signatures
// over session identifiers and message hashes.
type SigningKeyPair struct {
	Public  [32]byte
	Private [32]byte // the 32-byte seed, not the expanded 64-byte private key
}

// GenerateBoxKeyPair creates a new random NaCl box key pair.
func GenerateBoxKeyPair() (*BoxKeyPair, error) {
	logger := NewLogger("GenerateBoxKeyPair")
	logger.Debug("generating new box key pair")

	publicKey, privateKey, err := box.GenerateKey(rand.Reader)
	if err != nil {
		logger.WithError(err, "key_generation", "box.GenerateKey").Error("failed to generate box key pair")
		return nil, fmt.Errorf("generate box key pair: %w", err)
	}

	keyPair := &BoxKeyPair{Public: *publicKey, Private: *privateKey}
	logger.WithFields(SecureFieldHash(keyPair.Public[:], "public_key")).Debug("box key pair generated")

	return keyPair, nil
}

// GenerateSigningKeyPair creates a new random Ed25519 key pair.
func GenerateSigningKeyPair() (*SigningKeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate signing key pair: %w", err)
	}

	keyPair := &SigningKeyPair{}
	copy(keyPair.Public[:], pub)
	copy(keyPair.Private[:], priv.Seed())

	return keyPair, nil
}

// BoxKeyPairFromSecretKey derives a box key pair from an existing private
// key, clamping it per Curve25519 convention before deriving the public key.
func BoxKeyPairFromSecretKey(secretKey [32]byte) (*BoxKeyPair, error) {
	logger := NewLogger("BoxKeyPairFromSecretKey")

	if isZeroKey(secretKey) {
		logger.Error("secret key validation failed: key is all zeros")
		return nil, errors.New("invalid secret key: all zeros")
	}

	// In NaCl/libsodium, the private key needs to be "clamped" before use
	// to meet curve25519's requirements.
	var clamped [32]byte
	copy(clamped[:], secretKey[:])
	clamped[0] &= 248
	clamped[31] &= 127
	clamped[31] |= 64

	var publicKey [32]byte
	curve25519.ScalarBaseMult(&publicKey, &clamped)
	ZeroBytes(clamped[:])

	keyPair := &BoxKeyPair{
		Public:  publicKey,
		Private: secretKey, // original unclamped key, per NaCl convention
	}

	logger.WithFields(SecureFieldHash(keyPair.Public[:], "public_key")).Debug("box key pair derived from secret key")

	return keyPair, nil
}

// isZeroKey reports whether a key consists of all zeros.
func isZeroKey(key [32]byte) bool {
	for _, b := range key {
		if b != 0 {
			return false
		}
	}
	return true
}
