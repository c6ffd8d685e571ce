package crypto

import (
	"crypto/ed25519"
	"errors"
)

// SignatureSize is the size of an Ed25519 signature in bytes.
const SignatureSize = ed25519.SignatureSize

// Signature represents an Ed25519 detached signature.
type Signature [SignatureSize]byte

// Sign creates an Ed25519 detached signature over message using the signing
// key's seed.
func Sign(message []byte, seed [32]byte) (Signature, error) {
	if len(message) == 0 {
		return Signature{}, errors.New("empty message")
	}

	edPrivateKey := ed25519.NewKeyFromSeed(seed[:])
	signatureBytes := ed25519.Sign(edPrivateKey, message)

	var signature Signature
	copy(signature[:], signatureBytes)

	return signature, nil
}

// Verify reports whether signature is a valid Ed25519 signature over
// message under publicKey.
func Verify(message []byte, signature Signature, publicKey [32]byte) (bool, error) {
	if len(message) == 0 {
		return false, errors.New("empty message")
	}

	var edPublicKey [ed25519.PublicKeySize]byte
	copy(edPublicKey[:], publicKey[:])

	return ed25519.Verify(edPublicKey[:], message, signature[:]), nil
}
