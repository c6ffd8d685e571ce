package crypto

import (
	"crypto/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/nacl/box"
	"golang.org/x/crypto/nacl/secretbox"
)

// Nonce is a 24-byte value used once per sealing operation.
type Nonce [24]byte

// GenerateNonce creates a cryptographically secure random nonce. Every call
// returns a distinct value.
func GenerateNonce() (Nonce, error) {
	logger := NewLogger("GenerateNonce")

	var nonce Nonce
	if _, err := rand.Read(nonce[:]); err != nil {
		logger.WithError(err, "rng_failure", "rand.Read").Error("failed to generate nonce")
		return Nonce{}, err
	}

	return nonce, nil
}

// SealAfterPrecomputation authenticates and encrypts message under a
// precomputed box shared key. A fresh nonce must be supplied on every call;
// reusing a nonce with the same key breaks the scheme's security.
func SealAfterPrecomputation(message []byte, nonce Nonce, key *PrecomputedKey) []byte {
	logger := NewLogger("SealAfterPrecomputation").WithField("message_size", len(message))

	sealed := box.SealAfterPrecomputation(nil, message, (*[24]byte)(&nonce), &key.shared)

	logger.WithFields(OperationFields("seal", "ok", logrus.Fields{
		"sealed_size":    len(sealed),
		"overhead_bytes": len(sealed) - len(message),
	})).Debug("message sealed")

	return sealed
}

// SecretboxSeal authenticates and encrypts message under a symmetric key
// using NaCl secretbox. Used to wrap an envelope.EncryptedSignedHash under a fresh
// nonce so that two encryptions of the same signed hash are unlinkable.
func SecretboxSeal(message []byte, nonce Nonce, key [32]byte) []byte {
	logger := NewLogger("SecretboxSeal").WithField("message_size", len(message))

	out := secretbox.Seal(nil, message, (*[24]byte)(&nonce), &key)

	logger.WithField("sealed_size", len(out)).Debug("message sealed with secretbox")

	return out
}
