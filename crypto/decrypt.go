package crypto

import (
	"errors"

	"golang.org/x/crypto/nacl/box"
	"golang.org/x/crypto/nacl/secretbox"
)

// ErrAuthenticationFailed is returned when a ciphertext fails authentication,
// either because it was tampered with or sealed under a different key.
var ErrAuthenticationFailed = errors.New("authentication failed")

// OpenAfterPrecomputation authenticates and decrypts ciphertext under a
// precomputed box shared key.
func OpenAfterPrecomputation(ciphertext []byte, nonce Nonce, key *PrecomputedKey) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, errors.New("empty ciphertext")
	}

	decrypted, ok := box.OpenAfterPrecomputation(nil, ciphertext, (*[24]byte)(&nonce), &key.shared)
	if !ok {
		return nil, ErrAuthenticationFailed
	}

	return decrypted, nil
}

// SecretboxOpen authenticates and decrypts ciphertext sealed with
// [SecretboxSeal].
func SecretboxOpen(ciphertext []byte, nonce Nonce, key [32]byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, errors.New("empty ciphertext")
	}

	out, ok := secretbox.Open(nil, ciphertext, (*[24]byte)(&nonce), &key)
	if !ok {
		return nil, ErrAuthenticationFailed
	}

	return out, nil
}
