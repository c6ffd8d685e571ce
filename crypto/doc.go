// Package crypto implements the cryptographic primitives adapter used by the
// envelope, codec, and RPC engine packages.
//
// It hides golang.org/x/crypto/nacl/box, nacl/secretbox, and curve25519
// behind a small set of opaque value types: [BoxKeyPair] and
// [SigningKeyPair] for key material, [PrecomputedKey] for a reusable shared
// secret between two peers, [Nonce] for per-call randomness, and [Signature]
// for Ed25519 detached signatures. No caller outside this package touches
// the underlying NaCl or curve25519 APIs directly.
//
// Example:
//
//	self, _ := crypto.GenerateBoxKeyPair()
//	peer, _ := crypto.GenerateBoxKeyPair()
//	sealKey := crypto.Precompute(peer.Public, self.Private)
//	nonce, _ := crypto.GenerateNonce()
//	ciphertext := crypto.SealAfterPrecomputation(plaintext, nonce, sealKey)
//
// Key material returned by this package MUST be wiped with [WipeBoxKeyPair],
// [WipeSigningKeyPair], or [WipePrecomputedKey] once a caller is done with
// it.
//
// # Thread Safety
//
// The key generation, nonce, sealing, opening, signing, and hashing
// functions are safe for concurrent use. A [LoggerHelper] is not: its With*
// methods mutate its own field map, so each goroutine creates its own with
// [NewLogger]. [PrecomputedKey] values are
// immutable once produced and may be shared across goroutines; only the
// wipe functions mutate key material in place, and callers must not use a
// key after wiping it.
package crypto
