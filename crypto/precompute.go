package crypto

import (
	"golang.org/x/crypto/nacl/box"
)

// PrecomputedKey is an opaque shared secret derived once from a (public,
// private) key pair and reused across repeated box sealing/opening
// operations with the same peer. It must be wiped with [WipePrecomputedKey]
// once no longer needed.
type PrecomputedKey struct {
	shared [32]byte
}

// Precompute derives the shared key used by [SealAfterPrecomputation] and
// [OpenAfterPrecomputation] for repeated authenticated encryption between
// the holder of privateKey and the peer identified by peerPublicKey.
//
// The same PrecomputedKey value is valid for both sealing (encrypting
// outbound messages to the peer) and opening (decrypting inbound messages
// from the peer) because NaCl's box precomputation is symmetric in the two
// peers' roles.
func Precompute(peerPublicKey, privateKey [32]byte) *PrecomputedKey {
	pk := &PrecomputedKey{}
	box.Precompute(&pk.shared, &peerPublicKey, &privateKey)
	return pk
}

// WipePrecomputedKey securely erases a precomputed shared key's contents.
func WipePrecomputedKey(pk *PrecomputedKey) error {
	if pk == nil {
		return nil
	}
	return SecureWipe(pk.shared[:])
}
