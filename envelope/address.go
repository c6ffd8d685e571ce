package envelope

import (
	"github.com/mr-tron/base58"

	"github.com/opd-ai/securerpc/crypto"
)

// Address wraps a peer's 32-byte box public key. Two addresses are equal
// when their underlying bytes are equal, regardless of how they were
// obtained.
type Address struct {
	public [32]byte
}

// NewAddress wraps a raw public key as an Address.
func NewAddress(public [32]byte) Address {
	return Address{public: public}
}

// Bytes returns the raw 32-byte public key.
func (a Address) Bytes() [32]byte {
	return a.public
}

// String renders the address as base58 of its raw public-key bytes, the
// display form peers exchange out of band.
func (a Address) String() string {
	return base58.Encode(a.public[:])
}

// Equal reports whether two addresses denote the same peer.
func (a Address) Equal(other Address) bool {
	return a.public == other.public
}

// PrecomputeSealingKey derives the shared key this address's holder uses to
// seal a message addressed to the peer identified by a, given the caller's
// own secret key.
func (a Address) PrecomputeSealingKey(selfSecret [32]byte) *crypto.PrecomputedKey {
	return crypto.Precompute(a.public, selfSecret)
}

// PrecomputeOpeningKey derives the shared key this address's holder uses to
// open a message sealed by the peer identified by a, given the caller's own
// secret key. For NaCl box, sealing and opening keys are the same value;
// the two methods exist to keep call sites self-documenting about intent.
func (a Address) PrecomputeOpeningKey(selfSecret [32]byte) *crypto.PrecomputedKey {
	return crypto.Precompute(a.public, selfSecret)
}
