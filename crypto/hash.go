package crypto

import "crypto/sha256"

// DigestSize is the fixed size, in bytes, of a [Digest].
const DigestSize = sha256.Size

// Digest is a fixed-width cryptographic digest of a message.
type Digest [DigestSize]byte

// Hash computes the digest of message.
func Hash(message []byte) Digest {
	return Digest(sha256.Sum256(message))
}
