package envelope

import "github.com/opd-ai/securerpc/crypto"

// MessageBytes is a plaintext payload that has not been sealed. It supports
// hashing but carries no notion of encryption.
type MessageBytes []byte

// Hash returns the fixed-width digest of the message.
func (m MessageBytes) Hash() crypto.Digest {
	return crypto.Hash(m)
}

// Len reports the payload length in bytes.
func (m MessageBytes) Len() int {
	return len(m)
}

// EncryptedMessageBytes is the ciphertext produced by sealing a
// MessageBytes under a precomputed key. It carries no hashing operation of
// its own; its only purpose is to participate in the seal/open transition.
type EncryptedMessageBytes []byte

// Len reports the ciphertext length in bytes.
func (e EncryptedMessageBytes) Len() int {
	return len(e)
}
