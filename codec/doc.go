// Package codec implements a deterministic, self-delimiting binary
// encoding for envelope.SealedEnvelope: sender (32 bytes), recipient (32
// bytes), nonce (24 bytes), and a 4-byte big-endian length prefix followed
// by the ciphertext. Fixed fields carry no framing of their own, matching
// the way the crypto package keeps its wire primitives free of policy;
// only the variable-length ciphertext needs a length so that multiple
// envelopes can be packed end-to-end in one buffer and decoded one at a
// time.
package codec
