package envelope

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/securerpc/crypto"
	"github.com/opd-ai/securerpc/rpcerr"
)

// ErrInvalidSignature is returned by Verify when the detached signature
// does not verify under the signer's public key.
var ErrInvalidSignature = errors.New("envelope: invalid signature")

// ErrChecksumFailed is returned when a verified signature recovers a digest
// that does not match the hash of the supplied message bytes.
var ErrChecksumFailed = errors.New("checksum failed")

// SignedHash is a detached signature over a message digest, proving the
// signer saw the exact bytes that hash to that digest.
type SignedHash struct {
	Digest    crypto.Digest
	Signature crypto.Signature
}

// NewSignedHash signs the hash of msg under the signer's private seed.
func NewSignedHash(msg MessageBytes, seed [32]byte) (*SignedHash, error) {
	digest := msg.Hash()
	sig, err := crypto.Sign(digest[:], seed)
	if err != nil {
		return nil, fmt.Errorf("envelope: sign hash: %w", err)
	}
	return &SignedHash{Digest: digest, Signature: sig}, nil
}

// Verify checks the signature against the signer's public key, then
// recomputes the hash of msg and compares it against the recovered digest.
// It fails with ErrChecksumFailed if the message bytes were altered after
// signing.
func (s *SignedHash) Verify(msg MessageBytes, pubKey [32]byte) error {
	ok, err := crypto.Verify(s.Digest[:], s.Signature, pubKey)
	if err != nil {
		return fmt.Errorf("envelope: verify signature: %w", err)
	}
	if !ok {
		rerr := rpcerr.New("envelope.verify_hash", rpcerr.MessageErrorInvalidSignature, "", ErrInvalidSignature)
		logrus.WithError(rerr).Error("signed hash verification failed")
		return rerr
	}
	if msg.Hash() != s.Digest {
		rerr := rpcerr.New("envelope.verify_hash", rpcerr.MessageErrorChecksumFailed, "", ErrChecksumFailed)
		logrus.WithError(rerr).Error("signed hash verification failed")
		return rerr
	}
	return nil
}

// Encrypt wraps the signed hash under a symmetric secretbox key with a
// fresh nonce, producing an EncryptedSignedHash. Two calls with the same
// key MUST use distinct nonces; GenerateNonce guarantees this in practice.
func (s *SignedHash) Encrypt(key [32]byte) (*EncryptedSignedHash, error) {
	nonce, err := crypto.GenerateNonce()
	if err != nil {
		return nil, fmt.Errorf("envelope: generate nonce: %w", err)
	}
	plaintext := make([]byte, 0, crypto.DigestSize+crypto.SignatureSize)
	plaintext = append(plaintext, s.Digest[:]...)
	plaintext = append(plaintext, s.Signature[:]...)
	ciphertext := crypto.SecretboxSeal(plaintext, nonce, key)
	return &EncryptedSignedHash{Nonce: nonce, Ciphertext: ciphertext}, nil
}

// EncryptedSignedHash hides a SignedHash's digest and signature behind a
// symmetric key, so an observer on the wire cannot learn which payload was
// signed without also holding the key.
type EncryptedSignedHash struct {
	Nonce      crypto.Nonce
	Ciphertext []byte
}

// Decrypt reverses Encrypt under the given symmetric key.
func (e *EncryptedSignedHash) Decrypt(key [32]byte) (*SignedHash, error) {
	plaintext, err := crypto.SecretboxOpen(e.Ciphertext, e.Nonce, key)
	if err != nil {
		rerr := rpcerr.New("envelope.decrypt_hash", rpcerr.MessageErrorDecryptionFailed, "",
			fmt.Errorf("envelope: decrypt signed hash: %w", err))
		logrus.WithError(rerr).Error("signed hash decryption failed")
		return nil, rerr
	}
	if len(plaintext) != crypto.DigestSize+crypto.SignatureSize {
		rerr := rpcerr.New("envelope.decrypt_hash", rpcerr.MessageErrorInvalidDigestLen, "",
			errors.New("envelope: invalid decrypted signed hash length"))
		logrus.WithError(rerr).WithField("plaintext_len", len(plaintext)).Error("signed hash decryption failed")
		return nil, rerr
	}
	var sh SignedHash
	copy(sh.Digest[:], plaintext[:crypto.DigestSize])
	copy(sh.Signature[:], plaintext[crypto.DigestSize:])
	return &sh, nil
}
