package session

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/securerpc/crypto"
	"github.com/opd-ai/securerpc/rpcerr"
)

// ErrInvalidSignature is returned by Verify when the detached signature
// does not verify under the supplied public key.
var ErrInvalidSignature = errors.New("invalid signature")

// ErrInvalidSessionIdLength is returned by Verify when the candidate
// payload recovered from the wire is not exactly Size bytes long.
var ErrInvalidSessionIdLength = errors.New("invalid session id length")

// SignedSessionId binds a SessionId with a detached signature over its
// 16-byte serialized form.
type SignedSessionId struct {
	id        SessionId
	Signature crypto.Signature
}

// Sign produces a SignedSessionId for id under the signer's private seed.
func Sign(id SessionId, seed [32]byte) (*SignedSessionId, error) {
	sig, err := crypto.Sign(id.Bytes(), seed)
	if err != nil {
		return nil, fmt.Errorf("session: sign session id: %w", err)
	}
	return &SignedSessionId{id: id, Signature: sig}, nil
}

// Bytes serializes the SignedSessionId to its wire form: the 16-byte
// session id followed by the detached signature.
func (s *SignedSessionId) Bytes() []byte {
	out := make([]byte, 0, Size+crypto.SignatureSize)
	out = append(out, s.id.Bytes()...)
	out = append(out, s.Signature[:]...)
	return out
}

// SignedSessionIdFromBytes splits a wire-format payload produced by Bytes
// into a candidate session id payload and its detached signature, without
// verifying anything. The candidate payload is untrusted: a truncated or
// tampered wire message yields a payload whose length Verify must reject
// before it is cast into a SessionId.
func SignedSessionIdFromBytes(b []byte) (payload []byte, signature crypto.Signature, err error) {
	if len(b) < crypto.SignatureSize {
		return nil, crypto.Signature{}, fmt.Errorf("session: signed session id too short: %d bytes", len(b))
	}
	split := len(b) - crypto.SignatureSize
	payload = make([]byte, split)
	copy(payload, b[:split])
	copy(signature[:], b[split:])
	return payload, signature, nil
}

// Verify checks a candidate session id payload recovered from the wire
// against signature under pubKey. payload is untrusted: if it is not
// exactly Size bytes the id cannot be recovered and Verify fails with
// ErrInvalidSessionIdLength before the signature is even checked. It fails
// with ErrInvalidSignature if the signature does not verify.
func Verify(payload []byte, signature crypto.Signature, pubKey [32]byte) (SessionId, error) {
	if len(payload) != Size {
		rerr := rpcerr.New("session.verify", rpcerr.MessageErrorInvalidSessionLen, "", ErrInvalidSessionIdLength)
		logrus.WithError(rerr).WithField("payload_len", len(payload)).Error("session id verification failed")
		return SessionId{}, rerr
	}
	ok, err := crypto.Verify(payload, signature, pubKey)
	if err != nil {
		return SessionId{}, fmt.Errorf("session: verify: %w", err)
	}
	if !ok {
		rerr := rpcerr.New("session.verify", rpcerr.MessageErrorInvalidSignature, "", ErrInvalidSignature)
		logrus.WithError(rerr).Error("session id verification failed")
		return SessionId{}, rerr
	}
	return SessionIdFromBytes(payload)
}
