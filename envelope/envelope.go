package envelope

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/securerpc/crypto"
	"github.com/opd-ai/securerpc/limits"
	"github.com/opd-ai/securerpc/rpcerr"
)

// ErrSealedEnvelopeOpenFailed is returned by Open when authentication of
// the ciphertext fails under the supplied precomputed key.
var ErrSealedEnvelopeOpenFailed = errors.New("sealed envelope open failed")

// OpenEnvelope is a plaintext message framed with its sender and recipient
// addresses. It exists only until it is sealed; there is no path back from
// a SealedEnvelope to an OpenEnvelope other than Open.
type OpenEnvelope struct {
	Sender    Address
	Recipient Address
	Msg       MessageBytes
}

// NewOpenEnvelope copies payload into a MessageBytes and frames it with the
// given sender and recipient addresses.
func NewOpenEnvelope(sender, recipient Address, payload []byte) (*OpenEnvelope, error) {
	if err := limits.ValidatePayloadSize(payload); err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}
	msg := make(MessageBytes, len(payload))
	copy(msg, payload)
	return &OpenEnvelope{Sender: sender, Recipient: recipient, Msg: msg}, nil
}

// Seal consumes the open envelope and produces a SealedEnvelope under the
// given precomputed key, generating a fresh random nonce.
func (e *OpenEnvelope) Seal(key *crypto.PrecomputedKey) (*SealedEnvelope, error) {
	nonce, err := crypto.GenerateNonce()
	if err != nil {
		return nil, fmt.Errorf("envelope: generate nonce: %w", err)
	}
	ciphertext := crypto.SealAfterPrecomputation(e.Msg, nonce, key)
	return &SealedEnvelope{
		Sender:    e.Sender,
		Recipient: e.Recipient,
		Nonce:     nonce,
		Msg:       EncryptedMessageBytes(ciphertext),
	}, nil
}

// SealedEnvelope is a framed message whose body has been authenticated and
// encrypted under a precomputed shared key. It is produced by
// OpenEnvelope.Seal, or rebuilt from its wire form by codec.Decode, and
// consumed only by Open.
type SealedEnvelope struct {
	Sender    Address
	Recipient Address
	Nonce     crypto.Nonce
	Msg       EncryptedMessageBytes
}

// Open reverses Seal under the given precomputed key. It fails with
// ErrSealedEnvelopeOpenFailed if authentication fails.
func (e *SealedEnvelope) Open(key *crypto.PrecomputedKey) (*OpenEnvelope, error) {
	plaintext, err := crypto.OpenAfterPrecomputation(e.Msg, e.Nonce, key)
	if err != nil {
		rerr := rpcerr.New("envelope.open", rpcerr.SealedEnvelopeOpenFailed, e.Sender.String(),
			fmt.Errorf("%w: %v", ErrSealedEnvelopeOpenFailed, err))
		logrus.WithError(rerr).Error("sealed envelope open failed")
		return nil, rerr
	}
	return &OpenEnvelope{
		Sender:    e.Sender,
		Recipient: e.Recipient,
		Msg:       MessageBytes(plaintext),
	}, nil
}

// Display renders the envelope in the diagnostic form
// "sender -> recipient, nonce: <base58>, msg.len: N".
func (e *SealedEnvelope) Display() string {
	return fmt.Sprintf("%s -> %s, nonce: %s, msg.len: %d",
		e.Sender.String(), e.Recipient.String(), base58.Encode(e.Nonce[:]), len(e.Msg))
}
