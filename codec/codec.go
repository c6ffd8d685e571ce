package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/securerpc/crypto"
	"github.com/opd-ai/securerpc/envelope"
	"github.com/opd-ai/securerpc/limits"
	"github.com/opd-ai/securerpc/rpcerr"
)

// ErrInvalidSealedEnvelope is returned by Decode and Encode when the
// envelope cannot be framed: truncated input, a length prefix pointing
// past the end of the buffer, or a ciphertext exceeding the configured
// maximum.
var ErrInvalidSealedEnvelope = errors.New("invalid sealed envelope")

const fixedHeaderSize = 32 + 32 + 24 + 4 // sender + recipient + nonce + length prefix

// maxCiphertextLen bounds the ciphertext length field so a corrupted
// length prefix cannot trigger an unbounded allocation. It allows for the
// largest permitted plaintext payload plus a generous sealing overhead.
const maxCiphertextLen = limits.MaxPayloadSize + 64

// Encode writes the deterministic binary encoding of env to a new byte
// slice. The same SealedEnvelope value always encodes to the same bytes.
func Encode(env *envelope.SealedEnvelope) ([]byte, error) {
	if len(env.Msg) > maxCiphertextLen {
		return nil, encodeError(fmt.Errorf("%w: ciphertext length %d exceeds maximum %d", ErrInvalidSealedEnvelope, len(env.Msg), maxCiphertextLen))
	}

	buf := make([]byte, fixedHeaderSize+len(env.Msg))
	sender := env.Sender.Bytes()
	recipient := env.Recipient.Bytes()
	copy(buf[0:32], sender[:])
	copy(buf[32:64], recipient[:])
	copy(buf[64:88], env.Nonce[:])
	binary.BigEndian.PutUint32(buf[88:92], uint32(len(env.Msg)))
	copy(buf[92:], env.Msg)

	if err := limits.ValidateSealedEnvelopeSize(buf); err != nil {
		return nil, encodeError(fmt.Errorf("%w: %v", ErrInvalidSealedEnvelope, err))
	}
	return buf, nil
}

func encodeError(err error) error {
	rerr := rpcerr.New("codec.encode", rpcerr.EncodingErrorInvalidEnvelope, "", err)
	logrus.WithError(rerr).Error("encode failed")
	return rerr
}

func decodeError(err error) error {
	rerr := rpcerr.New("codec.decode", rpcerr.DecodingErrorInvalidEnvelope, "", err)
	logrus.WithError(rerr).Error("decode failed")
	return rerr
}

// Decode consumes exactly one SealedEnvelope from the head of buf and
// returns it along with the number of bytes consumed, so callers can keep
// decoding contiguously packed envelopes from the same buffer.
func Decode(buf []byte) (*envelope.SealedEnvelope, int, error) {
	if len(buf) < fixedHeaderSize {
		return nil, 0, decodeError(fmt.Errorf("%w: truncated header", ErrInvalidSealedEnvelope))
	}

	var sender, recipient [32]byte
	copy(sender[:], buf[0:32])
	copy(recipient[:], buf[32:64])

	var nonce [24]byte
	copy(nonce[:], buf[64:88])

	ciphertextLen := binary.BigEndian.Uint32(buf[88:92])
	if ciphertextLen > maxCiphertextLen {
		return nil, 0, decodeError(fmt.Errorf("%w: ciphertext length %d exceeds maximum %d", ErrInvalidSealedEnvelope, ciphertextLen, maxCiphertextLen))
	}

	total := fixedHeaderSize + int(ciphertextLen)
	if len(buf) < total {
		return nil, 0, decodeError(fmt.Errorf("%w: truncated ciphertext", ErrInvalidSealedEnvelope))
	}

	msg := make(envelope.EncryptedMessageBytes, ciphertextLen)
	copy(msg, buf[fixedHeaderSize:total])

	env := &envelope.SealedEnvelope{
		Sender:    envelope.NewAddress(sender),
		Recipient: envelope.NewAddress(recipient),
		Nonce:     crypto.Nonce(nonce),
		Msg:       msg,
	}
	return env, total, nil
}

// DecodeAll decodes every envelope packed contiguously in buf, consuming
// exactly buf's length. It fails if any trailing bytes remain that do not
// form a complete envelope.
func DecodeAll(buf []byte) ([]*envelope.SealedEnvelope, error) {
	var envelopes []*envelope.SealedEnvelope
	for len(buf) > 0 {
		env, n, err := Decode(buf)
		if err != nil {
			return nil, err
		}
		envelopes = append(envelopes, env)
		buf = buf[n:]
	}
	return envelopes, nil
}
