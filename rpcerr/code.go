package rpcerr

// Code is a 128-bit stable identifier for an error kind, represented as two
// 64-bit halves so the zero value is distinguishable from every defined
// code without relying on an external big-integer type.
type Code struct {
	hi, lo uint64
}

// Level classifies the severity with which a Code's occurrences must be
// logged.
type Level int

const (
	// LevelError marks an error kind that a caller can reasonably expect
	// and handle.
	LevelError Level = iota
	// LevelAlert marks an error kind that indicates the instance holding
	// it is no longer usable, or that a hard capacity bound was hit.
	LevelAlert
)

func (l Level) String() string {
	switch l {
	case LevelAlert:
		return "alert"
	default:
		return "error"
	}
}

func newCode(hi, lo uint64) Code {
	return Code{hi: hi, lo: lo}
}

// Equal reports whether two codes identify the same error kind.
func (c Code) Equal(other Code) bool {
	return c.hi == other.hi && c.lo == other.lo
}

// Every defined error kind, with a distinct 128-bit identifier and its
// documented severity from the error identity table.
var (
	AioContextChannelClosed       = newCode(0x1f2e3d4c5b6a7988, 0x0000000000000001)
	AioContextAtMaxCapacity       = newCode(0x1f2e3d4c5b6a7988, 0x0000000000000002)
	ListenerStartError            = newCode(0x1f2e3d4c5b6a7988, 0x0000000000000003)
	AioCreateError                = newCode(0x1f2e3d4c5b6a7988, 0x0000000000000004)
	AioReceiveError               = newCode(0x1f2e3d4c5b6a7988, 0x0000000000000005)
	AioContextError               = newCode(0x1f2e3d4c5b6a7988, 0x0000000000000006)
	AioSendError                  = newCode(0x1f2e3d4c5b6a7988, 0x0000000000000007)
	SealedEnvelopeOpenFailed      = newCode(0x1f2e3d4c5b6a7988, 0x0000000000000008)
	DecodingErrorInvalidEnvelope  = newCode(0x1f2e3d4c5b6a7988, 0x0000000000000009)
	EncodingErrorInvalidEnvelope  = newCode(0x1f2e3d4c5b6a7988, 0x000000000000000a)
	MessageErrorInvalidSignature  = newCode(0x1f2e3d4c5b6a7988, 0x000000000000000b)
	MessageErrorInvalidDigestLen  = newCode(0x1f2e3d4c5b6a7988, 0x000000000000000c)
	MessageErrorInvalidSessionLen = newCode(0x1f2e3d4c5b6a7988, 0x000000000000000d)
	MessageErrorDecryptionFailed  = newCode(0x1f2e3d4c5b6a7988, 0x000000000000000e)
	MessageErrorChecksumFailed    = newCode(0x1f2e3d4c5b6a7988, 0x000000000000000f)
)

// levelOf is the closed table mapping every defined Code to its severity.
var levelOf = map[Code]Level{
	AioContextChannelClosed:       LevelAlert,
	AioContextAtMaxCapacity:       LevelAlert,
	ListenerStartError:            LevelError,
	AioCreateError:                LevelError,
	AioReceiveError:               LevelError,
	AioContextError:               LevelError,
	AioSendError:                  LevelError,
	SealedEnvelopeOpenFailed:      LevelError,
	DecodingErrorInvalidEnvelope:  LevelError,
	EncodingErrorInvalidEnvelope:  LevelError,
	MessageErrorInvalidSignature:  LevelError,
	MessageErrorInvalidDigestLen:  LevelError,
	MessageErrorInvalidSessionLen: LevelError,
	MessageErrorDecryptionFailed:  LevelError,
	MessageErrorChecksumFailed:    LevelError,
}

// LevelOf returns the documented severity for a Code. Codes outside the
// closed table default to LevelError.
func LevelOf(c Code) Level {
	if l, ok := levelOf[c]; ok {
		return l
	}
	return LevelError
}

// names gives a short machine name per Code, used in RPCError's Error()
// string and in structured log fields.
var names = map[Code]string{
	AioContextChannelClosed:       "aio_context_channel_closed",
	AioContextAtMaxCapacity:       "aio_context_at_max_capacity",
	ListenerStartError:            "listener_start_error",
	AioCreateError:                "aio_create_error",
	AioReceiveError:               "aio_receive_error",
	AioContextError:               "aio_context_error",
	AioSendError:                  "aio_send_error",
	SealedEnvelopeOpenFailed:      "sealed_envelope_open_failed",
	DecodingErrorInvalidEnvelope:  "decoding_error_invalid_sealed_envelope",
	EncodingErrorInvalidEnvelope:  "encoding_error_invalid_sealed_envelope",
	MessageErrorInvalidSignature:  "message_error_invalid_signature",
	MessageErrorInvalidDigestLen:  "message_error_invalid_digest_length",
	MessageErrorInvalidSessionLen: "message_error_invalid_session_id_length",
	MessageErrorDecryptionFailed:  "message_error_decryption_failed",
	MessageErrorChecksumFailed:    "message_error_checksum_failed",
}

// String returns the machine name of c, or "unknown_error" if c is not in
// the closed table.
func (c Code) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return "unknown_error"
}
