package session

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
)

// Size is the serialized length of a SessionId in bytes: 48 bits of
// millisecond timestamp followed by 80 bits of randomness.
const Size = 16

// SessionId is a 128-bit lexicographically sortable time-ordered
// identifier, one per connection from the server's perspective.
type SessionId struct {
	id ulid.ULID
}

// NewSessionId generates a fresh SessionId using the given TimeProvider for
// its timestamp component and a CSPRNG for its randomness component.
func NewSessionId(tp TimeProvider) (SessionId, error) {
	if tp == nil {
		tp = DefaultTimeProvider{}
	}
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(tp.Now()), entropy)
	if err != nil {
		return SessionId{}, fmt.Errorf("session: generate id: %w", err)
	}
	return SessionId{id: id}, nil
}

// SessionIdFromBytes parses a 16-byte serialized SessionId.
func SessionIdFromBytes(b []byte) (SessionId, error) {
	if len(b) != Size {
		return SessionId{}, errors.New("session: invalid session id length")
	}
	var id ulid.ULID
	copy(id[:], b)
	return SessionId{id: id}, nil
}

// Bytes returns the 16-byte serialized form.
func (s SessionId) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, s.id[:])
	return b
}

// String renders the SessionId in Crockford-base32 display form.
func (s SessionId) String() string {
	return s.id.String()
}

// Equal reports whether two SessionIds are identical.
func (s SessionId) Equal(other SessionId) bool {
	return s.id == other.id
}
