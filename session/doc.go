// Package session implements SessionId, a ULID-based time-ordered
// identifier for a client-server conversation, and SignedSessionId, a
// detached-signature binding of a SessionId to a peer's long-term signing
// key. Time is obtained through an injectable TimeProvider so that the
// ULID timestamp component stays deterministic under test; the random
// component always comes from crypto/rand.
package session
