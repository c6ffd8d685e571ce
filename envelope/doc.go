// Package envelope defines the framed message types exchanged between
// peers: an Address identifying a peer by its public key, the open and
// sealed envelope pair, and the signed-hash constructions used to prove a
// peer saw a given payload. It mirrors the way the crypto package's own
// doc.go separates type definitions from the operations that act on them —
// envelope types are data, sealing and opening are the only operations
// that transform one into the other.
package envelope
