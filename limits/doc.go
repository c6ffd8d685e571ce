// Package limits centralizes the wire-size constants and validation
// functions shared by the envelope, codec, and RPC engine packages, the way
// the Tox protocol's own size-limit package keeps those numbers in one
// place instead of scattering magic constants across callers.
package limits
