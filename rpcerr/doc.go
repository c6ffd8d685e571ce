// Package rpcerr defines the stable error identities used across the
// envelope, codec, and RPC engine packages. Each kind carries a 128-bit
// constant identifier and a severity level, mirroring the way the Tox
// protocol's net package wraps every failure in a single typed error
// carrying an operation name and a cause, except identities here are
// drawn from a closed, compile-time table rather than strings.
package rpcerr
