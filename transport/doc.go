// Package transport is the seam between the RPC engines and the
// underlying message-transport library. It exposes Socket, Listener,
// Dialer, Context, and Aio — the primitives the server and client engines
// consume — backed by go.nanomsg.org/mangos/v3's REQ/REP sockets. Neither
// rpcserver nor rpcclient import mangos directly; they depend only on the
// interfaces declared here, the way the crypto package hides NaCl behind
// its own keypair and sealing types.
//
// mangos contexts are synchronous: Send and Recv block the calling
// goroutine. Aio recreates the completion-callback shape the engines are
// built around by running each Send/Recv on its own goroutine and invoking
// the supplied callback when it completes.
package transport
