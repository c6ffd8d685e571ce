// Package rpcserver implements the server aio engine: a fixed pool of aio
// contexts, each driving a Recv-then-Send state machine against a
// user-supplied processor. The engine's only cooperative cancellation
// point is its stop channel; closing the listener afterwards causes
// in-flight contexts to observe a closed transport and quiesce.
package rpcserver
