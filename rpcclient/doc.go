// Package rpcclient implements the client aio engine: a dialer-backed
// socket, a ticket-bounded capacity budget, and a registry task that owns
// the map of in-flight aio contexts. Each request allocates a fresh aio
// context, drives it through a Send-then-Recv state machine, and returns
// its ticket exactly once regardless of how the request concludes.
package rpcclient
