package rpcclient

import "sync/atomic"

// ContextId identifies one in-flight aio context in the registry. It is a
// process-local monotonic counter, not tied to any transport-level
// identity, so allocation never contends with the registry task.
type ContextId uint64

var nextContextId uint64

// newContextId returns a fresh, never-repeating ContextId.
func newContextId() ContextId {
	return ContextId(atomic.AddUint64(&nextContextId, 1))
}
