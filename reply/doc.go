// Package reply defines Handler, the universal callback surface the
// client engine invokes at most once per request, and Channel, a
// built-in adapter that delivers replies onto a bounded channel under a
// configurable full-channel policy.
package reply
