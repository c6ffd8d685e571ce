package rpcerr

import "fmt"

// RPCError is the structured error value returned by every fallible
// operation in the core. It carries the operation name, the stable Code
// identifying the kind of failure, an optional peer address for context,
// and the underlying cause.
type RPCError struct {
	Op      string
	Code    Code
	Address string
	Err     error
}

// New constructs an RPCError. Address may be empty when no peer context
// applies.
func New(op string, code Code, address string, err error) *RPCError {
	return &RPCError{Op: op, Code: code, Address: address, Err: err}
}

func (e *RPCError) Error() string {
	if e.Address != "" {
		return fmt.Sprintf("%s: %s (peer %s): %v", e.Op, e.Code.String(), e.Address, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Code.String(), e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As chains.
func (e *RPCError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *RPCError with the same Code, allowing
// callers to match on error kind via errors.Is(err, rpcerr.New("", code,
// "", nil)) style sentinels, or more simply via the Code accessor.
func (e *RPCError) Is(target error) bool {
	other, ok := target.(*RPCError)
	if !ok {
		return false
	}
	return e.Code.Equal(other.Code)
}

// Level returns the severity this error should be logged at.
func (e *RPCError) Level() Level {
	return LevelOf(e.Code)
}
