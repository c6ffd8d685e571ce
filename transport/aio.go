package transport

import "sync"

// AioOp identifies which operation an Aio's last cycle performed.
type AioOp int

const (
	// AioOpSend marks a completed Send.
	AioOpSend AioOp = iota
	// AioOpRecv marks a completed Recv.
	AioOpRecv
)

// Aio pairs a Context with a completion callback, recreating the
// nng-style async handle the engines are built around on top of mangos's
// synchronous Context. Each Send or Recv call runs on its own goroutine;
// when it completes, the callback is invoked with the Aio so it can
// inspect Result and GetMsg.
type Aio struct {
	ctx Context
	cb  func(*Aio)

	mu     sync.Mutex
	op     AioOp
	result error
	msg    []byte
}

// NewAio constructs an Aio bound to ctx. The callback is invoked once per
// completed Send or Recv; it must not block.
func NewAio(ctx Context, cb func(*Aio)) *Aio {
	return &Aio{ctx: ctx, cb: cb}
}

// Send issues an asynchronous send on the bound context. The callback
// fires from a new goroutine once the send completes or fails.
func (a *Aio) Send(msg []byte) {
	go func() {
		err := a.ctx.Send(msg)
		a.mu.Lock()
		a.op = AioOpSend
		a.result = err
		a.msg = nil
		a.mu.Unlock()
		a.cb(a)
	}()
}

// Recv issues an asynchronous receive on the bound context. The callback
// fires from a new goroutine once a message arrives or the receive fails.
func (a *Aio) Recv() {
	go func() {
		msg, err := a.ctx.Recv()
		a.mu.Lock()
		a.op = AioOpRecv
		a.result = err
		a.msg = msg
		a.mu.Unlock()
		a.cb(a)
	}()
}

// Result returns the error, if any, from the most recently completed
// operation.
func (a *Aio) Result() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result
}

// GetMsg returns the message received by the most recently completed Recv.
// It is nil after a Send.
func (a *Aio) GetMsg() []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.msg
}

// Op reports which operation the most recent callback invocation
// corresponds to.
func (a *Aio) Op() AioOp {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.op
}

// Cancel closes the underlying context, which unblocks any in-flight Send
// or Recv with an error on its next callback invocation. mangos contexts
// have no finer-grained per-operation cancellation.
func (a *Aio) Cancel() error {
	return a.ctx.Close()
}

// Context returns the bound transport context.
func (a *Aio) Context() Context {
	return a.ctx
}
