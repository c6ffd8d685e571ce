package transport

import (
	"errors"
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/rep"
	"go.nanomsg.org/mangos/v3/protocol/req"
	_ "go.nanomsg.org/mangos/v3/transport/inproc"
	_ "go.nanomsg.org/mangos/v3/transport/tcp"
)

// Socket is the protocol-level handle the engines dial or listen on. It is
// satisfied by mangos's REQ socket (client side) or REP socket (server
// side).
type Socket interface {
	OpenContext() (Context, error)
	NewListener(url string) (Listener, error)
	NewDialer(url string) (Dialer, error)
	Close() error
}

// Context is a per-request transport context: one Send/Recv pair at a
// time, serialized by the caller's soft state machine.
type Context interface {
	Send(msg []byte) error
	Recv() ([]byte, error)
	Close() error
}

// Listener accepts inbound connections for a Socket.
type Listener interface {
	Start(nonBlocking bool) error
	Close() error
}

// Dialer establishes outbound connections for a Socket.
type Dialer interface {
	Start(nonBlocking bool) error
	Close() error
}

// SocketOptions configures reconnection and TTL behavior shared by both
// listener and dialer sockets.
type SocketOptions struct {
	ReconnectMinTime time.Duration
	ReconnectMaxTime time.Duration
	MaxTtl           int
}

// NewReqSocket opens a REQ-pattern socket for the client engine.
func NewReqSocket(opts SocketOptions) (Socket, error) {
	sock, err := req.NewSocket()
	if err != nil {
		return nil, err
	}
	if err := applySocketOptions(sock, opts); err != nil {
		sock.Close()
		return nil, err
	}
	return &mangosSocket{sock: sock}, nil
}

// NewRepSocket opens a REP-pattern socket for the server engine.
func NewRepSocket(opts SocketOptions) (Socket, error) {
	sock, err := rep.NewSocket()
	if err != nil {
		return nil, err
	}
	if err := applySocketOptions(sock, opts); err != nil {
		sock.Close()
		return nil, err
	}
	return &mangosSocket{sock: sock}, nil
}

func applySocketOptions(sock mangos.Socket, opts SocketOptions) error {
	if opts.ReconnectMinTime > 0 {
		if err := sock.SetOption(mangos.OptionReconnectTime, opts.ReconnectMinTime); err != nil {
			return err
		}
	}
	if opts.ReconnectMaxTime > 0 {
		if err := sock.SetOption(mangos.OptionMaxReconnectTime, opts.ReconnectMaxTime); err != nil {
			return err
		}
	}
	if opts.MaxTtl > 0 {
		if err := sock.SetOption(mangos.OptionTTL, opts.MaxTtl); err != nil {
			return err
		}
	}
	return nil
}

type mangosSocket struct {
	sock mangos.Socket
}

func (m *mangosSocket) OpenContext() (Context, error) {
	ctx, err := m.sock.OpenContext()
	if err != nil {
		return nil, err
	}
	return &mangosContext{ctx: ctx}, nil
}

// EndpointOptions configures the TCP-level behavior of a listener or
// dialer: no-delay and keep-alive flags, applied only when non-nil since
// the underlying transport may not support TCP options on every URL
// scheme.
type EndpointOptions struct {
	NoDelay   *bool
	KeepAlive *bool
}

func (m *mangosSocket) NewListener(url string) (Listener, error) {
	l, err := m.sock.NewListener(url, nil)
	if err != nil {
		return nil, err
	}
	return &mangosListener{l: l}, nil
}

func (m *mangosSocket) NewDialer(url string) (Dialer, error) {
	d, err := m.sock.NewDialer(url, nil)
	if err != nil {
		return nil, err
	}
	return &mangosDialer{d: d}, nil
}

func (m *mangosSocket) Close() error {
	return m.sock.Close()
}

type mangosContext struct {
	ctx mangos.Context
}

func (c *mangosContext) Send(msg []byte) error {
	return c.ctx.Send(msg)
}

func (c *mangosContext) Recv() ([]byte, error) {
	return c.ctx.Recv()
}

func (c *mangosContext) Close() error {
	return c.ctx.Close()
}

type mangosListener struct {
	l mangos.Listener
}

func (l *mangosListener) Start(nonBlocking bool) error {
	return l.l.Listen()
}

func (l *mangosListener) Close() error {
	return l.l.Close()
}

type mangosDialer struct {
	d mangos.Dialer
}

func (d *mangosDialer) Start(nonBlocking bool) error {
	if nonBlocking {
		return d.d.Dial()
	}
	return d.d.Dial()
}

func (d *mangosDialer) Close() error {
	return d.d.Close()
}

// IsClosed reports whether err indicates the underlying transport object
// was closed, the signal engines use to stop re-posting Recv and quiesce.
func IsClosed(err error) bool {
	return errors.Is(err, mangos.ErrClosed)
}

// ApplyRecvMaxSize sets the socket-level receive size cap, used to guard
// against a peer advertising an oversized message.
func ApplyRecvMaxSize(sock Socket, n int) error {
	ms, ok := sock.(*mangosSocket)
	if !ok || n <= 0 {
		return nil
	}
	return ms.sock.SetOption(mangos.OptionMaxRecvSize, n)
}

// ApplyListenerOptions sets TCP no-delay and keep-alive on a listener
// before it starts, when the underlying endpoint is TCP-based.
func ApplyListenerOptions(l Listener, opts EndpointOptions) error {
	ml, ok := l.(*mangosListener)
	if !ok {
		return nil
	}
	if opts.NoDelay != nil {
		if err := ml.l.SetOption(mangos.OptionNoDelay, *opts.NoDelay); err != nil {
			return err
		}
	}
	if opts.KeepAlive != nil {
		if err := ml.l.SetOption(mangos.OptionKeepAlive, *opts.KeepAlive); err != nil {
			return err
		}
	}
	return nil
}

// ApplyDialerOptions sets TCP no-delay and keep-alive on a dialer before it
// starts, when the underlying endpoint is TCP-based.
func ApplyDialerOptions(d Dialer, opts EndpointOptions) error {
	md, ok := d.(*mangosDialer)
	if !ok {
		return nil
	}
	if opts.NoDelay != nil {
		if err := md.d.SetOption(mangos.OptionNoDelay, *opts.NoDelay); err != nil {
			return err
		}
	}
	if opts.KeepAlive != nil {
		if err := md.d.SetOption(mangos.OptionKeepAlive, *opts.KeepAlive); err != nil {
			return err
		}
	}
	return nil
}
