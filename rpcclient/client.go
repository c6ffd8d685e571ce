package rpcclient

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/securerpc/config"
	"github.com/opd-ai/securerpc/metrics"
	"github.com/opd-ai/securerpc/reply"
	"github.com/opd-ai/securerpc/rpcerr"
	"github.com/opd-ai/securerpc/transport"
)

// Builder assembles an AsyncClient from dialer and socket settings,
// mirroring the server engine's plain-struct configuration but exposed
// as a fluent constructor since a client is built once per dial target.
type Builder struct {
	dialerCfg config.DialerConfig
	socketCfg config.SocketConfig
	log       *logrus.Entry
	metrics   *metrics.ClientMetrics
}

// NewBuilder starts a Builder for the given dialer settings.
func NewBuilder(dialerCfg config.DialerConfig) *Builder {
	return &Builder{dialerCfg: dialerCfg}
}

// SocketSettings attaches reconnect/TTL options shared by the socket.
func (b *Builder) SocketSettings(socketCfg config.SocketConfig) *Builder {
	b.socketCfg = socketCfg
	return b
}

// Logger attaches a logger; Build uses a bare logrus entry if omitted.
func (b *Builder) Logger(log *logrus.Entry) *Builder {
	b.log = log
	return b
}

// Metrics attaches a ClientMetrics; Build runs without metrics if omitted.
func (b *Builder) Metrics(m *metrics.ClientMetrics) *Builder {
	b.metrics = m
	return b
}

// Build opens a REQ socket, starts the dialer, pre-fills the ticket
// channel to the configured capacity, and starts the registry task.
func (b *Builder) Build() (*AsyncClient, error) {
	if err := b.dialerCfg.Validate(); err != nil {
		return nil, err
	}
	log := b.log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	sock, err := transport.NewReqSocket(transport.SocketOptions{
		ReconnectMinTime: b.socketCfg.ReconnectMinTime,
		ReconnectMaxTime: b.socketCfg.ReconnectMaxTime,
		MaxTtl:           b.socketCfg.MaxTtl,
	})
	if err != nil {
		return nil, rpcerr.New("rpcclient.build", rpcerr.AioCreateError, b.dialerCfg.Url, err)
	}
	if err := transport.ApplyRecvMaxSize(sock, b.dialerCfg.RecvMaxSize); err != nil {
		sock.Close()
		return nil, rpcerr.New("rpcclient.build", rpcerr.AioCreateError, b.dialerCfg.Url, err)
	}

	dialer, err := sock.NewDialer(b.dialerCfg.Url)
	if err != nil {
		sock.Close()
		return nil, rpcerr.New("rpcclient.build", rpcerr.ListenerStartError, b.dialerCfg.Url, err)
	}
	if err := transport.ApplyDialerOptions(dialer, transport.EndpointOptions{
		NoDelay:   b.dialerCfg.NoDelay,
		KeepAlive: b.dialerCfg.KeepAlive,
	}); err != nil {
		sock.Close()
		return nil, rpcerr.New("rpcclient.build", rpcerr.ListenerStartError, b.dialerCfg.Url, err)
	}
	if err := dialer.Start(b.dialerCfg.NonBlocking); err != nil {
		sock.Close()
		return nil, rpcerr.New("rpcclient.build", rpcerr.ListenerStartError, b.dialerCfg.Url, err)
	}

	capacity := b.dialerCfg.MaxConcurrentRequestCapacity
	if capacity < 1 {
		capacity = 1
	}
	tickets := make(chan struct{}, capacity)
	for i := 0; i < capacity; i++ {
		tickets <- struct{}{}
	}

	c := &AsyncClient{
		socket:   sock,
		dialer:   dialer,
		tickets:  tickets,
		capacity: capacity,
		reg:      newRegistry(2 * capacity),
		log:      log,
		metrics:  b.metrics,
	}
	c.setTicketGauge()
	return c, nil
}

// AsyncClient multiplexes requests over a single REQ socket, bounded by a
// ticket channel sized to max_concurrent_request_capacity. Each request
// owns a dedicated aio context for its lifetime.
type AsyncClient struct {
	socket   transport.Socket
	dialer   transport.Dialer
	tickets  chan struct{}
	capacity int
	reg      *registry
	log      *logrus.Entry
	metrics  *metrics.ClientMetrics

	registered int64
	closeOnce  sync.Once
}

type clientState int

const (
	csIdle clientState = iota
	csSend
	csRecv
	csDone
)

// contextState is the single mutex-protected soft state machine for one
// request's aio context, transitioning Idle -> Send -> Recv -> Done.
type contextState struct {
	mu    sync.Mutex
	state clientState
}

func (s *contextState) transition(to clientState) {
	s.mu.Lock()
	s.state = to
	s.mu.Unlock()
}

func (s *contextState) get() clientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// markDone transitions to Done and reports whether this call performed
// the transition, so finalize runs its cleanup exactly once.
func (s *contextState) markDone() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == csDone {
		return false
	}
	s.state = csDone
	return true
}

// SendWithCallback submits req and returns immediately. handler.OnReply is
// invoked at most once, from a goroutine, with either the reply or an
// error; a request whose send or receive never completes never invokes
// it. It fails fast with AioContextAtMaxCapacity when no ticket is
// available; no aio resources are allocated on that path.
func (c *AsyncClient) SendWithCallback(req []byte, handler reply.Handler) error {
	select {
	case <-c.tickets:
	default:
		if c.metrics != nil {
			c.metrics.CapacityRejections.Inc()
		}
		return rpcerr.New("rpcclient.send", rpcerr.AioContextAtMaxCapacity, "", nil)
	}
	c.setTicketGauge()

	ctx, err := c.socket.OpenContext()
	if err != nil {
		c.returnTicket()
		return rpcerr.New("rpcclient.send", rpcerr.AioCreateError, "", err)
	}

	id := newContextId()
	state := &contextState{}

	var aio *transport.Aio
	aio = transport.NewAio(ctx, func(a *transport.Aio) {
		c.onEvent(id, state, ctx, aio, handler, a)
	})

	if err := c.reg.Insert(id, contextEntry{aio: aio, ctx: ctx}); err != nil {
		c.returnTicket()
		ctx.Close()
		return rpcerr.New("rpcclient.send", rpcerr.AioContextChannelClosed, "", err)
	}
	atomic.AddInt64(&c.registered, 1)
	c.setContextGauge()

	if c.metrics != nil {
		c.metrics.RequestsSubmitted.Inc()
	}
	state.transition(csSend)
	aio.Send(req)
	return nil
}

func (c *AsyncClient) onEvent(id ContextId, state *contextState, ctx transport.Context, aio *transport.Aio, handler reply.Handler, a *transport.Aio) {
	switch a.Op() {
	case transport.AioOpSend:
		if err := a.Result(); err != nil {
			// This transport's Aio.Send reports every outcome, success or
			// failure, through this same callback, so a send failure is
			// observed exactly like a receive failure and classified the
			// same way. AioSendError is reserved for a synchronous failure
			// returned directly from Send before any registration happens,
			// which this transport cannot produce.
			c.finish(id, ctx, state)
			c.deliver(handler, reply.Result{Err: rpcerr.New("rpcclient.send", rpcerr.AioReceiveError, "", err)})
			return
		}
		state.transition(csRecv)
		aio.Recv()

	case transport.AioOpRecv:
		if err := a.Result(); err != nil {
			c.finish(id, ctx, state)
			c.deliver(handler, reply.Result{Err: rpcerr.New("rpcclient.recv", rpcerr.AioReceiveError, "", err)})
			return
		}
		if state.get() != csRecv {
			c.log.Warn("spurious aio completion observed outside Recv state")
			return
		}
		msg := a.GetMsg()
		c.finish(id, ctx, state)
		c.deliver(handler, reply.Result{Msg: msg})
	}
}

// deliver isolates a panicking callback to this goroutine, matching the
// server's processor panic isolation.
func (c *AsyncClient) deliver(handler reply.Handler, result reply.Result) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithField("panic", r).Error("reply handler panicked")
		}
	}()
	if c.metrics != nil {
		if result.Err != nil {
			c.metrics.RequestsFailed.Inc()
		} else {
			c.metrics.RequestsSucceeded.Inc()
		}
	}
	handler.OnReply(result)
}

// finish closes the aio context, removes it from the registry, and
// returns its ticket. It is idempotent: only the first caller for a given
// request performs the work.
func (c *AsyncClient) finish(id ContextId, ctx transport.Context, state *contextState) {
	if !state.markDone() {
		return
	}
	if err := ctx.Close(); err != nil {
		c.log.WithError(err).Warn("error closing client aio context")
	}
	if err := c.reg.Remove(id); err != nil {
		c.log.WithError(err).Warn("registry already exited, continuing close")
	} else {
		atomic.AddInt64(&c.registered, -1)
		c.setContextGauge()
	}
	c.returnTicket()
}

func (c *AsyncClient) returnTicket() {
	select {
	case c.tickets <- struct{}{}:
	default:
		c.log.Error("ticket channel at capacity on return, this indicates a double-return")
	}
	c.setTicketGauge()
}

func (c *AsyncClient) setTicketGauge() {
	if c.metrics != nil {
		c.metrics.TicketsAvailable.Set(float64(len(c.tickets)))
	}
}

func (c *AsyncClient) setContextGauge() {
	if c.metrics != nil {
		c.metrics.ContextsRegistered.Set(float64(atomic.LoadInt64(&c.registered)))
	}
}

// MaxCapacity returns the configured max_concurrent_request_capacity.
func (c *AsyncClient) MaxCapacity() int {
	return c.capacity
}

// AvailableCapacity returns the number of unused tickets.
func (c *AsyncClient) AvailableCapacity() int {
	return len(c.tickets)
}

// UsedCapacity returns max_capacity - available_capacity.
func (c *AsyncClient) UsedCapacity() int {
	return c.capacity - c.AvailableCapacity()
}

// ContextCount queries the registry task for the number of in-flight
// requests. It blocks on a one-shot reply from the registry task.
func (c *AsyncClient) ContextCount() (int, error) {
	return c.reg.Count()
}

// Close stops the registry task and tears down the dialer and socket.
// Safe to call more than once; subsequent calls are no-ops.
func (c *AsyncClient) Close() error {
	var closeErr error
	c.closeOnce.Do(func() {
		c.reg.Stop()
		if err := c.dialer.Close(); err != nil {
			closeErr = err
		}
		if err := c.socket.Close(); err != nil && closeErr == nil {
			closeErr = err
		}
	})
	return closeErr
}
