package rpcserver

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/securerpc/config"
	"github.com/opd-ai/securerpc/metrics"
	"github.com/opd-ai/securerpc/rpc"
	"github.com/opd-ai/securerpc/rpcerr"
	"github.com/opd-ai/securerpc/transport"
)

// Server owns the listener and the pool of aio contexts started by Start.
// Closing it via Stop ceases listening and lets in-flight contexts
// observe a closed transport and quiesce.
type Server struct {
	listener transport.Listener
	contexts []transport.Context
	log      *logrus.Entry
}

// Stop closes the listener and every aio context the engine owns.
func (s *Server) Stop() {
	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			s.log.WithError(err).Warn("error closing listener")
		}
	}
	for _, ctx := range s.contexts {
		if err := ctx.Close(); err != nil {
			s.log.WithError(err).Warn("error closing aio context")
		}
	}
}

// Start constructs listenerCfg.AioContextCount transport contexts on
// socket, binds the listener, posts the initial Recv on each context, and
// spawns a goroutine that calls Stop when stopSignal fires. It returns
// immediately with the running Server.
func Start(listenerCfg config.ListenerConfig, socket transport.Socket, factory rpc.ProcessorFactory, stopSignal <-chan struct{}, log *logrus.Entry, m *metrics.ServerMetrics) (*Server, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	if err := transport.ApplyRecvMaxSize(socket, listenerCfg.RecvMaxSize); err != nil {
		return nil, rpcerr.New("rpcserver.start", rpcerr.ListenerStartError, listenerCfg.Url, err)
	}

	listener, err := socket.NewListener(listenerCfg.Url)
	if err != nil {
		return nil, rpcerr.New("rpcserver.start", rpcerr.ListenerStartError, listenerCfg.Url, err)
	}
	if err := transport.ApplyListenerOptions(listener, transport.EndpointOptions{
		NoDelay:   listenerCfg.NoDelay,
		KeepAlive: listenerCfg.KeepAlive,
	}); err != nil {
		return nil, rpcerr.New("rpcserver.start", rpcerr.ListenerStartError, listenerCfg.Url, err)
	}

	count := listenerCfg.AioContextCount
	if count < 1 {
		count = 1
	}

	s := &Server{listener: listener, log: log}
	workers := make([]*worker, 0, count)

	for i := 0; i < count; i++ {
		ctx, err := socket.OpenContext()
		if err != nil {
			s.Stop()
			return nil, rpcerr.New("rpcserver.start", rpcerr.AioCreateError, listenerCfg.Url, err)
		}
		s.contexts = append(s.contexts, ctx)

		w := &worker{
			processor: factory.NewProcessor(),
			log:       log.WithField("worker", i),
			metrics:   m,
		}
		w.aio = transport.NewAio(ctx, w.onEvent)
		workers = append(workers, w)
	}

	if err := listener.Start(listenerCfg.NonBlocking); err != nil {
		s.Stop()
		return nil, rpcerr.New("rpcserver.start", rpcerr.ListenerStartError, listenerCfg.Url, err)
	}

	for _, w := range workers {
		w.aio.Recv()
	}

	if stopSignal != nil {
		go func() {
			<-stopSignal
			log.Info("stop signal received, closing listener and aio contexts")
			s.Stop()
		}()
	}

	return s, nil
}

// worker owns one aio context's Recv<->Send state machine and its
// processor instance. Processors are never shared across workers.
type worker struct {
	aio       *transport.Aio
	processor rpc.Processor
	log       *logrus.Entry
	metrics   *metrics.ServerMetrics
}

func (w *worker) onEvent(a *transport.Aio) {
	switch a.Op() {
	case transport.AioOpRecv:
		w.onRecv(a)
	case transport.AioOpSend:
		w.onSend(a)
	}
}

func (w *worker) onRecv(a *transport.Aio) {
	err := a.Result()
	if err != nil {
		if transport.IsClosed(err) {
			w.log.Info("transport closed, exiting recv loop")
			return
		}
		w.log.WithError(err).Error(rpcerr.New("rpcserver.recv", rpcerr.AioReceiveError, "", err).Error())
		if w.metrics != nil {
			w.metrics.RecvErrors.Inc()
		}
		a.Recv()
		return
	}

	msg := a.GetMsg()
	if len(msg) == 0 {
		w.log.Error("recv completed with no message")
		a.Recv()
		return
	}

	reply := w.safeProcess(msg)
	a.Send(reply)
}

func (w *worker) onSend(a *transport.Aio) {
	if err := a.Result(); err != nil {
		w.log.WithError(err).Error(rpcerr.New("rpcserver.send", rpcerr.AioSendError, "", err).Error())
		if w.metrics != nil {
			w.metrics.SendErrors.Inc()
		}
	} else if w.metrics != nil {
		w.metrics.RequestsProcessed.Inc()
	}
	a.Recv()
}

// safeProcess isolates a processor panic to this worker; the worker
// returns to Recv on the next cycle regardless.
func (w *worker) safeProcess(request []byte) (reply []byte) {
	defer func() {
		if r := recover(); r != nil {
			w.log.WithField("panic", fmt.Sprint(r)).Error("processor panicked, isolating to this worker")
			if w.metrics != nil {
				w.metrics.ProcessorPanics.Inc()
			}
			reply = nil
		}
	}()

	result, err := w.processor.Process(request)
	if err != nil {
		w.log.WithError(err).Error("processor returned error")
		if w.metrics != nil {
			w.metrics.ProcessorErrors.Inc()
		}
		return nil
	}
	return result
}
