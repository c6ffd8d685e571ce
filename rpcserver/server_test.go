package rpcserver

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/securerpc/config"
	"github.com/opd-ai/securerpc/metrics"
	"github.com/opd-ai/securerpc/rpc"
	"github.com/opd-ai/securerpc/transport"
)

func echoFactory() rpc.ProcessorFactory {
	return rpc.FactoryFunc(func() rpc.Processor {
		return rpc.ProcessorFunc(func(req []byte) ([]byte, error) {
			out := make([]byte, len(req))
			copy(out, req)
			return out, nil
		})
	})
}

func sendOne(t *testing.T, reqSock transport.Socket, url string, payload []byte) []byte {
	t.Helper()

	dialer, err := reqSock.NewDialer(url)
	require.NoError(t, err)
	require.NoError(t, dialer.Start(false))
	defer dialer.Close()

	ctx, err := reqSock.OpenContext()
	require.NoError(t, err)
	defer ctx.Close()

	replyCh := make(chan []byte, 1)
	errCh := make(chan error, 1)
	var aio *transport.Aio
	aio = transport.NewAio(ctx, func(a *transport.Aio) {
		switch a.Op() {
		case transport.AioOpSend:
			if err := a.Result(); err != nil {
				errCh <- err
				return
			}
			aio.Recv()
		case transport.AioOpRecv:
			if err := a.Result(); err != nil {
				errCh <- err
				return
			}
			replyCh <- a.GetMsg()
		}
	})
	aio.Send(payload)

	select {
	case reply := <-replyCh:
		return reply
	case err := <-errCh:
		t.Fatalf("request failed: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reply")
	}
	return nil
}

func TestServerEchoesRequests(t *testing.T) {
	url := "inproc://rpcserver-test-echo"

	repSock, err := transport.NewRepSocket(transport.SocketOptions{})
	require.NoError(t, err)
	defer repSock.Close()

	reg := prometheus.NewRegistry()
	m := metrics.NewServerMetrics(reg)
	log, _ := test.NewNullLogger()

	stop := make(chan struct{})
	srv, err := Start(config.ListenerConfig{Url: url, AioContextCount: 2}, repSock, echoFactory(), stop, logrus.NewEntry(log), m)
	require.NoError(t, err)
	defer close(stop)

	reqSock, err := transport.NewReqSocket(transport.SocketOptions{})
	require.NoError(t, err)
	defer reqSock.Close()

	reply := sendOne(t, reqSock, url, []byte("hello"))
	require.Equal(t, []byte("hello"), reply)

	require.NotNil(t, srv)
}

func TestServerIsolatesProcessorPanics(t *testing.T) {
	url := "inproc://rpcserver-test-panic"

	repSock, err := transport.NewRepSocket(transport.SocketOptions{})
	require.NoError(t, err)
	defer repSock.Close()

	var calls int32
	factory := rpc.FactoryFunc(func() rpc.Processor {
		return rpc.ProcessorFunc(func(req []byte) ([]byte, error) {
			n := atomic.AddInt32(&calls, 1)
			if n == 1 {
				panic("boom")
			}
			return req, nil
		})
	})

	reg := prometheus.NewRegistry()
	m := metrics.NewServerMetrics(reg)
	log, _ := test.NewNullLogger()

	stop := make(chan struct{})
	_, err = Start(config.ListenerConfig{Url: url, AioContextCount: 1}, repSock, factory, stop, logrus.NewEntry(log), m)
	require.NoError(t, err)
	defer close(stop)

	reqSock, err := transport.NewReqSocket(transport.SocketOptions{})
	require.NoError(t, err)
	defer reqSock.Close()

	// First request panics inside the processor; the worker must recover
	// and keep servicing subsequent requests on the same context.
	first := sendOne(t, reqSock, url, []byte("first"))
	require.Empty(t, first)

	second := sendOne(t, reqSock, url, []byte("second"))
	require.Equal(t, []byte("second"), second)

	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestServerHandlesConcurrentRequestsAcrossContexts(t *testing.T) {
	url := "inproc://rpcserver-test-concurrent"

	repSock, err := transport.NewRepSocket(transport.SocketOptions{})
	require.NoError(t, err)
	defer repSock.Close()

	factory := rpc.FactoryFunc(func() rpc.Processor {
		return rpc.ProcessorFunc(func(req []byte) ([]byte, error) {
			time.Sleep(20 * time.Millisecond)
			return req, nil
		})
	})

	reg := prometheus.NewRegistry()
	m := metrics.NewServerMetrics(reg)
	log, _ := test.NewNullLogger()

	stop := make(chan struct{})
	_, err = Start(config.ListenerConfig{Url: url, AioContextCount: 4}, repSock, factory, stop, logrus.NewEntry(log), m)
	require.NoError(t, err)
	defer close(stop)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reqSock, err := transport.NewReqSocket(transport.SocketOptions{})
			require.NoError(t, err)
			defer reqSock.Close()
			payload := []byte(fmt.Sprintf("req-%d", i))
			reply := sendOne(t, reqSock, url, payload)
			require.Equal(t, payload, reply)
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("concurrent requests did not all complete in time, contexts may be serialized")
	}
}

func TestServerStopAfterStopSignalDoesNotPanic(t *testing.T) {
	url := "inproc://rpcserver-test-stop"

	repSock, err := transport.NewRepSocket(transport.SocketOptions{})
	require.NoError(t, err)
	defer repSock.Close()

	reg := prometheus.NewRegistry()
	m := metrics.NewServerMetrics(reg)
	log, _ := test.NewNullLogger()

	stop := make(chan struct{})
	srv, err := Start(config.ListenerConfig{Url: url, AioContextCount: 1}, repSock, echoFactory(), stop, logrus.NewEntry(log), m)
	require.NoError(t, err)

	close(stop)
	time.Sleep(50 * time.Millisecond)

	require.NotPanics(t, func() {
		srv.Stop()
	})
}
