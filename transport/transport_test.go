package transport

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReqRepEchoOverInproc(t *testing.T) {
	url := "inproc://transport-test-echo"

	repSock, err := NewRepSocket(SocketOptions{})
	require.NoError(t, err)
	defer repSock.Close()

	listener, err := repSock.NewListener(url)
	require.NoError(t, err)
	require.NoError(t, listener.Start(false))

	reqSock, err := NewReqSocket(SocketOptions{})
	require.NoError(t, err)
	defer reqSock.Close()

	dialer, err := reqSock.NewDialer(url)
	require.NoError(t, err)
	require.NoError(t, dialer.Start(false))

	serverCtx, err := repSock.OpenContext()
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	var serverAio *Aio
	serverAio = NewAio(serverCtx, func(a *Aio) {
		switch a.Op() {
		case AioOpRecv:
			require.NoError(t, a.Result())
			serverAio.Send(a.GetMsg())
		case AioOpSend:
			require.NoError(t, a.Result())
			wg.Done()
		}
	})
	serverAio.Recv()

	clientCtx, err := reqSock.OpenContext()
	require.NoError(t, err)

	replyCh := make(chan []byte, 1)
	var clientAio *Aio
	clientAio = NewAio(clientCtx, func(a *Aio) {
		switch a.Op() {
		case AioOpSend:
			require.NoError(t, a.Result())
			clientAio.Recv()
		case AioOpRecv:
			require.NoError(t, a.Result())
			replyCh <- a.GetMsg()
		}
	})
	clientAio.Send([]byte("ping"))

	select {
	case reply := <-replyCh:
		require.Equal(t, []byte("ping"), reply)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for echo reply")
	}

	wg.Wait()
}
