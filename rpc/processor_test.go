package rpc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessorFuncEchoes(t *testing.T) {
	var p Processor = ProcessorFunc(func(request []byte) ([]byte, error) {
		return bytes.ToUpper(request), nil
	})

	reply, err := p.Process([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, []byte("HELLO"), reply)
}

func TestFactoryFuncProducesIndependentProcessors(t *testing.T) {
	factory := FactoryFunc(func() Processor {
		count := 0
		return ProcessorFunc(func(request []byte) ([]byte, error) {
			count++
			return []byte{byte(count)}, nil
		})
	})

	p1 := factory.NewProcessor()
	p2 := factory.NewProcessor()

	r1, err := p1.Process(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{1}, r1)

	r2, err := p2.Process(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{1}, r2, "a freshly created processor starts its own state")

	r1again, err := p1.Process(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{2}, r1again)
}
