package grpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

func TestPoolReusesConnection(t *testing.T) {
	p := NewPool()
	defer p.Close()

	a, err := p.GetConnection("passthrough:///localhost:50051")
	require.NoError(t, err)
	b, err := p.GetConnection("passthrough:///localhost:50051")
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := p.GetConnection("passthrough:///localhost:50052")
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, p.Len())
}

func TestPoolReplacesClosedConnection(t *testing.T) {
	p := NewPool()
	defer p.Close()

	a, err := p.GetConnection("passthrough:///localhost:50051")
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := p.GetConnection("passthrough:///localhost:50051")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Equal(t, 1, p.Len())
}

func TestPoolClose(t *testing.T) {
	noop := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		return invoker(ctx, method, req, reply, cc, opts...)
	}
	p := NewPool(WithInterceptor(noop), WithKeepalive(DefaultKeepalive))

	_, err := p.GetConnection("passthrough:///localhost:50051")
	require.NoError(t, err)
	require.NoError(t, p.Close())
	assert.Equal(t, 0, p.Len())
}
