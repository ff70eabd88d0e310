package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/adapter/out/memory"
	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/clock"
	grpcpool "github.com/JoeShih716/go-bank-ledger/pkg/grpc"
	pb "github.com/JoeShih716/go-bank-ledger/proto"
)

type testEnv struct {
	client  *Client
	raw     pb.LedgerServiceClient
	clock   *clock.Manual
	metrics *Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := memory.NewStore(nil)
	require.NoError(t, err)
	clk := clock.NewManual(time.UnixMilli(1_700_000_000_000).UTC())
	logger := zaptest.NewLogger(t)
	ledger := usecase.NewLedgerService(store, clk, usecase.WithLogger(logger))

	metrics := NewMetrics(prometheus.NewRegistry())
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(
		LoggingInterceptor(logger),
		metrics.UnaryServerInterceptor(),
	))
	pb.RegisterLedgerServiceServer(server, NewGrpcServer(ledger, logger))

	lis := bufconn.Listen(1 << 20)
	go func() {
		_ = server.Serve(lis)
	}()

	pool := grpcpool.NewPool(grpcpool.WithDialOptions(
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	))
	conn, err := pool.GetConnection("passthrough:///bufnet")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = pool.Close()
		server.Stop()
	})
	return &testEnv{client: NewClient(conn), raw: pb.NewLedgerServiceClient(conn), clock: clk, metrics: metrics}
}

func TestLedgerServiceEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	opened, err := env.client.OpenAccount(ctx, "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "1234567890", opened.AccountNumber)
	assert.True(t, opened.Balance.IsZero())
	assert.Equal(t, int64(1), opened.Version)

	env.clock.Advance(time.Second)
	deposited, err := env.client.Deposit(ctx, "1234567890", decimal.NewFromInt(200), "X")
	require.NoError(t, err)
	require.True(t, deposited.Valid)
	assert.Equal(t, "200", deposited.Decimal.String())

	env.clock.Advance(time.Second)
	withdrawn, err := env.client.Withdraw(ctx, "1234567890", decimal.NewFromInt(100), "Y")
	require.NoError(t, err)
	require.True(t, withdrawn.Valid)
	assert.Equal(t, "100", withdrawn.Decimal.String())

	account, err := env.client.GetAccount(ctx, "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "100", account.Balance.String())
	assert.Equal(t, int64(3), account.Version)
	assert.Equal(t, "Y", account.Description)

	all, err := env.client.ListTransactions(ctx, "1234567890", nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "200", all[0].Amount.String())
	assert.Equal(t, "X", all[0].Description)
	assert.Equal(t, "-100", all[1].Amount.String())
	assert.Equal(t, "Y", all[1].Description)
	assert.Equal(t, time.UnixMilli(1_700_000_002_000).UTC(), all[1].Timestamp)

	start := all[1].Timestamp
	stop := start
	ranged, err := env.client.ListTransactions(ctx, "1234567890", &start, &stop)
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, all[1].ID, ranged[0].ID)

	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.requests.WithLabelValues(pb.LedgerService_Deposit_FullMethodName, codes.OK.String())))
}

func TestLedgerServiceDecimalStrings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.raw.OpenAccount(ctx, &pb.AccountRequest{AccountNumber: "a"})
	require.NoError(t, err)

	resp, err := env.raw.Deposit(ctx, &pb.PostingRequest{AccountNumber: "a", Amount: "0.1", Description: "X"})
	require.NoError(t, err)
	resp, err = env.raw.Deposit(ctx, &pb.PostingRequest{AccountNumber: "a", Amount: "0.2", Description: "X"})
	require.NoError(t, err)
	assert.Equal(t, "0.3", resp.GetBalance())

	_, err = env.raw.Deposit(ctx, &pb.PostingRequest{AccountNumber: "a", Amount: "ten"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	account, err := env.raw.GetAccount(ctx, &pb.AccountRequest{AccountNumber: "a"})
	require.NoError(t, err)
	assert.Equal(t, "0.3", account.GetBalance())
	assert.Equal(t, int64(3), account.GetVersion())
	assert.Equal(t, "X", account.GetDescription())
}

func TestLedgerServiceErrorCodes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.client.OpenAccount(ctx, "a")
	require.NoError(t, err)

	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{"unknown account", func() error {
			_, err := env.client.GetAccount(ctx, "missing")
			return err
		}, codes.NotFound},
		{"empty account number", func() error {
			_, err := env.client.OpenAccount(ctx, "")
			return err
		}, codes.InvalidArgument},
		{"non-positive amount", func() error {
			_, err := env.client.Deposit(ctx, "a", decimal.Zero, "")
			return err
		}, codes.InvalidArgument},
		{"overdraft", func() error {
			_, err := env.client.Withdraw(ctx, "a", decimal.NewFromInt(1), "")
			return err
		}, codes.FailedPrecondition},
		{"reopen", func() error {
			_, err := env.client.OpenAccount(ctx, "a")
			return err
		}, codes.Aborted},
		{"half-open range", func() error {
			start := time.Now()
			_, err := env.client.ListTransactions(ctx, "a", &start, nil)
			return err
		}, codes.InvalidArgument},
		{"invalid timestamp", func() error {
			_, err := env.raw.ListTransactions(ctx, &pb.ListTransactionsRequest{
				AccountNumber: "a",
				Start:         &timestamppb.Timestamp{Seconds: 1, Nanos: -1},
				Stop:          timestamppb.Now(),
			})
			return err
		}, codes.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Equal(t, tt.want, status.Code(err))
		})
	}
}

func TestToStatus(t *testing.T) {
	assert.Equal(t, codes.NotFound, status.Code(toStatus(domain.ErrAccountNotFound)))
	assert.Equal(t, codes.Internal, status.Code(toStatus(domain.ErrWALWriteFailed)))
	assert.Equal(t, codes.DeadlineExceeded, status.Code(toStatus(context.DeadlineExceeded)))
}
