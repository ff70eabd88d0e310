package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpc_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/ledger/adapter/in/grpc"
	memory_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/ledger/adapter/out/memory"
	mysql_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/ledger/adapter/out/mysql"
	postgres_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/ledger/adapter/out/postgres"
	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/usecase"
	"github.com/JoeShih716/go-bank-ledger/internal/config"
	"github.com/JoeShih716/go-bank-ledger/pkg/clock"
	"github.com/JoeShih716/go-bank-ledger/pkg/logger"
	"github.com/JoeShih716/go-bank-ledger/pkg/mysql"
	"github.com/JoeShih716/go-bank-ledger/pkg/postgres"
	"github.com/JoeShih716/go-bank-ledger/pkg/wal"
	pb "github.com/JoeShih716/go-bank-ledger/proto"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gRPC ledger server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 1. 載入設定
	cfg, err := config.Load(configPath, envPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. 初始化 Store
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("failed to close store", zap.Error(err))
		}
	}()

	// 3. 初始化 UseCase 與 gRPC Adapter
	ledger := usecase.NewLedgerService(store, clock.System{}, usecase.WithLogger(log))
	metrics := grpc_adapter.NewMetrics(prometheus.DefaultRegisterer)
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(
		grpc_adapter.LoggingInterceptor(log),
		metrics.UnaryServerInterceptor(),
	))
	pb.RegisterLedgerServiceServer(server, grpc_adapter.NewGrpcServer(ledger, log))
	reflection.Register(server) // 方便 grpcurl 等工具測試

	// 4. 啟動 gRPC Server 與 /metrics
	lis, err := net.Listen("tcp", cfg.Server.GrpcAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.GrpcAddr, err)
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("starting gRPC server", zap.String("addr", cfg.Server.GrpcAddr), zap.String("store", cfg.Store.Driver))
		if err := server.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	var metricsServer *http.Server
	if cfg.Server.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:              cfg.Server.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("starting metrics server", zap.String("addr", cfg.Server.MetricsAddr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	// 5. Graceful Shutdown
	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down server")
	case serveErr = <-errCh:
		log.Error("server stopped unexpectedly", zap.Error(serveErr))
	}

	server.GracefulStop()
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("failed to shut down metrics server", zap.Error(err))
		}
	}
	log.Info("server exited")
	return serveErr
}

// openStore 依設定建立 Store，回傳的 close 函數負責釋放底層資源
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (usecase.Store, func() error, error) {
	switch cfg.Store.Driver {
	case config.DriverMySQL:
		client, err := mysql.NewClient(ctx, cfg.MySQL, log)
		if err != nil {
			return nil, nil, err
		}
		store := mysql_adapter.NewStore(client)
		if err := store.AutoMigrate(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		log.Info("connected to MySQL", zap.String("host", cfg.MySQL.Host))
		return store, client.Close, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		store := postgres_adapter.NewStore(pool)
		if err := store.CreateSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("connected to PostgreSQL", zap.String("host", cfg.Postgres.Host))
		return store, func() error { pool.Close(); return nil }, nil

	default:
		var w *wal.WAL
		if cfg.Store.WALPath != "" {
			var err error
			if w, err = wal.NewWAL(cfg.Store.WALPath); err != nil {
				return nil, nil, fmt.Errorf("failed to init WAL: %w", err)
			}
		}
		store, err := memory_adapter.NewStore(w)
		if err != nil {
			if w != nil {
				_ = w.Close()
			}
			return nil, nil, err
		}
		log.Info("loaded accounts", zap.Int("accounts", store.Len()), zap.String("wal", cfg.Store.WALPath))
		closeFn := func() error {
			if w == nil {
				return nil
			}
			return w.Close()
		}
		return store, closeFn, nil
	}
}

