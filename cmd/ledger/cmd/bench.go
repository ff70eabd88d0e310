package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/atomic"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	grpc_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/ledger/adapter/in/grpc"
	grpcpool "github.com/JoeShih716/go-bank-ledger/pkg/grpc"
)

var (
	benchTotal       int
	benchConcurrency int
	benchAccount     string
	benchAmount      string
	benchDuration    time.Duration
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Send concurrent deposits to one account and report TPS",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchTotal, "count", 100000, "number of deposits to send")
	benchCmd.Flags().IntVar(&benchConcurrency, "concurrency", 100, "number of in-flight requests")
	benchCmd.Flags().StringVar(&benchAccount, "account", "", "target account (a random one is opened when empty)")
	benchCmd.Flags().StringVar(&benchAmount, "amount", "1", "amount of each deposit")
	benchCmd.Flags().DurationVar(&benchDuration, "max-duration", 120*time.Second, "abort the run after this long")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, _ []string) error {
	if benchTotal <= 0 || benchConcurrency <= 0 {
		return errors.New("count and concurrency must be positive")
	}
	amount, err := decimal.NewFromString(benchAmount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", benchAmount, err)
	}

	pool := grpcpool.NewPool()
	defer pool.Close()
	conn, err := pool.GetConnection(serverAddr)
	if err != nil {
		return err
	}
	client := grpc_adapter.NewClient(conn)

	ctx, cancel := context.WithTimeout(cmd.Context(), benchDuration)
	defer cancel()

	account := benchAccount
	if account == "" {
		account = "bench-" + uuid.NewString()
	}
	if _, err := client.OpenAccount(ctx, account); err != nil && status.Code(err) != codes.Aborted {
		return fmt.Errorf("failed to open %s: %w", account, err)
	}

	var wg sync.WaitGroup
	failed := atomic.NewInt64(0)
	sem := make(chan struct{}, benchConcurrency)
	startTime := time.Now()

	for i := 0; i < benchTotal; i++ {
		sem <- struct{}{}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			// description 帶上 ref id 方便對帳
			if _, err := client.Deposit(ctx, account, amount, uuid.NewString()); err != nil {
				if failed.Inc() == 1 || idx%10000 == 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "deposit %d failed: %v\n", idx, err)
				}
			}
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(startTime)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Completed %d requests (%d failed) in %v\n", benchTotal, failed.Load(), elapsed)
	fmt.Fprintf(out, "TPS: %.2f\n", float64(benchTotal)/elapsed.Seconds())

	final, err := client.GetAccount(ctx, account)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Account %s balance %s\n", final.AccountNumber, final.Balance.String())
	return nil
}
