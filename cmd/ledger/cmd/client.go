package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	grpc_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/ledger/adapter/in/grpc"
	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/domain"
	grpcpool "github.com/JoeShih716/go-bank-ledger/pkg/grpc"
)

var historyStart, historyStop string

var openCmd = &cobra.Command{
	Use:   "open <account-number>",
	Short: "Open an account with a zero balance",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, c *grpc_adapter.Client, out io.Writer, args []string) error {
		account, err := c.OpenAccount(ctx, args[0])
		if err != nil {
			return err
		}
		printAccount(out, account)
		return nil
	}),
}

var getCmd = &cobra.Command{
	Use:   "get <account-number>",
	Short: "Show the current balance of an account",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, c *grpc_adapter.Client, out io.Writer, args []string) error {
		account, err := c.GetAccount(ctx, args[0])
		if err != nil {
			return err
		}
		printAccount(out, account)
		return nil
	}),
}

var depositCmd = &cobra.Command{
	Use:   "deposit <account-number> <amount> [description]",
	Short: "Deposit money into an account",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  postingCommand((*grpc_adapter.Client).Deposit),
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw <account-number> <amount> [description]",
	Short: "Withdraw money from an account",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  postingCommand((*grpc_adapter.Client).Withdraw),
}

var historyCmd = &cobra.Command{
	Use:     "history <account-number>",
	Short:   "List the transactions of an account",
	Example: `  ledger history 1234567890 --start 2024-01-01 --stop "2024-01-31 23:59:59"`,
	Args:    cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, c *grpc_adapter.Client, out io.Writer, args []string) error {
		start, stop, err := historyRange(historyStart, historyStop)
		if err != nil {
			return err
		}
		transactions, err := c.ListTransactions(ctx, args[0], start, stop)
		if err != nil {
			return err
		}
		printTransactions(out, transactions)
		return nil
	}),
}

func init() {
	historyCmd.Flags().StringVar(&historyStart, "start", "", "include transactions at or after this time")
	historyCmd.Flags().StringVar(&historyStop, "stop", "", "include transactions at or before this time")
	historyCmd.MarkFlagsRequiredTogether("start", "stop")

	rootCmd.AddCommand(openCmd, getCmd, depositCmd, withdrawCmd, historyCmd)
}

type clientFunc func(ctx context.Context, c *grpc_adapter.Client, out io.Writer, args []string) error

// withClient 建立連線與逾時後執行 fn
func withClient(fn clientFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		pool := grpcpool.NewPool()
		defer pool.Close()

		conn, err := pool.GetConnection(serverAddr)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		return fn(ctx, grpc_adapter.NewClient(conn), cmd.OutOrStdout(), args)
	}
}

type postingFunc func(c *grpc_adapter.Client, ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (decimal.NullDecimal, error)

func postingCommand(post postingFunc) func(cmd *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, c *grpc_adapter.Client, out io.Writer, args []string) error {
		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[1], err)
		}
		var description string
		if len(args) == 3 {
			description = args[2]
		}
		balance, err := post(c, ctx, args[0], amount, description)
		if err != nil {
			return err
		}
		if balance.Valid {
			fmt.Fprintf(out, "ok, balance %s\n", balance.Decimal.String())
		} else {
			fmt.Fprintln(out, "ok")
		}
		return nil
	})
}

// historyRange 解析時間區間，兩者皆空代表全部
func historyRange(start, stop string) (*time.Time, *time.Time, error) {
	if start == "" && stop == "" {
		return nil, nil, nil
	}
	startTime, err := dateparse.ParseIn(start, time.UTC)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid start %q: %w", start, err)
	}
	stopTime, err := dateparse.ParseIn(stop, time.UTC)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid stop %q: %w", stop, err)
	}
	if stopTime.Before(startTime) {
		return nil, nil, fmt.Errorf("stop %s is before start %s", stop, start)
	}
	return &startTime, &stopTime, nil
}

func printAccount(out io.Writer, account *domain.Account) {
	fmt.Fprintf(out, "%s\tbalance %s\tversion %d", account.AccountNumber, account.Balance.StringFixed(2), account.Version)
	if account.Description != "" {
		fmt.Fprintf(out, "\tlast %q", account.Description)
	}
	fmt.Fprintln(out)
}

func printTransactions(out io.Writer, transactions []domain.Transaction) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "TIME\tAMOUNT\tDESCRIPTION\t")
	for _, tran := range transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t\n", tran.Timestamp.UTC().Format("2006-01-02 15:04:05.000"), tran.Amount.StringFixed(2), tran.Description)
	}
	_ = w.Flush()
}
