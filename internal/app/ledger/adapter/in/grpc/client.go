package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/domain"
	pb "github.com/JoeShih716/go-bank-ledger/proto"
)

// Client 包裝 pb.LedgerServiceClient，負責十進位字串與 domain 型別的轉換
type Client struct {
	ledger pb.LedgerServiceClient
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{ledger: pb.NewLedgerServiceClient(conn)}
}

func (c *Client) OpenAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	resp, err := c.ledger.OpenAccount(ctx, &pb.AccountRequest{AccountNumber: accountNumber})
	if err != nil {
		return nil, err
	}
	return fromAccountResponse(resp)
}

func (c *Client) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	resp, err := c.ledger.GetAccount(ctx, &pb.AccountRequest{AccountNumber: accountNumber})
	if err != nil {
		return nil, err
	}
	return fromAccountResponse(resp)
}

// Deposit 回傳異動後餘額，伺服器無法提供時 Valid 為 false
func (c *Client) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (decimal.NullDecimal, error) {
	resp, err := c.ledger.Deposit(ctx, postingRequest(accountNumber, amount, description))
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return fromPostingResponse(resp)
}

func (c *Client) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (decimal.NullDecimal, error) {
	resp, err := c.ledger.Withdraw(ctx, postingRequest(accountNumber, amount, description))
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return fromPostingResponse(resp)
}

// ListTransactions start/stop 皆為 nil 時取得全部交易紀錄
func (c *Client) ListTransactions(ctx context.Context, accountNumber string, start, stop *time.Time) ([]domain.Transaction, error) {
	req := &pb.ListTransactionsRequest{AccountNumber: accountNumber}
	if start != nil {
		req.Start = timestamppb.New(*start)
	}
	if stop != nil {
		req.Stop = timestamppb.New(*stop)
	}
	resp, err := c.ledger.ListTransactions(ctx, req)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Transaction, 0, len(resp.Transactions))
	for _, tran := range resp.Transactions {
		converted, err := fromTransaction(tran)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func postingRequest(accountNumber string, amount decimal.Decimal, description string) *pb.PostingRequest {
	return &pb.PostingRequest{
		AccountNumber: accountNumber,
		Amount:        amount.String(),
		Description:   description,
	}
}

func fromAccountResponse(resp *pb.AccountResponse) (*domain.Account, error) {
	balance, err := decimal.NewFromString(resp.GetBalance())
	if err != nil {
		return nil, fmt.Errorf("invalid balance %q: %w", resp.GetBalance(), err)
	}
	return &domain.Account{
		AccountNumber: resp.GetAccountNumber(),
		Balance:       balance,
		Version:       resp.GetVersion(),
		Description:   resp.GetDescription(),
	}, nil
}

func fromPostingResponse(resp *pb.PostingResponse) (decimal.NullDecimal, error) {
	if resp.GetBalance() == "" {
		return decimal.NullDecimal{}, nil
	}
	balance, err := decimal.NewFromString(resp.GetBalance())
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid balance %q: %w", resp.GetBalance(), err)
	}
	return decimal.NewNullDecimal(balance), nil
}

func fromTransaction(tran *pb.Transaction) (domain.Transaction, error) {
	id, err := uuid.Parse(tran.GetId())
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid transaction id %q: %w", tran.GetId(), err)
	}
	amount, err := decimal.NewFromString(tran.GetAmount())
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid amount for transaction %s: %w", tran.GetId(), err)
	}
	return domain.Transaction{
		ID:            id,
		AccountNumber: tran.GetAccountNumber(),
		Amount:        amount,
		Description:   tran.GetDescription(),
		Timestamp:     tran.GetTimestamp().AsTime(),
	}, nil
}
