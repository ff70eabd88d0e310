package grpc

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/usecase"
	pb "github.com/JoeShih716/go-bank-ledger/proto"
)

type GrpcServer struct {
	pb.UnimplementedLedgerServiceServer
	ledger *usecase.LedgerService
	logger *zap.Logger
}

func NewGrpcServer(ledger *usecase.LedgerService, logger *zap.Logger) *GrpcServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GrpcServer{
		ledger: ledger,
		logger: logger,
	}
}

func (s *GrpcServer) OpenAccount(ctx context.Context, req *pb.AccountRequest) (*pb.AccountResponse, error) {
	account, err := s.ledger.OpenAccount(ctx, req.AccountNumber)
	if err != nil {
		return nil, toStatus(err)
	}
	return toAccountResponse(account), nil
}

func (s *GrpcServer) GetAccount(ctx context.Context, req *pb.AccountRequest) (*pb.AccountResponse, error) {
	account, err := s.ledger.GetAccount(ctx, req.AccountNumber)
	if err != nil {
		return nil, toStatus(err)
	}
	return toAccountResponse(account), nil
}

func (s *GrpcServer) Deposit(ctx context.Context, req *pb.PostingRequest) (*pb.PostingResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.Deposit(ctx, req.AccountNumber, amount, req.Description); err != nil {
		return nil, toStatus(err)
	}
	return s.postingResponse(ctx, req.AccountNumber), nil
}

func (s *GrpcServer) Withdraw(ctx context.Context, req *pb.PostingRequest) (*pb.PostingResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.WithDraw(ctx, req.AccountNumber, amount, req.Description); err != nil {
		return nil, toStatus(err)
	}
	return s.postingResponse(ctx, req.AccountNumber), nil
}

func (s *GrpcServer) ListTransactions(ctx context.Context, req *pb.ListTransactionsRequest) (*pb.ListTransactionsResponse, error) {
	var (
		transactions []domain.Transaction
		err          error
	)
	switch {
	case req.Start == nil && req.Stop == nil:
		transactions, err = s.ledger.GetListTransactionOccurred(ctx, req.AccountNumber)
	case req.Start != nil && req.Stop != nil:
		if err := validTimestamps(req.Start, req.Stop); err != nil {
			return nil, err
		}
		transactions, err = s.ledger.GetListTransactionOccurredBetween(ctx, req.AccountNumber, req.Start.AsTime(), req.Stop.AsTime())
	default:
		return nil, status.Error(codes.InvalidArgument, "start and stop must be set together")
	}
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &pb.ListTransactionsResponse{Transactions: make([]*pb.Transaction, 0, len(transactions))}
	for _, tran := range transactions {
		resp.Transactions = append(resp.Transactions, &pb.Transaction{
			Id:            tran.ID.String(),
			AccountNumber: tran.AccountNumber,
			Amount:        tran.Amount.String(),
			Description:   tran.Description,
			Timestamp:     timestamppb.New(tran.Timestamp),
		})
	}
	return resp, nil
}

// postingResponse 異動成功後查詢最新餘額 (Best Effort)
func (s *GrpcServer) postingResponse(ctx context.Context, accountNumber string) *pb.PostingResponse {
	account, err := s.ledger.GetAccount(ctx, accountNumber)
	if err != nil {
		s.logger.Warn("failed to read balance after posting",
			zap.String("account_number", accountNumber),
			zap.Error(err),
		)
		return &pb.PostingResponse{}
	}
	return &pb.PostingResponse{Balance: account.Balance.String()}
}

func toAccountResponse(account *domain.Account) *pb.AccountResponse {
	return &pb.AccountResponse{
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance.String(),
		Version:       account.Version,
		Description:   account.Description,
	}
}

// parseAmount 金額為十進位字串，格式錯誤視為 InvalidArgument
func parseAmount(amount string) (decimal.Decimal, error) {
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, status.Errorf(codes.InvalidArgument, "invalid amount %q: %v", amount, err)
	}
	return parsed, nil
}

func validTimestamps(timestamps ...*timestamppb.Timestamp) error {
	for _, ts := range timestamps {
		if err := ts.CheckValid(); err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
	}
	return nil
}

// toStatus 將業務錯誤轉成 gRPC status
func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrEmptyAccountNumber):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrVersionConflict):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

var _ pb.LedgerServiceServer = (*GrpcServer)(nil)
