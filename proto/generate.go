// Package proto 存放 LedgerService 的 protobuf 定義與產生的程式碼
package proto

//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative ledger.proto
