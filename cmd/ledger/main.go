package main

import "github.com/JoeShih716/go-bank-ledger/cmd/ledger/cmd"

func main() {
	cmd.Execute()
}
