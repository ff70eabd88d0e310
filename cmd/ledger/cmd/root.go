// Package cmd 是 ledger 指令列工具
package cmd

import (
	"fmt"
	"os"
	"time"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"
)

var (
	configPath string
	envPath    string
	serverAddr string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "ledger",
	Short:         "Account ledger service and client",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "path of the yaml config file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", ".env", "path of the .env file")
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", "localhost:50051", "gRPC server address used by client commands")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Second, "timeout of a single client call")
}

// Execute 執行 root command，失敗時以 exit code 1 結束
func Execute() {
	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
