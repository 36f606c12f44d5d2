package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"minichain/logx"
)

const (
	defaultConfigPath = "config/config.yml"
	defaultMiningPath = "config/mining.ini"
)

var (
	configPath string
	miningPath string
)

var rootCmd = &cobra.Command{
	Use:   "minichain",
	Short: "Proof-of-work ledger CLI",
	Long:  "Command line interface for mining, inspecting and validating a single-writer proof-of-work ledger.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Path to config.yml")
	rootCmd.PersistentFlags().StringVar(&miningPath, "mining-config", defaultMiningPath, "Path to mining.ini")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}
