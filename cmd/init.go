package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"minichain/config"
	"minichain/utils"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write default config files and seed the genesis block",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return err
		}
		if err := config.WriteDefaultFiles(configPath, miningPath); err != nil {
			return err
		}

		n, err := openNode()
		if err != nil {
			return err
		}
		defer n.close()

		tip := n.chain.Tip()
		fmt.Printf("Initialized chain | height=%d tip=%s\n", tip.Index, utils.ShortenLog(tip.Hash))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
