package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tipCmd = &cobra.Command{
	Use:   "tip",
	Short: "Print the current chain tip",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := openNode()
		if err != nil {
			return err
		}
		defer n.close()

		tip := n.chain.Tip()
		fmt.Printf("index=%d hash=%s prev=%s payload=%q\n", tip.Index, tip.Hash, tip.PrevHash, tip.Payload)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tipCmd)
}
