package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"minichain/jsonx"
	"minichain/utils"
)

var showCmd = &cobra.Command{
	Use:   "show [index]",
	Short: "Print one block as JSON, or all blocks when no index is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := openNode()
		if err != nil {
			return err
		}
		defer n.close()

		if len(args) == 1 {
			index, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid block index %q", args[0])
			}
			b := n.chain.Block(index)
			if b == nil {
				return fmt.Errorf("no block at index %d (height is %d)", index, n.chain.Tip().Index)
			}
			out, err := jsonx.MarshalIndent(b, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		for _, b := range n.chain.Blocks() {
			fmt.Printf("#%-4d %s payload=%q nonce=%d difficulty=%d\n",
				b.Index, utils.ShortenLog(b.Hash), b.Payload, b.Nonce, b.Difficulty)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
