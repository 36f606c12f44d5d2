package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"minichain/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Verify the whole chain from genesis",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := openNode()
		if err != nil {
			return err
		}
		defer n.close()

		if err := validator.VerifyChain(n.chain, n.hasher); err != nil {
			return fmt.Errorf("chain invalid: %w", err)
		}
		fmt.Printf("Chain valid | height=%d blocks=%d\n", n.chain.Tip().Index, n.chain.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
