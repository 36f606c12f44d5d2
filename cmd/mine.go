package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"minichain/config"
	"minichain/miner"
	"minichain/utils"
)

var mineDifficulty int

var mineCmd = &cobra.Command{
	Use:   "mine <payload>",
	Short: "Mine one block committing the given payload and append it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := openNode()
		if err != nil {
			return err
		}
		defer n.close()

		difficulty := n.cfg.Difficulty
		if mineDifficulty > 0 {
			difficulty = mineDifficulty
		}
		if difficulty < config.MinDifficulty || difficulty > config.MaxDifficulty {
			return fmt.Errorf("difficulty %d out of range [%d, %d]", difficulty, config.MinDifficulty, config.MaxDifficulty)
		}

		// Ctrl-C cancels at the next yield point, leaving the chain untouched
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		m := miner.New(n.chain, n.hasher, miner.Options{
			AttemptCeiling: n.mining.AttemptCeiling,
			YieldInterval:  n.mining.YieldInterval,
		})

		b, err := m.Mine(ctx, args[0], difficulty)
		if err != nil {
			return err
		}
		if err := n.chain.Append(b); err != nil {
			return err
		}

		fmt.Printf("Mined block | index=%d nonce=%d difficulty=%d hash=%s\n", b.Index, b.Nonce, b.Difficulty, utils.ShortenLog(b.Hash))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().IntVarP(&mineDifficulty, "difficulty", "d", 0, "Override the configured difficulty for this block")
}
