package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"minichain/blockstore"
	"minichain/chain"
	"minichain/config"
	"minichain/exception"
	"minichain/hasher"
	"minichain/logx"
	"minichain/monitoring"
)

// node bundles everything a subcommand needs to work against the ledger
type node struct {
	cfg    *config.NodeConfig
	mining *config.MiningConfig
	store  *blockstore.BlockStore
	chain  *chain.Chain
	hasher hasher.Hasher
}

// openNode loads config, opens the store and reloads (or seeds) the chain
func openNode() (*node, error) {
	cfg, err := config.LoadNodeConfig(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", configPath, err)
		}
		cfg = config.DefaultNodeConfig()
	}

	mining, err := config.LoadMiningConfig(miningPath)
	if err != nil {
		mining = config.DefaultMiningConfig()
	}

	h, err := hasher.New(cfg.HashAlgo)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", cfg.DataDir, err)
	}
	provider, err := blockstore.CreateDBProvider(
		blockstore.DBVendor(cfg.Backend),
		blockstore.DBOptions{Directory: filepath.Join(cfg.DataDir, "blocks")},
	)
	if err != nil {
		return nil, err
	}
	store := blockstore.NewBlockStore(provider)

	c, err := chain.NewWithStore(store)
	if err != nil {
		store.Close()
		return nil, err
	}

	monitoring.InitMetrics()
	monitoring.SetChainHeight(c.Tip().Index)
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		monitoring.RegisterMetrics(mux)
		exception.SafeGo("metrics-server", func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logx.Error("METRICS", "Metrics server stopped:", err)
			}
		})
	}

	return &node{cfg: cfg, mining: mining, store: store, chain: c, hasher: h}, nil
}

func (n *node) close() {
	if err := n.store.Close(); err != nil {
		logx.Error("NODE", "Failed to close store:", err)
	}
}
