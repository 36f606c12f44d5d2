package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// DefaultNodeConfig returns the configuration used when no config.yml exists
func DefaultNodeConfig() *NodeConfig {
	return &NodeConfig{
		DataDir:    DefaultDataDir,
		Backend:    DefaultBackend,
		HashAlgo:   DefaultHashAlgo,
		Difficulty: DefaultDifficulty,
	}
}

// DefaultMiningConfig returns the search tuning used when no mining.ini exists
func DefaultMiningConfig() *MiningConfig {
	return &MiningConfig{
		AttemptCeiling: DefaultAttemptCeiling,
		YieldInterval:  DefaultYieldInterval,
	}
}

// LoadNodeConfig reads and parses config.yml
func LoadNodeConfig(path string) (*NodeConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfgFile ConfigFile
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfgFile); err != nil {
		log.Printf("[config] Failed to decode YAML: %v", err)
		return nil, err
	}

	cfg := cfgFile.Node
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	if cfg.Backend == "" {
		cfg.Backend = DefaultBackend
	}
	if cfg.HashAlgo == "" {
		cfg.HashAlgo = DefaultHashAlgo
	}
	if cfg.Difficulty == 0 {
		cfg.Difficulty = DefaultDifficulty
	}
	if cfg.Difficulty < MinDifficulty || cfg.Difficulty > MaxDifficulty {
		return nil, fmt.Errorf("difficulty %d out of range [%d, %d]", cfg.Difficulty, MinDifficulty, MaxDifficulty)
	}
	log.Printf("[config] Loaded node config: data_dir=%s backend=%s hash_algo=%s difficulty=%d", cfg.DataDir, cfg.Backend, cfg.HashAlgo, cfg.Difficulty)
	return &cfg, nil
}

// LoadMiningConfig reads mining tuning from an .ini file
func LoadMiningConfig(path string) (*MiningConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	miningSection := cfg.Section("mining")
	miningCfg := DefaultMiningConfig()
	err = miningSection.MapTo(miningCfg)
	if err != nil {
		return nil, err
	}
	if miningCfg.AttemptCeiling == 0 {
		miningCfg.AttemptCeiling = DefaultAttemptCeiling
	}
	if miningCfg.YieldInterval == 0 {
		miningCfg.YieldInterval = DefaultYieldInterval
	}
	return miningCfg, nil
}

// WriteDefaultFiles creates config.yml and mining.ini with default contents.
// Existing files are left alone.
func WriteDefaultFiles(configPath, miningPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		content := fmt.Sprintf(
			"node:\n  data_dir: %s\n  backend: %s\n  hash_algo: %s\n  difficulty: %d\n",
			DefaultDataDir, DefaultBackend, DefaultHashAlgo, DefaultDifficulty)
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			return err
		}
		log.Printf("[config] Wrote default %s", configPath)
	}
	if _, err := os.Stat(miningPath); os.IsNotExist(err) {
		content := fmt.Sprintf(
			"[mining]\nattempt_ceiling = %d\nyield_interval = %d\n",
			DefaultAttemptCeiling, DefaultYieldInterval)
		if err := os.WriteFile(miningPath, []byte(content), 0644); err != nil {
			return err
		}
		log.Printf("[config] Wrote default %s", miningPath)
	}
	return nil
}
