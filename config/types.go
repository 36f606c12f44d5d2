package config

// NodeConfig holds the node-level configuration from config.yml
type NodeConfig struct {
	DataDir     string `yaml:"data_dir"`
	Backend     string `yaml:"backend"`      // leveldb | bolt | memory
	HashAlgo    string `yaml:"hash_algo"`    // sha256 | sha3
	Difficulty  int    `yaml:"difficulty"`   // required leading zero hex chars
	MetricsAddr string `yaml:"metrics_addr"` // empty disables the metrics server
}

// MiningConfig tunes the search loop, loaded from mining.ini
type MiningConfig struct {
	AttemptCeiling uint64 `ini:"attempt_ceiling"`
	YieldInterval  uint64 `ini:"yield_interval"`
}

// ConfigFile is the top-level structure for config.yml
type ConfigFile struct {
	Node NodeConfig `yaml:"node"`
}
