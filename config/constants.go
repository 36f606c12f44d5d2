package config

const (
	DefaultDataDir    = "./data"
	DefaultBackend    = "leveldb"
	DefaultHashAlgo   = "sha256"
	DefaultDifficulty = 3

	// Difficulty bounds accepted from config and CLI flags
	MinDifficulty = 1
	MaxDifficulty = 8

	DefaultAttemptCeiling = 10_000_000
	DefaultYieldInterval  = 50_000
)
