package config

import "strings"

// Config holds runtime configuration for the leaderboard API server.
type Config struct {
	Port      string
	MaxScore  uint
	Store     StoreConfig
	Retention RetentionConfig
	Metrics   MetricsConfig
}

// StoreConfig selects and locates the leaderboard store.
type StoreConfig struct {
	Driver     string
	SQLitePath string
}

// RetentionConfig controls the leaderboard pruning job.
type RetentionConfig struct {
	// Enabled runs the job inside the API server process.
	Enabled  bool
	Interval Duration
	Keep     int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:      envOrDefault(envPort, defaultPort),
		MaxScore:  uint(intEnvOrDefault(envMaxScore, defaultMaxScore)),
		Store:     loadStore(),
		Retention: loadRetention(),
		Metrics:   loadMetrics(),
	}
}

func loadStore() StoreConfig {
	driver := strings.ToLower(strings.TrimSpace(envOrDefault(envStoreDriver, defaultStoreDriver)))
	if driver != StoreMemory && driver != StoreSQLite {
		driver = defaultStoreDriver
	}
	return StoreConfig{
		Driver:     driver,
		SQLitePath: envOrDefault(envSQLitePath, defaultSQLitePath),
	}
}

func loadRetention() RetentionConfig {
	return RetentionConfig{
		Enabled:  boolEnvOrDefault(envRetentionOn, false),
		Interval: durationEnvOrDefault(envRetentionRate, defaultRetentionInterval),
		Keep:     intEnvOrDefault(envRetentionKeep, defaultRetentionKeep),
	}
}
