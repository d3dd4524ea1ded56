package config

// CleanupConfig configures the standalone retention job process.
type CleanupConfig struct {
	Store     StoreConfig
	Retention RetentionConfig
	// RunOnce runs a single pass and exits, leaving scheduling to cron.
	RunOnce bool
}

// LoadCleanup reads the retention job configuration.
func LoadCleanup() CleanupConfig {
	return CleanupConfig{
		Store:     loadStore(),
		Retention: loadRetention(),
		RunOnce:   boolEnvOrDefault(envRetentionOnce, true),
	}
}
