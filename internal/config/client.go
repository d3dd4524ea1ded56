package config

// ClientConfig configures the terminal game client.
type ClientConfig struct {
	APIBaseURL   string
	TickInterval Duration
	HTTPTimeout  Duration
	Sound        bool
	// LogFile is empty when logs should be discarded.
	LogFile string
}

// LoadClient reads the game client configuration.
func LoadClient() ClientConfig {
	return ClientConfig{
		APIBaseURL:   envOrDefault(envAPIBaseURL, defaultAPIBaseURL),
		TickInterval: durationEnvOrDefault(envTickInterval, defaultTickInterval),
		HTTPTimeout:  durationEnvOrDefault(envHTTPTimeout, defaultHTTPTimeout),
		Sound:        boolEnvOrDefault(envSoundOn, true),
		LogFile:      envOrDefault(envLogFile, ""),
	}
}
