package config

import "time"

const (
	envPort            = "PORT"
	envStoreDriver     = "STORE_DRIVER"
	envSQLitePath      = "SQLITE_PATH"
	envMaxScore        = "MAX_SCORE"
	envRetentionOn     = "RETENTION_ENABLED"
	envRetentionRate   = "RETENTION_INTERVAL"
	envRetentionKeep   = "RETENTION_KEEP"
	envRetentionOnce   = "RETENTION_RUN_ONCE"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envAPIBaseURL      = "HIGHSCORE_API_BASE_URL"
	envTickInterval    = "TICK_INTERVAL"
	envHTTPTimeout     = "HTTP_TIMEOUT"
	envSoundOn         = "SOUND_ENABLED"
	envLogFile         = "LOG_FILE"
	envDotEnvPath      = "DOTENV_PATH"
	defaultDotEnvPath  = ".env"
	defaultPort        = "3000"
	defaultStoreDriver = StoreMemory
	defaultSQLitePath  = "data/highscores.db"
	defaultMaxScore    = 144
	defaultMetricsPort = "9090"
	defaultServiceName = "snake-highscore"

	// Retention keeps the top 15 in both the all-time and the yearly window.
	defaultRetentionKeep     = 15
	defaultRetentionInterval = Duration(time.Hour)

	defaultAPIBaseURL   = "http://localhost:3000"
	defaultTickInterval = 300 * Duration(time.Millisecond)
	defaultHTTPTimeout  = 5 * Duration(time.Second)
)

// Store drivers.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)
