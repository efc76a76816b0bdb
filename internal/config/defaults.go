package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort = 8080
	DefaultServerMode = "debug"

	// DefaultMaxBodySize caps a single document upload at 25 MiB.
	DefaultMaxBodySize = int64(25 << 20)

	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBName     = "homebuyer"
	DefaultDBMaxConns = 25

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "hbi:"

	DefaultKafkaBroker  = "localhost:9092"
	DefaultKafkaGroupID = "hbi-analysis-workers"

	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "hbi-documents"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultWorkerConcurrency = 4

	DefaultAIProvider     = "claude"
	DefaultClaudeBaseURL  = "https://api.anthropic.com"
	DefaultClaudeModel    = "claude-sonnet-4-20250514"
	DefaultGeminiModel    = "gemini-2.0-flash"
	DefaultAITimeout      = 60 * time.Second
	DefaultAIOutputTokens = 4096

	// External registry endpoints. The BAG (Basisregistratie Adressen en
	// Gebouwen) is served through the public PDOK location server; EP-Online
	// is the national energy-label registry; CBS StatLine publishes area
	// statistics per municipality.
	DefaultBAGBaseURL       = "https://api.pdok.nl/bzk/locatieserver/search/v3_1"
	DefaultEPOnlineBaseURL  = "https://public.ep-online.nl/api/v3"
	DefaultCBSBaseURL       = "https://odata4.cbs.nl/CBS"
	DefaultExternalTimeout  = 15 * time.Second
	DefaultExternalCacheTTL = 24 * time.Hour
)

// ApplyDefaults fills every zero-value field in cfg with the platform default.
// Fields already set by the caller are left unchanged so that explicit
// configuration always wins. It must be called after unmarshalling and before
// Validate() so that optional-but-defaulted fields are never seen as missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultMaxBodySize
	}

	// ── Database ──────────────────────────────────────────────────────────────
	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = DefaultDBMaxConns
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MigrationPath == "" {
		cfg.Database.MigrationPath = "migrations"
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = 15 * time.Minute
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.AutoOffsetReset == "" {
		cfg.Kafka.AutoOffsetReset = "earliest"
	}
	if cfg.Kafka.ProducerRetries == 0 {
		cfg.Kafka.ProducerRetries = 3
	}

	// ── MinIO ─────────────────────────────────────────────────────────────────
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}

	// ── Worker ────────────────────────────────────────────────────────────────
	if cfg.Worker.Concurrency == 0 {
		cfg.Worker.Concurrency = DefaultWorkerConcurrency
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Intelligence ──────────────────────────────────────────────────────────
	if cfg.Intelligence.Provider == "" {
		cfg.Intelligence.Provider = DefaultAIProvider
	}
	if cfg.Intelligence.ClaudeBaseURL == "" {
		cfg.Intelligence.ClaudeBaseURL = DefaultClaudeBaseURL
	}
	if cfg.Intelligence.ClaudeModel == "" {
		cfg.Intelligence.ClaudeModel = DefaultClaudeModel
	}
	if cfg.Intelligence.GeminiModel == "" {
		cfg.Intelligence.GeminiModel = DefaultGeminiModel
	}
	if cfg.Intelligence.RequestTimeout == 0 {
		cfg.Intelligence.RequestTimeout = DefaultAITimeout
	}
	if cfg.Intelligence.MaxOutputTokens == 0 {
		cfg.Intelligence.MaxOutputTokens = DefaultAIOutputTokens
	}

	// ── External ──────────────────────────────────────────────────────────────
	if cfg.External.BAGBaseURL == "" {
		cfg.External.BAGBaseURL = DefaultBAGBaseURL
	}
	if cfg.External.EPOnlineBaseURL == "" {
		cfg.External.EPOnlineBaseURL = DefaultEPOnlineBaseURL
	}
	if cfg.External.CBSBaseURL == "" {
		cfg.External.CBSBaseURL = DefaultCBSBaseURL
	}
	if cfg.External.RequestTimeout == 0 {
		cfg.External.RequestTimeout = DefaultExternalTimeout
	}
	if cfg.External.CacheTTL == 0 {
		cfg.External.CacheTTL = DefaultExternalCacheTTL
	}
}

// NewDefaultConfig returns a Config populated entirely with platform defaults.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
