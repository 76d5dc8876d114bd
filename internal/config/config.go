// Package config handles configuration for the omegaboard CLI, including
// defaults, JSON overlay, and command-line flags.
package config

// Durable backend selectors.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Avatar backend selectors.
const (
	AvatarBackendKV = "kv"
	AvatarBackendS3 = "s3"
)

// Config holds runtime settings for omegaboard.
//
// Fields:
//   - DurableBackend: which store implements the durable scope
//     (memory | sqlite | postgres).
//   - DatabaseDSN: SQLite file path or PostgreSQL DSN, per backend.
//   - LegacyHash: verify and store passwords with the historical rolling
//     hash instead of bcrypt. Only for data carried over from earlier
//     deployments; see accounts.LegacyHasher.
//   - AvatarBackend: where custom avatar blobs live (kv | s3).
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     settings for the S3 avatar backend.
type Config struct {
	DurableBackend string
	DatabaseDSN    string
	LegacyHash     bool
	AvatarBackend  string
	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DurableBackend = BackendSQLite
	c.DatabaseDSN = "board.db"
	c.LegacyHash = false
	c.AvatarBackend = AvatarBackendKV
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "avatars"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
