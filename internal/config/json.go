package config

import (
	"encoding/json"
	"os"

	"github.com/omegalab/omegaboard/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, set fields are copied onto the
// runtime Config; absent fields leave the defaults alone.
type JsonConfig struct {
	DurableBackend *string `json:"durable_backend"`
	DatabaseDSN    *string `json:"database_dsn"`
	LegacyHash     *bool   `json:"legacy_hash"`
	AvatarBackend  *string `json:"avatar_backend"`
	S3RootUser     *string `json:"s3_root_user"`
	S3RootPassword *string `json:"s3_root_password"`
	S3Bucket       *string `json:"s3_bucket"`
	S3Region       *string `json:"s3_region"`
	S3BaseEndpoint *string `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c/-config command-line flags; when
// neither is set, no JSON file is loaded. An unreadable or invalid file
// panics, matching the fail-fast behavior of the flag layer.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.DurableBackend != nil {
		cfg.DurableBackend = *c.DurableBackend
	}
	if c.DatabaseDSN != nil {
		cfg.DatabaseDSN = *c.DatabaseDSN
	}
	if c.LegacyHash != nil {
		cfg.LegacyHash = *c.LegacyHash
	}
	if c.AvatarBackend != nil {
		cfg.AvatarBackend = *c.AvatarBackend
	}
	if c.S3RootUser != nil {
		cfg.S3RootUser = *c.S3RootUser
	}
	if c.S3RootPassword != nil {
		cfg.S3RootPassword = *c.S3RootPassword
	}
	if c.S3Bucket != nil {
		cfg.S3Bucket = *c.S3Bucket
	}
	if c.S3Region != nil {
		cfg.S3Region = *c.S3Region
	}
	if c.S3BaseEndpoint != nil {
		cfg.S3BaseEndpoint = *c.S3BaseEndpoint
	}
}
