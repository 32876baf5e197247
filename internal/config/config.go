package config

import (
	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/log"
)

type Config struct {
	Settings SettingsConfig `mapstructure:"settings"`
	Policy   PolicyConfig   `mapstructure:"policy" validate:"required"`
}

type SettingsConfig struct {
	LogLevel  log.Level  `mapstructure:"log_level"`
	LogFormat log.Format `mapstructure:"log_format"`
	// AWSAPIRPS caps provider calls per second across the process.
	AWSAPIRPS int `mapstructure:"aws_api_rps" validate:"gte=0,lte=100"`
	// Workers bounds the augmentation chunk pool. 1 keeps describe and
	// list-tags traffic strictly serial.
	Workers   int    `mapstructure:"workers" validate:"gte=0"`
	ChunkSize int    `mapstructure:"chunk_size" validate:"gte=0"`
	Region    string `mapstructure:"region"`
	Reporter  string `mapstructure:"reporter" validate:"omitempty,oneof=text json"`
}

// PolicyConfig is the declarative filter/action pipeline over one resource
// kind. Filter and action nodes are {type: <registered name>, ...options};
// validation of the node bodies happens when the pipeline is built.
type PolicyConfig struct {
	Name     string              `mapstructure:"name" validate:"required"`
	Resource domain.ResourceKind `mapstructure:"resource" validate:"required"`
	Filters  []map[string]any    `mapstructure:"filters"`
	Actions  []map[string]any    `mapstructure:"actions"`
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:  log.LevelInfo,
			LogFormat: log.FormatText,
			AWSAPIRPS: 10,
			Workers:   1,
			ChunkSize: 5,
			Reporter:  "text",
		},
	}
}
