package kafka

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds Kafka connection parameters, populated from environment
// variables.
type Config struct {
	Brokers []string `env:"KAFKA_BROKERS,required" envSeparator:","`
	GroupID string   `env:"KAFKA_GROUP_ID"`

	// Reader fetch sizing.
	MinBytes int `env:"KAFKA_MIN_BYTES" envDefault:"1"`
	MaxBytes int `env:"KAFKA_MAX_BYTES" envDefault:"10485760"`

	// Writer batching.
	BatchTimeout time.Duration `env:"KAFKA_BATCH_TIMEOUT" envDefault:"100ms"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
