package config

import (
	"fmt"

	"github.com/Netflix/go-env"
)

type Config struct {
	DatabaseDSN      string `env:"DATABASE_DSN,required=true"`
	RabbitMQURL      string `env:"RABBITMQ_URL,required=true"`
	RedisURL         string `env:"REDIS_URL,required=true"`
	RedisPoolSize    int    `env:"REDIS_POOL_SIZE,default=8"`
	CSVDelimiter     string `env:"CSV_DELIMITER,default=,"`
	InputDir         string `env:"INPUT_DIR,default=./feeds"`
	ScanConcurrency  int    `env:"SCAN_CONCURRENCY,default=4"`
	ImportsPerMinute int    `env:"IMPORTS_PER_MINUTE,default=30"`
	APIPort          int    `env:"API_PORT,default=8080"`
	LogLevel         string `env:"LOG_LEVEL,default=info"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
