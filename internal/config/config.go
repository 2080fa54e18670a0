package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StatsBackendMemory = "memory"
	StatsBackendRedis  = "redis"
)

var ErrUnknownStatsBackend = errors.New("unknown stats backend")

type Config struct {
	LogLevel string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"warn"`
	AIDelay  time.Duration `yaml:"ai-delay" env:"AI_DELAY" env-default:"800ms"`
	Stats    Stats         `yaml:"stats"`
	Redis    Redis         `yaml:"redis"`
	Arena    Arena         `yaml:"arena"`
}

type Stats struct {
	Backend string `yaml:"backend" env:"STATS_BACKEND" env-default:"memory"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	DB   int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Arena struct {
	Workers int `yaml:"workers" env:"ARENA_WORKERS" env-default:"4"`
}

// MustLoad reads path when it exists and the environment otherwise.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	} else if err = cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to load config from env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Stats.Backend {
	case StatsBackendMemory, StatsBackendRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatsBackend, that.Stats.Backend)
	}

	if that.AIDelay < 0 {
		return fmt.Errorf("ai-delay must not be negative, got %s", that.AIDelay)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
