package watcher

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultDialTimeout    = 5 * time.Second
	DefaultRequestTimeout = 10 * time.Second
	DefaultPollInterval   = time.Second
	DefaultCheckpointPath = "scoreboard-watcher.db"
	DefaultLogLevel       = "info"
)

// Config is the watcher configuration file structure.
type Config struct {
	RPC        RPCConfig     `yaml:"rpc"`
	Contract   string        `yaml:"contract"`
	Poll       time.Duration `yaml:"poll_interval"`
	Start      uint32        `yaml:"start_height"`
	Checkpoint string        `yaml:"checkpoint"`
	Metrics    MetricsConfig `yaml:"metrics"`
	Logger     LoggerConfig  `yaml:"logger"`
}

// RPCConfig configures connection to the Neo RPC node.
type RPCConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	DialTimeout    time.Duration `yaml:"dial_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// MetricsConfig configures Prometheus metrics endpoint. Empty address
// disables it.
type MetricsConfig struct {
	Address string `yaml:"address"`
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns configuration with all optional values set.
func DefaultConfig() Config {
	return Config{
		RPC: RPCConfig{
			DialTimeout:    DefaultDialTimeout,
			RequestTimeout: DefaultRequestTimeout,
		},
		Poll:       DefaultPollInterval,
		Checkpoint: DefaultCheckpointPath,
		Logger: LoggerConfig{
			Level: DefaultLogLevel,
		},
	}
}

// LoadConfig reads YAML configuration from the file, applies defaults and
// validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config file: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration is complete.
func (c Config) Validate() error {
	switch {
	case c.RPC.Endpoint == "":
		return errors.New("missing RPC endpoint")
	case c.Contract == "":
		return errors.New("missing contract address")
	case c.Poll <= 0:
		return fmt.Errorf("non-positive poll interval %s", c.Poll)
	case c.RPC.DialTimeout < 0 || c.RPC.RequestTimeout < 0:
		return errors.New("negative RPC timeout")
	case c.Checkpoint == "":
		return errors.New("missing checkpoint path")
	}
	return nil
}
