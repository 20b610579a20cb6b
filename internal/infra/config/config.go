// Package config loads the node's YAML configuration: ledger storage, the
// logger, the scheduler cadence, and the signing key path.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/andrey/p2psearch-ledger/internal/infra/logging"
)

// Config is the root configuration document for the ledger node.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`

	Storage struct {
		Path string `yaml:"path"` // Badger database directory
	} `yaml:"storage"`

	Logging logging.Config `yaml:"logging"`

	Signing struct {
		PeerID     string `yaml:"peer_id"`
		KeyPath    string `yaml:"key_path"` // path to a 64-byte Ed25519 private key
		GenerateIfMissing bool `yaml:"generate_if_missing"`
	} `yaml:"signing"`

	Scheduler struct {
		Interval time.Duration `yaml:"interval"`
	} `yaml:"scheduler"`

	Proof struct {
		SampleSize int `yaml:"sample_size"`
	} `yaml:"proof"`
}

// Default returns a Config with the same fallbacks the server entrypoint
// applies when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Storage.Path = "./data/ledger"
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	cfg.Logging.Output = "stdout"
	cfg.Signing.GenerateIfMissing = true
	cfg.Scheduler.Interval = 60 * time.Second
	cfg.Proof.SampleSize = 10
	return cfg
}

// Load reads and parses a YAML config file, applying Default()'s fallbacks
// for any field the file leaves zero.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
