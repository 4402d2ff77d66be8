// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/pebble"
	"github.com/ava-labs/collectiblevm/trace"
)

const (
	PebbleDatabase = "pebble"
	MemoryDatabase = "memdb"
)

var (
	ErrInvalidDatabaseType = errors.New("invalid database type")
	ErrMissingDataDir      = errors.New("missing data directory")
	ErrInvalidTimeout      = errors.New("invalid timeout")
)

type HTTPConfig struct {
	Host string `json:"host" yaml:"host"`
	Port uint16 `json:"port" yaml:"port"`

	AllowedOrigins []string `json:"allowedOrigins" yaml:"allowedOrigins"`
	AllowedHosts   []string `json:"allowedHosts" yaml:"allowedHosts"`

	ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
	ShutdownTimeout   time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`
}

// Address is the host:port the API server listens on.
func (c HTTPConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

type WebSocketConfig struct {
	Enabled            bool `json:"enabled" yaml:"enabled"`
	MaxPendingMessages int  `json:"maxPendingMessages" yaml:"maxPendingMessages"`
}

type Config struct {
	NetworkID uint32 `json:"networkID" yaml:"networkID"`
	ChainID   string `json:"chainID" yaml:"chainID"`

	LogLevel        string `json:"logLevel" yaml:"logLevel"`
	LogDisplayLevel string `json:"logDisplayLevel" yaml:"logDisplayLevel"`
	LogDir          string `json:"logDir" yaml:"logDir"`

	DataDir      string        `json:"dataDir" yaml:"dataDir"`
	DatabaseType string        `json:"databaseType" yaml:"databaseType"`
	Pebble       pebble.Config `json:"pebble" yaml:"pebble"`

	HTTP           HTTPConfig      `json:"http" yaml:"http"`
	WebSocket      WebSocketConfig `json:"webSocket" yaml:"webSocket"`
	MetricsEnabled bool            `json:"metricsEnabled" yaml:"metricsEnabled"`
	TraceConfig    trace.Config    `json:"traceConfig" yaml:"traceConfig"`
}

func NewDefaultConfig() Config {
	return Config{
		NetworkID:       1337,
		LogLevel:        logging.Info.String(),
		LogDisplayLevel: logging.Info.String(),
		LogDir:          "logs",
		DataDir:         "data",
		DatabaseType:    PebbleDatabase,
		Pebble:          pebble.NewDefaultConfig(),
		HTTP: HTTPConfig{
			Host:              "127.0.0.1",
			Port:              9650,
			AllowedOrigins:    []string{"*"},
			AllowedHosts:      []string{"localhost"},
			ReadTimeout:       30 * time.Second,
			ReadHeaderTimeout: 30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		WebSocket: WebSocketConfig{
			Enabled:            true,
			MaxPendingMessages: 1_024,
		},
		MetricsEnabled: true,
		TraceConfig: trace.Config{
			Enabled:         false,
			TraceSampleRate: 1,
			AppName:         consts.Name,
			Agent:           consts.Name,
		},
	}
}

// Load applies [b] on top of the default config. [b] may be JSON or YAML.
func Load(b []byte) (Config, error) {
	c := NewDefaultConfig()
	if len(b) > 0 {
		var err error
		if json.Valid(b) {
			err = json.Unmarshal(b, &c)
		} else {
			err = yaml.Unmarshal(b, &c)
		}
		if err != nil {
			return Config{}, err
		}
	}
	if err := c.Verify(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) Verify() error {
	if _, err := logging.ToLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ToLevel(c.LogDisplayLevel); err != nil {
		return err
	}
	switch c.DatabaseType {
	case PebbleDatabase:
		if len(c.DataDir) == 0 {
			return ErrMissingDataDir
		}
	case MemoryDatabase:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDatabaseType, c.DatabaseType)
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdownTimeout=%s", ErrInvalidTimeout, c.HTTP.ShutdownTimeout)
	}
	return nil
}

func (c *Config) GetLogLevel() logging.Level {
	level, err := logging.ToLevel(c.LogLevel)
	if err != nil {
		return logging.Info
	}
	return level
}

func (c *Config) GetLogDisplayLevel() logging.Level {
	level, err := logging.ToLevel(c.LogDisplayLevel)
	if err != nil {
		return logging.Info
	}
	return level
}
