package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const ServiceName = "BLOG"

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type HTTPConfig struct {
	Addr      string `yaml:"addr"`
	DiagAddr  string `yaml:"diag_addr"`
	StaticDir string `yaml:"static_dir"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
}

type MongoConfig struct {
	URI         string `yaml:"uri"`
	Database    string `yaml:"database"`
	Collection  string `yaml:"collection"`
	TimeoutSec  int    `yaml:"timeout_sec"`
	MaxPoolSize uint64 `yaml:"max_pool_size"`
}

// Timeout bounds every single store operation.
func (c MongoConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// NatsConfig enables event publishing when URL is set.
type NatsConfig struct {
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type Config struct {
	HTTP  HTTPConfig  `yaml:"http"`
	Store StoreConfig `yaml:"store"`
	Mongo MongoConfig `yaml:"mongo"`
	Nats  NatsConfig  `yaml:"nats"`
	Log   LogConfig   `yaml:"log"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:     ":8000",
			DiagAddr: ":9999",
		},
		Store: StoreConfig{Driver: DriverMongo},
		Mongo: MongoConfig{
			URI:         "mongodb://localhost:27017",
			Database:    "my-blog",
			Collection:  "articles",
			TimeoutSec:  5,
			MaxPoolSize: 20,
		},
		Nats: NatsConfig{SubjectPrefix: "articles"},
		Log:  LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults and then applies
// environment overrides. An empty path or a missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.HTTP.Addr = GetEnv(ServiceName+"_ADDR", c.HTTP.Addr)
	c.HTTP.DiagAddr = GetEnv(ServiceName+"_DIAG_ADDR", c.HTTP.DiagAddr)
	c.HTTP.StaticDir = GetEnv(ServiceName+"_STATIC_DIR", c.HTTP.StaticDir)
	c.Store.Driver = GetEnv(ServiceName+"_STORE", c.Store.Driver)
	c.Mongo.URI = GetEnv(ServiceName+"_MONGO_URI", c.Mongo.URI)
	c.Nats.URL = GetEnv(ServiceName+"_NATS_URL", c.Nats.URL)
	c.Log.Level = GetEnv(ServiceName+"_LOG_LEVEL", c.Log.Level)
	c.Log.Development = GetEnvBool(ServiceName+"_LOG_DEVELOPMENT", c.Log.Development)
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" || c.Mongo.Collection == "" {
			return errors.New("mongo store requires uri, database and collection")
		}
		if c.Mongo.TimeoutSec <= 0 {
			return fmt.Errorf("mongo timeout_sec must be positive, got %d", c.Mongo.TimeoutSec)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	return nil
}

func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

func GetEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}

	return b
}
