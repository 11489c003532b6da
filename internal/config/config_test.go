package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Addr != ":8000" || cfg.Mongo.Database != "my-blog" || cfg.Mongo.Collection != "articles" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
http:
  addr: ":4000"
store:
  driver: memory
nats:
  subject_prefix: blog
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BLOG_DIAG_ADDR", ":4001")
	t.Setenv("BLOG_LOG_DEVELOPMENT", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Addr != ":4000" {
		t.Errorf("addr = %q", cfg.HTTP.Addr)
	}
	if cfg.HTTP.DiagAddr != ":4001" {
		t.Errorf("diag addr = %q", cfg.HTTP.DiagAddr)
	}
	if cfg.Store.Driver != DriverMemory {
		t.Errorf("driver = %q", cfg.Store.Driver)
	}
	if cfg.Nats.SubjectPrefix != "blog" {
		t.Errorf("subject prefix = %q", cfg.Nats.SubjectPrefix)
	}
	if !cfg.Log.Development {
		t.Error("expected development logging from env")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"memory", func(c *Config) { c.Store.Driver = DriverMemory; c.Mongo = MongoConfig{} }, false},
		{"unknown driver", func(c *Config) { c.Store.Driver = "redis" }, true},
		{"no collection", func(c *Config) { c.Mongo.Collection = "" }, true},
		{"zero timeout", func(c *Config) { c.Mongo.TimeoutSec = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("BLOG_FLAG", "not-a-bool")
	if !GetEnvBool("BLOG_FLAG", true) {
		t.Error("invalid value should fall back")
	}
}
