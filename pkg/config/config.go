// Package config loads and holds meikipop's process-wide configuration
// (spec §5 "Shared resources"): mutated only by the UI thread, read
// elsewhere, wrapped in a read/write lock since the daemon's pipeline
// workers read it far more often than the (external, out of scope per §1)
// UI mutates it.
package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

// Config is the process-wide, hot-reloadable settings set. Configuration
// file I/O mechanics are an external collaborator (spec §1 Non-goals); this
// package only defines the shape and the load/access path.
type Config struct {
	MaxLookupLength int    `mapstructure:"max_lookup_length"`
	QualityMode     string `mapstructure:"quality_mode"`
	OCRProvider     string `mapstructure:"ocr_provider"`
	DictPath        string `mapstructure:"dict_path"`
	RulePath        string `mapstructure:"rule_path"`
	LogLevel        string `mapstructure:"log_level"`
}

func defaults() Config {
	return Config{
		MaxLookupLength: 16,
		QualityMode:     "balanced",
		OCRProvider:     "googlelens",
		DictPath:        "meikidict.bin",
		RulePath:        "deconjugator.json",
		LogLevel:        "info",
	}
}

// Load reads configuration from path (if non-empty) overlaid on defaults,
// via viper, following the teacher corpus's "config file plus environment
// overrides" convention.
func Load(path string) (Config, error) {
	v := viper.New()
	cfg := defaults()

	v.SetDefault("max_lookup_length", cfg.MaxLookupLength)
	v.SetDefault("quality_mode", cfg.QualityMode)
	v.SetDefault("ocr_provider", cfg.OCRProvider)
	v.SetDefault("dict_path", cfg.DictPath)
	v.SetDefault("rule_path", cfg.RulePath)
	v.SetDefault("log_level", cfg.LogLevel)

	v.SetEnvPrefix("meikipop")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// SyncConfig wraps a Config behind a read/write lock (spec §5): the UI
// thread calls Set after a configuration change; the daemon calls Get when
// wiring the pipeline workers, which keep the values they were given.
type SyncConfig struct {
	mu  sync.RWMutex
	cfg Config
}

// NewSyncConfig wraps an initial Config for concurrent access.
func NewSyncConfig(cfg Config) *SyncConfig {
	return &SyncConfig{cfg: cfg}
}

// Get returns a copy of the current configuration.
func (s *SyncConfig) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Set replaces the current configuration.
func (s *SyncConfig) Set(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}
