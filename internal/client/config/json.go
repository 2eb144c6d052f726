package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/clemsonMakerspace/unified-makerspace-sub004/internal/timex"
)

// FileConfig is a DTO used exclusively for decoding config files. Pointer
// fields distinguish "absent" from zero so that a file only overrides what
// it names.
type FileConfig struct {
	BaseURL       *string         `json:"base_url" yaml:"base_url"`
	Timeout       *timex.Duration `json:"timeout" yaml:"timeout"`
	MaxAttempts   *int            `json:"max_attempts" yaml:"max_attempts"`
	BackoffBase   *timex.Duration `json:"backoff_base" yaml:"backoff_base"`
	AllowInsecure *bool           `json:"allow_insecure" yaml:"allow_insecure"`
	LogLevel      *string         `json:"log_level" yaml:"log_level"`
	MetricsFile   *string         `json:"metrics_file" yaml:"metrics_file"`
}

// LoadFile overlays cfg with the values found in path. An empty path is a
// no-op.
func LoadFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.BaseURL != nil {
		cfg.BaseURL = *fc.BaseURL
	}
	if fc.Timeout != nil {
		cfg.Timeout = fc.Timeout.Duration
	}
	if fc.MaxAttempts != nil {
		cfg.MaxAttempts = *fc.MaxAttempts
	}
	if fc.BackoffBase != nil {
		cfg.BackoffBase = fc.BackoffBase.Duration
	}
	if fc.AllowInsecure != nil {
		cfg.AllowInsecure = *fc.AllowInsecure
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.MetricsFile != nil {
		cfg.MetricsFile = *fc.MetricsFile
	}
}
