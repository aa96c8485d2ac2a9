package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the dvtool configuration file (~/.config/dvtool/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
	DataDir       string `yaml:"data_dir"`

	// Rendering
	ExportFormat string   `yaml:"export_format"`
	ClipPercent  *float64 `yaml:"clip_percent"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dvtool", "config.yaml")
}

// LoadConfig reads the config file at path. A missing file yields a zero
// Config; a malformed one is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

func applyLoggingConfig(c *cli.Command, cfg Config, level, format *string) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		*level = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		*format = cfg.LogFormat
	}
}

// applyServeConfig applies config file defaults to serve command variables
// when the corresponding flag was not set.
func applyServeConfig(c *cli.Command, cfg Config, addr, dataDir *string, clip *float64) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.DataDir != "" && !c.IsSet("data-dir") {
		*dataDir = cfg.DataDir
	}
	if cfg.ClipPercent != nil && !c.IsSet("clip") {
		*clip = *cfg.ClipPercent
	}
}

func applyExportConfig(c *cli.Command, cfg Config, format *string, clip *float64) {
	if cfg.ExportFormat != "" && !c.IsSet("format") {
		*format = cfg.ExportFormat
	}
	if cfg.ClipPercent != nil && !c.IsSet("clip") {
		*clip = *cfg.ClipPercent
	}
}
