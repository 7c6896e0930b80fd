package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the ddsinfo configuration file (~/.config/ddsinfo/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	// Output is the default info output format (text, json, yaml).
	Output    string `yaml:"output"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// DecodeWorkers is passed to the bcn decoder by extract.
	DecodeWorkers *int `yaml:"decode_workers"`

	// Encode defaults.
	EncodeFormat string `yaml:"encode_format"`
	MaxMipMaps   *int   `yaml:"max_mipmaps"`
	Fast         *bool  `yaml:"fast"`

	// Pack stores COPY blocks only when false.
	Compress *bool `yaml:"compress"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ddsinfo", "config.yaml")
}

// loadConfig reads path, or the default location when path is empty. A
// missing default file yields a zero Config; a missing explicit file is an
// error.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
		if path == "" {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// setup loads the config file, applies its logging defaults to flags the
// user left alone and installs the logger.
func setup(cmd *cli.Command) (Config, *slog.Logger, error) {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return Config{}, nil, err
	}

	root := cmd.Root()
	if cfg.LogLevel != "" && !root.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !root.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
	level := parseLevel(logLevel)
	if debug {
		level = slog.LevelDebug
	}

	log := newLogger(os.Stderr, logFormat, level)
	slog.SetDefault(log)
	return cfg, log, nil
}

// applyOutputConfig fills the info output format from cfg when --output was not set.
func applyOutputConfig(c *cli.Command, cfg Config, output *string) {
	if cfg.Output != "" && !c.IsSet("output") {
		*output = cfg.Output
	}
}

// applyEncodeConfig fills encode defaults from cfg for flags not given.
func applyEncodeConfig(c *cli.Command, cfg Config, format *string, mips *int, fast *bool) {
	if cfg.EncodeFormat != "" && !c.IsSet("format") {
		*format = cfg.EncodeFormat
	}
	if cfg.MaxMipMaps != nil && !c.IsSet("mips") {
		*mips = *cfg.MaxMipMaps
	}
	if cfg.Fast != nil && !c.IsSet("fast") {
		*fast = *cfg.Fast
	}
}
