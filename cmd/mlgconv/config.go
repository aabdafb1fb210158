package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the mlgconv configuration file
// (~/.config/mlgconv/config.yaml). Every field is optional; CLI flags win
// when explicitly set.
type Config struct {
	DefaultFormat string `yaml:"default_format"`
	OutputDir     string `yaml:"output_dir"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mlgconv", "config.yaml")
}

// loadConfig reads the config file, returning a zero Config if it does not
// exist or cannot be parsed.
func loadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyCommonConfig applies config file defaults to the shared log flags
// when the corresponding CLI flag was not explicitly set.
func applyCommonConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

func applyConvertConfig(c *cli.Command, cfg Config, format, outDir *string) {
	applyCommonConfig(c, cfg)
	if cfg.DefaultFormat != "" && !c.IsSet("format") {
		*format = cfg.DefaultFormat
	}
	if cfg.OutputDir != "" && !c.IsSet("output-dir") {
		*outDir = cfg.OutputDir
	}
}

func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	applyCommonConfig(c, cfg)
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
