package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// ServerURL is the base URL of the optimization service.
	ServerURL string `mapstructure:"server_url" yaml:"server_url"`
	// HTTPTimeoutSec bounds service calls; 0 waits indefinitely, which is
	// the default because optimizations can run long.
	HTTPTimeoutSec int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	// DefaultK is the number of hotspots requested when -k is not given.
	DefaultK int `mapstructure:"default_k" yaml:"default_k"`
	// MinProbability is the per-hotspot species table noise floor.
	MinProbability float64 `mapstructure:"min_probability" yaml:"min_probability"`
	// MaxSpeciesRows caps each hotspot's species table.
	MaxSpeciesRows int `mapstructure:"max_species_rows" yaml:"max_species_rows"`
	// ServeAddr is the listen address for `listr serve`.
	ServeAddr string `mapstructure:"serve_addr" yaml:"serve_addr"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.listr/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".listr")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("LISTR")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server_url", "http://127.0.0.1:8000")
	v.SetDefault("http_timeout_sec", 0)
	v.SetDefault("default_k", 5)
	v.SetDefault("min_probability", 0.001)
	v.SetDefault("max_species_rows", 25)
	v.SetDefault("serve_addr", ":8080")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".listr")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
