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
	OutputDir     string `mapstructure:"output_dir" yaml:"output_dir"`
	Clusters      int    `mapstructure:"clusters" yaml:"clusters"`
	Seed          int64  `mapstructure:"seed" yaml:"seed"`
	MaxIterations int    `mapstructure:"max_iterations" yaml:"max_iterations"`
	ChartDPI      int    `mapstructure:"chart_dpi" yaml:"chart_dpi"`
	MaxRows       int    `mapstructure:"max_rows" yaml:"max_rows"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.storelens/config.yaml, creating the directory if
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
		dir := filepath.Join(home, ".storelens")
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
	v.SetEnvPrefix("STORELENS")
	v.AutomaticEnv()

	v.SetDefault("output_dir", ".")
	v.SetDefault("clusters", 3)
	v.SetDefault("seed", 42)
	v.SetDefault("max_iterations", 300)
	v.SetDefault("chart_dpi", 150)
	v.SetDefault("max_rows", 0)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".storelens")
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
