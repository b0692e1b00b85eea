package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config controls the synthetic workload.
type Config struct {
	Records   int       `yaml:"records" mapstructure:"records"`
	Customers int       `yaml:"customers" mapstructure:"customers"`
	Rounds    int       `yaml:"rounds" mapstructure:"rounds"`
	Seed      uint64    `yaml:"seed" mapstructure:"seed"`
	Log       LogConfig `yaml:"log" mapstructure:"log"`
}

// LogConfig selects the zerolog level and output format.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ApplyDefaults fills zero fields.
func (c *Config) ApplyDefaults() {
	if c.Records == 0 {
		c.Records = 100_000
	}
	if c.Customers == 0 {
		c.Customers = 1_000
	}
	if c.Rounds == 0 {
		c.Rounds = 3
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	c.Log.ApplyDefaults()
}

// ApplyDefaults fills zero fields.
func (c *LogConfig) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	if c.Records < 0 {
		return fmt.Errorf("records must not be negative (got: %d)", c.Records)
	}
	if c.Customers <= 0 {
		return fmt.Errorf("customers must be positive (got: %d)", c.Customers)
	}
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive (got: %d)", c.Rounds)
	}
	return c.Log.Validate()
}

// Validate checks level and format names.
func (c *LogConfig) Validate() error {
	validLevels := []string{"trace", "debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, c.Level) {
		return fmt.Errorf("log.level must be one of %v (got: %s)", validLevels, c.Level)
	}
	validFormats := []string{"console", "json"}
	if !slices.Contains(validFormats, c.Format) {
		return fmt.Errorf("log.format must be one of %v (got: %s)", validFormats, c.Format)
	}
	return nil
}

// LoadConfig layers flags over LAZYBENCH_* environment variables over an
// optional YAML file, then applies defaults and validates.
func LoadConfig(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("lazybench", pflag.ContinueOnError)
	configFile := fs.String("config", "", "YAML config file")
	fs.Int("records", 0, "number of synthetic orders")
	fs.Int("customers", 0, "number of distinct customers")
	fs.Int("rounds", 0, "number of measured rounds")
	fs.Uint64("seed", 0, "random seed")
	fs.String("log.level", "", "log level (trace, debug, info, warn, error)")
	fs.String("log.format", "", "log format (console, json)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", *configFile, err)
		}
	}

	v.SetEnvPrefix("LAZYBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"records", "customers", "rounds", "seed", "log.level", "log.format"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	// Only flags set on the command line override the layers below.
	var bindErr error
	fs.Visit(func(f *pflag.Flag) {
		if f.Name == "config" || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(f.Name, f)
	})
	if bindErr != nil {
		return nil, bindErr
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
