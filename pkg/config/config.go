package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds runtime settings shared by the server and the CLI.
type Config struct {
	Port        string `mapstructure:"port"`
	OutputDir   string `mapstructure:"output_dir"`
	ServiceTop  int    `mapstructure:"service_top"`
	CustomerTop int    `mapstructure:"customer_top"`
	TableLimit  int    `mapstructure:"table_limit"`
}

// Build loads configuration from defaults, an optional config file, the
// environment (SALES_* variables, .env honored) and finally any bound flags.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	_ = gotenv.Load()

	v := viper.New()
	v.SetDefault("port", "3000")
	v.SetDefault("output_dir", "")
	v.SetDefault("service_top", 10)
	v.SetDefault("customer_top", 10)
	v.SetDefault("table_limit", 100)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SALES")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
