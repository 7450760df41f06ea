package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence; flags are
// applied by the caller on top of the returned Config.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("log.level", def.LogLevel)
	v.SetDefault("log.format", def.LogFormat)
	v.SetDefault("output.format", def.OutputFormat)
	v.SetDefault("input.format", def.InputFormat)

	// Bind environment variables with HX_ prefix
	v.SetEnvPrefix("HX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided; viper picks the parser from the extension
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		LogLevel:     strings.ToLower(v.GetString("log.level")),
		LogFormat:    strings.ToLower(v.GetString("log.format")),
		OutputFormat: strings.ToLower(v.GetString("output.format")),
		InputFormat:  strings.ToLower(v.GetString("input.format")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
