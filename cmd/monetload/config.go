package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the bulk-load CLI configuration. Values come from a JSON
// config file and environment variables; the environment takes precedence.
type Config struct {
	Host       string `json:"host" mapstructure:"host"`
	Port       int    `json:"port" mapstructure:"port"`
	Database   string `json:"database" mapstructure:"database"`
	User       string `json:"user" mapstructure:"user"`
	Password   string `json:"password" mapstructure:"password"`
	ClientPath string `json:"client-path" mapstructure:"client-path"`
	LogLevel   string `json:"log-level" mapstructure:"log-level"`
}

var requiredFields = []string{
	"host",
	"database",
	"user",
	"password",
}

// field: default value
var optionalFields = map[string]interface{}{
	"port":        50000,
	"client-path": "mclient",
	"log-level":   "INFO",
}

// InitConfig reads configuration from an optional JSON file and
// environment variables prefixed MONETLOAD_.
func InitConfig(configFilePath string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("monetload")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	for _, field := range requiredFields {
		v.BindEnv(field)
	}
	for field, defaultValue := range optionalFields {
		v.BindEnv(field)
		v.SetDefault(field, defaultValue)
	}

	if configFilePath != "" {
		v.SetConfigFile(configFilePath)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	for _, field := range requiredFields {
		if !v.IsSet(field) {
			return nil, fmt.Errorf("missing required config field: %s", field)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	return &config, nil
}
