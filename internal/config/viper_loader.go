package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadConfigFromViper loads configuration using viper, for the advanced
// scenario where a caller wants the environment-variable and remote
// config-source support viper brings on top of the plain TOML loader.
func LoadConfigFromViper(configPath string) (*Config, error) {
	v := viper.New()
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("pymap")
	v.AutomaticEnv()

	cfg := DefaultConfig()
	if err := v.UnmarshalKey("search", &cfg.Search); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search config: %w", err)
	}
	if err := v.UnmarshalKey("cache", &cfg.Cache); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache config: %w", err)
	}
	if err := v.UnmarshalKey("parser", &cfg.Parser); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parser config: %w", err)
	}
	return cfg, nil
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("search.roots", []string{})
	v.SetDefault("search.exclude_patterns", []string{})
	v.SetDefault("cache.path", DefaultCachePath)
	v.SetDefault("parser.shallow_std", DefaultShallowStd)
}
