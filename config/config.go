package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads the configuration from file. Client credentials can also
// come from the environment (BNET_CLIENT_ID / BNET_CLIENT_SECRET),
// which takes precedence over the file.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".bnet"))
		}

		// Check /etc
		v.AddConfigPath("/etc/bnet/")
	}

	v.SetEnvPrefix("BNET")
	v.BindEnv("client.id", "BNET_CLIENT_ID")
	v.BindEnv("client.secret", "BNET_CLIENT_SECRET")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Credentials from the environment alone are enough; only a
		// malformed file is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Call defaults
	v.SetDefault("client.region", "us")
	v.SetDefault("client.locale", "en_US")

	// OAuth helper defaults
	v.SetDefault("oauth.redirect_port", 8787)
	v.SetDefault("oauth.scopes", []string{"wow.profile"})
	v.SetDefault("oauth.token_file", "access_token.txt")

	// HTTP defaults
	v.SetDefault("http.timeout_seconds", 30)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Client.ID == "" || cfg.Client.Secret == "" {
		return fmt.Errorf("client.id and client.secret must be set (config file or BNET_CLIENT_ID/BNET_CLIENT_SECRET)")
	}

	if cfg.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be positive")
	}

	if cfg.OAuth.RedirectPort < 1 || cfg.OAuth.RedirectPort > 65535 {
		return fmt.Errorf("oauth.redirect_port must be a valid port")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
