package config

// Config represents the complete configuration structure
type Config struct {
	Client  ClientConfig  `mapstructure:"client"`
	OAuth   OAuthConfig   `mapstructure:"oauth"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ClientConfig holds the API credentials and call defaults
type ClientConfig struct {
	ID     string `mapstructure:"id"`
	Secret string `mapstructure:"secret"`
	Region string `mapstructure:"region"`
	Locale string `mapstructure:"locale"`
}

// OAuthConfig holds settings for the authorization-code login helper
type OAuthConfig struct {
	RedirectPort int      `mapstructure:"redirect_port"`
	Scopes       []string `mapstructure:"scopes"`
	TokenFile    string   `mapstructure:"token_file"`
}

// HTTPConfig contains HTTP transport settings
type HTTPConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
