package config

import (
	"testing"
)

func validConfig() *Config {
	return &Config{
		Client: ClientConfig{
			ID:     "client-id",
			Secret: "client-secret",
			Region: "us",
			Locale: "en_US",
		},
		OAuth: OAuthConfig{
			RedirectPort: 8787,
			TokenFile:    "access_token.txt",
		},
		HTTP: HTTPConfig{
			TimeoutSeconds: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing client id",
			mutate:  func(c *Config) { c.Client.ID = "" },
			wantErr: true,
		},
		{
			name:    "missing client secret",
			mutate:  func(c *Config) { c.Client.Secret = "" },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.HTTP.TimeoutSeconds = 0 },
			wantErr: true,
		},
		{
			name:    "redirect port out of range",
			mutate:  func(c *Config) { c.OAuth.RedirectPort = 70000 },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name:   "trace level is accepted",
			mutate: func(c *Config) { c.Logging.Level = "trace" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
