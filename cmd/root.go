package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mistweaver/bnet/blizzard"
	"github.com/mistweaver/bnet/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *blizzard.Client

	version   = "dev"
	buildTime = "unknown"

	// Command flags
	regionFlag string
	localeFlag string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bnet",
	Short: "A CLI for the Blizzard game-data and profile APIs",
	Long: `bnet is a CLI for calling Blizzard Battle.net API endpoints by name.

Endpoints are declared in versioned definition files and bound at
startup; any method listed by 'bnet endpoints' can be invoked with
'bnet get' or 'bnet search'. OAuth tokens are acquired and refreshed
automatically from the configured client credentials.`,
	PersistentPreRunE: initializeApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// Release pooled connections on every exit path.
		if client != nil {
			client.Close()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records the build metadata shown by the version command.
func SetVersion(v, t string) {
	version = v
	buildTime = t
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&regionFlag, "region", "", "API region (overrides config)")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "response locale (overrides config)")
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Override call defaults from command line if specified
	if regionFlag != "" {
		cfg.Client.Region = regionFlag
	}
	if localeFlag != "" {
		cfg.Client.Locale = localeFlag
	}

	client, err = blizzard.NewClient(
		cfg.Client.ID,
		cfg.Client.Secret,
		blizzard.Region(cfg.Client.Region),
		logger,
		blizzard.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// callParams turns key=value arguments into call parameters, filling
// in the configured region and locale defaults.
func callParams(args []string) (blizzard.Params, error) {
	params := blizzard.Params{
		"region": cfg.Client.Region,
		"locale": cfg.Client.Locale,
	}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", arg)
		}
		params[key] = value
	}
	return params, nil
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No client needed; skip the root initialization.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bnet %s (built %s)\n", version, buildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
