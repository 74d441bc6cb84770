package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessro/tapedeck/internal/app"
	"github.com/tessro/tapedeck/internal/config"
	tderr "github.com/tessro/tapedeck/internal/errors"
	"github.com/tessro/tapedeck/internal/logger"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tapedeck",
	Short: "Mixtapes for the terminal",
	Long: `Tapedeck keeps a shelf of mixtapes built from the JioSaavn catalog and
plays them through a click-wheel or cassette deck interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.tapedeckrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// newLogger builds the logger from the [log] section. Verbose output forces
// debug level.
func newLogger() *logger.Logger {
	lc := logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}
	if verbose {
		lc.Level = "debug"
	}
	return logger.New(lc)
}

// appOptions lets tests swap the storage backend and audio transport.
var appOptions []app.Option

// withApp builds the application, runs fn and releases it.
func withApp(fn func(a *app.App) error) error {
	log := newLogger()
	defer func() { _ = log.Close() }()

	a := app.New(cfg, log, appOptions...)
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("failed to close storage", "error", err)
		}
	}()
	return fn(a)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, tderr.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
