// Package cli provides the command-line interface for fapack.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/naveend/fapack/internal/config"
	"github.com/naveend/fapack/internal/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// Global logger
	logger *logging.Logger

	// Loaded configuration, available to all commands after
	// PersistentPreRunE.
	cfg *config.Config
)

// Version is set by the main package at startup.
var Version = "v1.0.0-dev"

// GetLogger returns the CLI logger, initializing it if needed.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return logger
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fapack",
		Short: "fapack - package FontAwesome 6 as a LaTeX style",
		Long: `fapack ` + Version + `
Converts a FontAwesome 6 desktop distribution into a LaTeX package:
icon macro definitions plus fonts and licenses in an output tree.

It can also locate and download the current release archive from the
vendor site, and manage local folder trees with concurrent
copy/move/delete.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = logging.NewDefaultLogger()
			if verbose {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}

			path := cfgFile
			if path == "" {
				path = config.DefaultConfigPath()
			}
			loaded, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")

	rootCmd.Version = Version

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newFolderCmd())
	rootCmd.AddCommand(newStatCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// Execute runs the CLI, wiring SIGINT/SIGTERM to context cancellation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		GetLogger().Errorf("%v", err)
		os.Exit(1)
	}
}
