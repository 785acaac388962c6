package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naveend/fapack/internal/config"
)

// newConfigCmd creates the 'config' command group.
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage fapack configuration",
		Long: `Configuration management commands.

Commands:
  show - Display current configuration
  set  - Update a configuration value
  path - Show configuration file path`,
	}

	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigSetCmd())
	configCmd.AddCommand(newConfigPathCmd())
	return configCmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source-dir:       %s\n", cfg.SourceDir)
			fmt.Fprintf(out, "output-dir:       %s\n", cfg.OutputDir)
			fmt.Fprintf(out, "max-concurrent:   %d\n", cfg.MaxConcurrent)
			fmt.Fprintf(out, "download-workers: %d\n", cfg.DownloadWorkers)
			fmt.Fprintf(out, "proxy-mode:       %s\n", cfg.ProxyMode)
			if cfg.ProxyHost != "" {
				fmt.Fprintf(out, "proxy-host:       %s\n", cfg.ProxyHost)
				fmt.Fprintf(out, "proxy-port:       %s\n", cfg.ProxyPort)
			}
			if cfg.NoProxy != "" {
				fmt.Fprintf(out, "no-proxy:         %s\n", cfg.NoProxy)
			}
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Update a configuration value",
		Long: `Update one configuration value and save the file.

Keys: source-dir, output-dir, max-concurrent, download-workers,
proxy-mode, proxy-host, proxy-port, proxy-user, no-proxy

Example:
  fapack config set proxy-mode basic
  fapack config set proxy-host proxy.corp.local`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := cfg.Set(key, value); err != nil {
				return err
			}

			path := cfgFile
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			GetLogger().Infof("configuration saved to %s", path)
			return nil
		},
	}
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				path = config.DefaultConfigPath()
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
