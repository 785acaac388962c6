package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naveend/fapack/internal/storage"
)

// newStatCmd creates the 'stat' command.
func newStatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stat <path>...",
		Short: "Show file attributes (read-only, directory, archive, temporary)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var firstErr error
			for _, path := range args {
				attrs, err := storage.Stat(path)
				if err != nil {
					GetLogger().Errorf("%s: %v", path, err)
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: read-only=%t directory=%t archive=%t temporary=%t\n",
					path, attrs.ReadOnly, attrs.Directory, attrs.Archive, attrs.Temporary)
			}
			return firstErr
		},
	}
	return cmd
}
