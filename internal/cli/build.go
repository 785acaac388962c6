package cli

import (
	"github.com/spf13/cobra"

	"github.com/naveend/fapack/internal/texgen"
)

// newBuildCmd creates the 'build' command.
func newBuildCmd() *cobra.Command {
	var sourceDir string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the LaTeX package from an unpacked distribution",
		Long: `Generate fontawesome6.sty from an unpacked FontAwesome desktop
distribution and copy fonts and licenses into the output tree.

Example:
  fapack build --source fontawesome --output output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sourceDir == "" {
				sourceDir = cfg.SourceDir
			}
			if outputDir == "" {
				outputDir = cfg.OutputDir
			}

			builder, err := texgen.NewBuilder(sourceDir, outputDir)
			if err != nil {
				return err
			}
			if err := builder.Build(); err != nil {
				return err
			}

			GetLogger().Infof("package built in %s", outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceDir, "source", "s", "", "Unpacked distribution directory (default from config)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default from config)")
	return cmd
}
