package cli

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/naveend/fapack/internal/events"
	"github.com/naveend/fapack/internal/progress"
	"github.com/naveend/fapack/internal/storage"
)

// newFolderCmd creates the 'folder' command group.
func newFolderCmd() *cobra.Command {
	folderCmd := &cobra.Command{
		Use:   "folder",
		Short: "Local folder operations (copy, move, delete)",
		Long: `Recursive folder operations with bounded concurrency. Failures on
individual files are reported and skipped; the operation always runs
to completion over the remaining files.`,
	}

	folderCmd.AddCommand(newFolderCopyCmd())
	folderCmd.AddCommand(newFolderMoveCmd())
	folderCmd.AddCommand(newFolderDeleteCmd())
	return folderCmd
}

func newFolderCopyCmd() *cobra.Command {
	var maxConcurrent int

	cmd := &cobra.Command{
		Use:   "copy <source> <dest>",
		Short: "Copy a folder tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := storage.OpenFolder(args[0])
			if err != nil {
				return err
			}
			return runTransfer(cmd, "Copying", maxConcurrent, func(opts storage.Options) (*storage.Result, error) {
				return folder.CopyTo(cmd.Context(), args[1], opts)
			})
		},
	}
	addMaxConcurrentFlag(cmd, &maxConcurrent)
	return cmd
}

func newFolderMoveCmd() *cobra.Command {
	var maxConcurrent int

	cmd := &cobra.Command{
		Use:   "move <source> <dest>",
		Short: "Move a folder tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := storage.OpenFolder(args[0])
			if err != nil {
				return err
			}
			return runTransfer(cmd, "Moving", maxConcurrent, func(opts storage.Options) (*storage.Result, error) {
				return folder.MoveTo(cmd.Context(), args[1], opts)
			})
		},
	}
	addMaxConcurrentFlag(cmd, &maxConcurrent)
	return cmd
}

func newFolderDeleteCmd() *cobra.Command {
	var maxConcurrent int
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <path>",
		Short: "Delete a folder's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := storage.OpenFolder(args[0])
			if err != nil {
				return err
			}
			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete all contents of %s? [y/N]: ", folder.Path())
				var answer string
				fmt.Fscanln(cmd.InOrStdin(), &answer)
				if answer != "y" && answer != "Y" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}
			return runTransfer(cmd, "Deleting", maxConcurrent, func(opts storage.Options) (*storage.Result, error) {
				return folder.Delete(cmd.Context(), opts)
			})
		},
	}
	addMaxConcurrentFlag(cmd, &maxConcurrent)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func addMaxConcurrentFlag(cmd *cobra.Command, v *int) {
	cmd.Flags().IntVar(v, "max-concurrent", 0, "Maximum files in flight (default from config)")
}

// runTransfer wires the progress bar and failure events around one
// folder operation and prints a summary.
func runTransfer(cmd *cobra.Command, verb string, maxConcurrent int, op func(storage.Options) (*storage.Result, error)) error {
	ui := &progress.LazyTransferUI{Verb: verb}

	bus := events.NewBus(events.DefaultBuffer)
	failures := bus.Subscribe(events.EventUnitFailed)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range failures {
			if f, ok := ev.(events.UnitFailedEvent); ok {
				fmt.Fprintf(ui.Writer(), "failed to %s %s: %v\n", f.Operation, f.Path, f.Err)
			}
		}
	}()

	if maxConcurrent <= 0 {
		maxConcurrent = cfg.MaxConcurrent
	}
	opts := storage.Options{
		MaxConcurrent: maxConcurrent,
		Progress:      ui,
		Errors: storage.ErrorSinkFunc(func(e storage.UnitError) {
			bus.PublishUnitFailure(e.Path, string(e.Op), e.Err)
		}),
	}

	result, err := op(opts)
	if err == nil {
		bus.PublishTransferComplete(string(result.Op), result.TotalFiles, result.FilesFailed)
	}

	bus.Close()
	wg.Wait()
	ui.Wait()

	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d files processed, %d failed\n",
		result.FilesSucceeded(), result.TotalFiles, result.FilesFailed)
	if result.FilesFailed > 0 {
		return fmt.Errorf("%d of %d files failed", result.FilesFailed, result.TotalFiles)
	}
	return nil
}
