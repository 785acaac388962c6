// Package storage implements the bounded concurrent folder transfer
// engine: recursive copy, move and delete of a directory tree with a
// configurable cap on simultaneously in-flight file operations.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/naveend/fapack/internal/config"
	"github.com/naveend/fapack/internal/localfs"
	"github.com/naveend/fapack/internal/progress"
)

// DefaultMaxConcurrent bounds in-flight file operations when Options
// doesn't override it. Trades descriptor pressure against throughput.
const DefaultMaxConcurrent = 100

// Op identifies a file-level operation kind.
type Op string

const (
	OpCopy   Op = "copy"
	OpMove   Op = "move"
	OpDelete Op = "delete"
)

// UnitError records one file operation that failed. Unit failures never
// abort the call they belong to.
type UnitError struct {
	Path string // Source path of the unit
	Op   Op
	Err  error
}

func (e UnitError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e UnitError) Unwrap() error { return e.Err }

// ErrorSink observes unit failures as they happen. Observe is called
// from many goroutines and must not block the caller for long.
type ErrorSink interface {
	Observe(UnitError)
}

// ErrorSinkFunc adapts a function to the ErrorSink interface.
type ErrorSinkFunc func(UnitError)

func (f ErrorSinkFunc) Observe(e UnitError) { f(e) }

// Options tunes one transfer call.
type Options struct {
	// MaxConcurrent caps simultaneous in-flight file operations.
	// Zero or negative selects DefaultMaxConcurrent.
	MaxConcurrent int

	// Progress receives one report per settled unit. May be nil.
	Progress progress.Sink

	// Errors observes failed units. May be nil.
	Errors ErrorSink
}

// Result summarizes a settled call. The call-level error is separate:
// it is non-nil only for enumeration or directory-creation failures.
type Result struct {
	Op          Op
	TotalFiles  int
	FilesFailed int
	Errors      []UnitError
}

// FilesSucceeded returns the number of units that completed without error.
func (r *Result) FilesSucceeded() int { return r.TotalFiles - r.FilesFailed }

// Folder is a handle to a directory tree on the local filesystem.
type Folder struct {
	path string
}

// NewFolder creates (if necessary) and opens the folder name under
// rootPath. When rootPath is empty the per-user application data
// directory is used. A rootPath that names a file is replaced by its
// parent directory.
func NewFolder(name, rootPath string) (*Folder, error) {
	if rootPath == "" {
		dir, err := config.EnsureAppDataDir()
		if err != nil {
			return nil, err
		}
		rootPath = dir
	} else if info, err := os.Stat(rootPath); err == nil && !info.IsDir() {
		rootPath = filepath.Dir(rootPath)
	}

	path := filepath.Join(rootPath, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create folder %s: %w", path, err)
	}
	return &Folder{path: path}, nil
}

// OpenFolder opens an existing directory.
func OpenFolder(path string) (*Folder, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", localfs.ErrNotFound, path)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", localfs.ErrNotADirectory, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Folder{path: abs}, nil
}

// Path returns the folder's absolute path.
func (f *Folder) Path() string { return f.path }

// Name returns the folder's base name.
func (f *Folder) Name() string { return filepath.Base(f.path) }

// CopyTo copies the folder's contents into dest, creating it as needed.
func (f *Folder) CopyTo(ctx context.Context, dest string, opts Options) (*Result, error) {
	return f.run(ctx, OpCopy, dest, opts)
}

// MoveTo relocates the folder's contents into dest. After a successful
// unit the source path no longer resolves; emptied source directories
// are removed deepest first.
func (f *Folder) MoveTo(ctx context.Context, dest string, opts Options) (*Result, error) {
	return f.run(ctx, OpMove, dest, opts)
}

// Delete removes every file beneath the folder, then removes emptied
// directories deepest first. The root itself is left in place.
func (f *Folder) Delete(ctx context.Context, opts Options) (*Result, error) {
	return f.run(ctx, OpDelete, "", opts)
}

// run executes one transfer call: enumerate once, prepare destination
// directories, fan out one unit per file under the gate, join on
// all-settled, then clean up source directories for move/delete.
func (f *Folder) run(ctx context.Context, op Op, dest string, opts Options) (*Result, error) {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}

	tree, err := localfs.CollectTree(f.path)
	if err != nil {
		return nil, err
	}

	if op != OpDelete {
		if err := os.MkdirAll(dest, 0755); err != nil {
			return nil, fmt.Errorf("failed to create destination root: %w", err)
		}
		// Destination directories must exist before any file lands in them.
		for _, rel := range tree.Dirs {
			if err := os.MkdirAll(filepath.Join(dest, rel), 0755); err != nil {
				return nil, fmt.Errorf("failed to create destination directory %s: %w", rel, err)
			}
		}
	}

	total := len(tree.Files)
	result := &Result{Op: op, TotalFiles: total}

	var (
		completed atomic.Int64
		mu        sync.Mutex
		wg        sync.WaitGroup
	)
	gate := make(chan struct{}, opts.MaxConcurrent)

	for _, rel := range tree.Files {
		wg.Add(1)
		go func(rel string) {
			defer wg.Done()

			src := filepath.Join(f.path, rel)

			var unitErr error
			select {
			case <-ctx.Done():
				unitErr = ctx.Err()
			case gate <- struct{}{}:
				switch op {
				case OpCopy:
					unitErr = CopyFile(src, filepath.Join(dest, rel))
				case OpMove:
					unitErr = moveFile(src, filepath.Join(dest, rel))
				case OpDelete:
					unitErr = os.Remove(src)
				}
				<-gate
			}

			if unitErr != nil {
				ue := UnitError{Path: src, Op: op, Err: unitErr}
				mu.Lock()
				result.Errors = append(result.Errors, ue)
				result.FilesFailed++
				mu.Unlock()
				if opts.Errors != nil {
					opts.Errors.Observe(ue)
				}
			}

			// Exactly one increment per unit, success or failure.
			done := completed.Add(1)
			if opts.Progress != nil {
				opts.Progress.Report(int(done), total)
			}
		}(rel)
	}

	// All units settle before the call returns, even when some failed.
	wg.Wait()

	if op == OpMove || op == OpDelete {
		removeEmptyDirs(f.path, tree.Dirs)
	}

	return result, nil
}

// removeEmptyDirs removes emptied directories deepest first. A
// directory that is still populated (e.g. because a unit failed) is
// left in place; the attempt is not escalated.
func removeEmptyDirs(root string, dirs []string) {
	ordered := append([]string(nil), dirs...)
	sort.Slice(ordered, func(i, j int) bool {
		return strings.Count(ordered[i], string(os.PathSeparator)) >
			strings.Count(ordered[j], string(os.PathSeparator))
	})
	for _, rel := range ordered {
		_ = os.Remove(filepath.Join(root, rel))
	}
}
