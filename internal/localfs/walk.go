// Package localfs provides local filesystem enumeration shared by the
// transfer engine and the CLI.
package localfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Enumeration failures that abort a transfer call before any fan-out.
var (
	ErrNotFound      = errors.New("root does not exist")
	ErrNotADirectory = errors.New("root is not a directory")
)

// FileEntry represents a file or directory in the local filesystem.
type FileEntry struct {
	Path    string      // Full path to the file
	Name    string      // Base name of the file
	Size    int64       // Size in bytes (0 for directories)
	IsDir   bool        // True if this is a directory
	ModTime time.Time   // Last modification time
	Mode    fs.FileMode // File mode/permissions
}

// Tree is a snapshot of a directory's contents, captured in a single
// traversal pass. Paths are relative to the root; the root itself is
// excluded. Directories appear before their contents.
type Tree struct {
	Dirs  []string
	Files []string
}

// CollectTree walks the tree under root and returns the relative paths of
// every directory and file beneath it.
//
// The traversal is read-only and aborts on the first error it encounters
// (e.g. an unreadable subdirectory): a partial enumeration is never
// returned. Per-file transfer errors are the executor's concern, not
// the enumerator's.
func CollectTree(root string) (*Tree, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, root)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}

	tree := &Tree{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("enumeration failed at %s: %w", path, err)
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, err)
		}

		if d.IsDir() {
			tree.Dirs = append(tree.Dirs, rel)
		} else {
			tree.Files = append(tree.Files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tree, nil
}

// Stat returns a FileEntry for a single path.
func Stat(path string) (FileEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileEntry{}, err
	}
	return FileEntry{
		Path:    path,
		Name:    filepath.Base(path),
		Size:    info.Size(),
		IsDir:   info.IsDir(),
		ModTime: info.ModTime(),
		Mode:    info.Mode(),
	}, nil
}
