package texgen

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/naveend/fapack/internal/storage"
)

// CopyOptions controls asset matching.
type CopyOptions struct {
	// IgnoreCase matches file basenames case-insensitively.
	IgnoreCase bool
	// Recursive searches the whole source tree instead of one level.
	Recursive bool
}

// CopyAssets copies files matching pattern from the source directory
// into subdir under the output directory. Matching is by glob against
// the path one level deep, or against basenames when searching
// recursively. Individual copy failures are logged and skipped; the
// returned slice holds the destination paths that were written.
func (b *Builder) CopyAssets(pattern, subdir string, opts CopyOptions) []string {
	destDir := filepath.Join(b.OutputDir, subdir)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		b.log.Errorf("failed to create %s: %v", destDir, err)
		return nil
	}

	matches, err := b.findAssets(pattern, opts)
	if err != nil {
		b.log.Errorf("asset pattern %q: %v", pattern, err)
		return nil
	}

	var copied []string
	for _, src := range matches {
		info, err := os.Stat(src)
		if err != nil || info.IsDir() {
			continue
		}

		dst := filepath.Join(destDir, filepath.Base(src))
		if err := storage.CopyFile(src, dst); err != nil {
			b.log.Errorf("failed to copy %s: %v", filepath.Base(src), err)
			continue
		}
		b.log.Debugf("copied %s to %s", filepath.Base(src), dst)
		copied = append(copied, dst)
	}
	return copied
}

func (b *Builder) findAssets(pattern string, opts CopyOptions) ([]string, error) {
	if !opts.Recursive && !opts.IgnoreCase {
		return filepath.Glob(filepath.Join(b.SourceDir, pattern))
	}

	// Recursive or case-insensitive matching walks the tree and
	// compares basenames.
	match := func(name string) bool {
		p := pattern
		if opts.IgnoreCase {
			name = strings.ToLower(name)
			p = strings.ToLower(p)
		}
		ok, err := filepath.Match(p, name)
		return err == nil && ok
	}

	var matches []string
	err := filepath.WalkDir(b.SourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtrees are skipped, not fatal
		}
		if d.IsDir() {
			if !opts.Recursive && path != b.SourceDir {
				return fs.SkipDir
			}
			return nil
		}
		if match(d.Name()) {
			matches = append(matches, path)
		}
		return nil
	})
	return matches, err
}
