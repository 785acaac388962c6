package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// Attributes classifies a filesystem path. A pure function of
// filesystem state; nothing here mutates.
type Attributes struct {
	ReadOnly  bool // The item is not writable by the current user
	Directory bool // The item is a directory
	Archive   bool // The item is a recognized archive container
	Temporary bool // The item looks like a temporary file
}

// Stat classifies the file or directory at path.
func Stat(path string) (Attributes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Attributes{}, err
	}

	var attr Attributes
	if info.IsDir() {
		attr.Directory = true
		return attr, nil
	}

	attr.ReadOnly = !writable(path)
	attr.Temporary = IsTempFile(path)
	attr.Archive = IsArchive(path)
	return attr, nil
}

// tempSuffixes, tempNames and the prefix checks below follow common
// editor/browser/OS conventions for scratch files.
var tempSuffixes = []string{".tmp", ".temp", ".crdownload", ".part", ".bak", ".dmp"}

var tempNames = map[string]bool{
	"thumbs.db":   true,
	"desktop.ini": true,
	".ds_store":   true,
}

// IsTempFile reports whether path looks like a temporary file, by
// filename pattern or by containment in an OS temp directory.
func IsTempFile(path string) bool {
	name := strings.ToLower(filepath.Base(path))

	if tempNames[name] {
		return true
	}
	if strings.HasPrefix(name, "~") || strings.HasPrefix(name, "._") {
		return true
	}
	for _, suffix := range tempSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	return inTempDir(path)
}

// inTempDir reports whether path sits under a known temp location.
func inTempDir(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	candidates := []string{
		os.Getenv("TEMP"),
		os.Getenv("TMP"),
		os.Getenv("TMPDIR"),
		"/tmp",
		"/var/tmp",
		"/private/var/folders", // macOS per-user temp
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, "temp"), filepath.Join(home, "tmp"))
	}

	for _, dir := range candidates {
		if dir == "" {
			continue
		}
		expanded, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if strings.HasPrefix(abs, expanded+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}
