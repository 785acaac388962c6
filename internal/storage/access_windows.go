//go:build windows
// +build windows

package storage

import "os"

// writable reports whether path carries the owner write bit. Windows
// maps the read-only file attribute onto this bit.
func writable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0200 != 0
}
