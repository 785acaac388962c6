//go:build !windows
// +build !windows

package storage

import "golang.org/x/sys/unix"

// writable reports whether the current user can write to path.
func writable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}
