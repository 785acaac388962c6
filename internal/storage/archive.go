package storage

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"os"

	"github.com/h2non/filetype"
)

// archiveMIMETypes are the container formats the classifier accepts
// from MIME detection.
var archiveMIMETypes = map[string]bool{
	"application/zip":              true,
	"application/x-zip-compressed": true,
	"application/x-tar":            true,
	"application/vnd.rar":          true,
	"application/x-rar-compressed": true,
	"application/x-7z-compressed":  true,
	"application/gzip":             true,
	"application/x-gzip":           true,
	"application/x-bzip2":          true,
	"application/x-xz":             true,
	"application/zstd":             true,
}

// IsArchive reports whether path is a common archive container.
// Container-format API checks (zip, tar) run before MIME detection;
// raw signature sniffing is the last resort.
func IsArchive(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	if isZip(path) || isTar(path) {
		return true
	}

	head, err := readHeader(path, 262)
	if err != nil || len(head) == 0 {
		return false
	}

	if t, err := filetype.Match(head); err == nil && archiveMIMETypes[t.MIME.Value] {
		return true
	}

	return checkArchiveSignature(head)
}

func isZip(path string) bool {
	r, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	r.Close()
	return true
}

func isTar(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	_, err = tar.NewReader(f).Next()
	return err == nil
}

// checkArchiveSignature matches raw file signatures for formats the
// container APIs and MIME matcher don't cover.
func checkArchiveSignature(head []byte) bool {
	signatures := [][]byte{
		{'P', 'K', 0x03, 0x04}, // ZIP local file header
		{'P', 'K', 0x05, 0x06}, // ZIP empty archive
		{'P', 'K', 0x07, 0x08}, // ZIP spanned archive
		{'7', 'z', 0xbc, 0xaf, 0x27, 0x1c},            // 7-Zip
		{'R', 'a', 'r', '!', 0x1a, 0x07, 0x00},        // RAR v1.5+
		{'R', 'a', 'r', '!', 0x1a, 0x07, 0x01, 0x00},  // RAR v5
		{0x1f, 0x8b, 0x08},                            // gzip (deflate)
		{'B', 'Z', 'h'},                               // bzip2
		{0xfd, '7', 'z', 'X', 'Z', 0x00},              // xz
		{0x28, 0xb5, 0x2f, 0xfd},                      // zstd
	}

	for _, sig := range signatures {
		if bytes.HasPrefix(head, sig) {
			return true
		}
	}
	return false
}

func readHeader(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := f.Read(buf)
	if read > 0 {
		return buf[:read], nil
	}
	return nil, err
}
