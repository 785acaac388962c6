package storage

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestIsTempFilePatterns(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/home/user/docs/~$report.docx", true}, // Office lock file
		{"/home/user/docs/~scratch.txt", true},
		{"/home/user/docs/notes.tmp", true},
		{"/home/user/docs/notes.temp", true},
		{"/home/user/dl/video.mp4.crdownload", true},
		{"/home/user/dl/iso.part", true},
		{"/home/user/docs/old.bak", true},
		{"/home/user/crash.dmp", true},
		{"/home/user/photos/Thumbs.db", true},
		{"/home/user/photos/desktop.ini", true},
		{"/home/user/photos/.DS_Store", true},
		{"/home/user/photos/._shadow.jpg", true}, // macOS resource fork
		{"/tmp/anything.txt", true},              // temp-dir containment
		{"/var/tmp/build.log", true},
		{"/home/user/docs/report.txt", false},
		{"/home/user/docs/template.dotx", false},
		{"/home/user/partitions.txt", false}, // ".part" must match as suffix only
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsTempFile(tt.path); got != tt.want {
				t.Errorf("IsTempFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsArchiveSignatures(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want bool
	}{
		{"zip", []byte{'P', 'K', 0x03, 0x04, 0, 0}, true},
		{"zip-empty", []byte{'P', 'K', 0x05, 0x06}, true},
		{"7z", []byte{'7', 'z', 0xbc, 0xaf, 0x27, 0x1c}, true},
		{"rar4", []byte{'R', 'a', 'r', '!', 0x1a, 0x07, 0x00}, true},
		{"rar5", []byte{'R', 'a', 'r', '!', 0x1a, 0x07, 0x01, 0x00}, true},
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, true},
		{"bzip2", []byte{'B', 'Z', 'h', '9'}, true},
		{"xz", []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, true},
		{"zstd", []byte{0x28, 0xb5, 0x2f, 0xfd}, true},
		{"text", []byte("hello world"), false},
		{"empty", nil, false},
		{"pk-but-not-zip", []byte{'P', 'K', 0x01, 0x02}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkArchiveSignature(tt.head); got != tt.want {
				t.Errorf("checkArchiveSignature(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsArchiveOnRealZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("inner.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("payload")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	if !IsArchive(path) {
		t.Error("IsArchive() = false for a valid zip")
	}
}

func TestIsArchiveOnPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readme.md")
	if err := os.WriteFile(path, []byte("# not an archive\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if IsArchive(path) {
		t.Error("IsArchive() = true for plain text")
	}
}

func TestIsArchiveOnDirectory(t *testing.T) {
	if IsArchive(t.TempDir()) {
		t.Error("IsArchive() = true for a directory")
	}
}

func TestStatClassifiesDirectory(t *testing.T) {
	attr, err := Stat(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !attr.Directory {
		t.Error("Directory = false for a directory")
	}
	if attr.ReadOnly || attr.Archive || attr.Temporary {
		t.Errorf("unexpected attributes for directory: %+v", attr)
	}
}

func TestStatClassifiesReadOnlyFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks are bypassed when running as root")
	}

	path := filepath.Join(t.TempDir(), "frozen.txt")
	if err := os.WriteFile(path, []byte("x"), 0444); err != nil {
		t.Fatal(err)
	}

	attr, err := Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !attr.ReadOnly {
		t.Error("ReadOnly = false for mode 0444 file")
	}
	if attr.Directory {
		t.Error("Directory = true for a file")
	}
}

func TestStatMissingPath(t *testing.T) {
	if _, err := Stat(filepath.Join(t.TempDir(), "ghost")); err == nil {
		t.Error("Stat() succeeded on missing path")
	}
}
