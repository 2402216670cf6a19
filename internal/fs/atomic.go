package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// TempSuffix marks in-progress writes. Listings must skip such files.
const TempSuffix = ".tmp"

// IsTemp reports whether name is an in-progress write.
func IsTemp(name string) bool {
	return strings.HasSuffix(name, TempSuffix)
}

// WriteFileAtomic replaces path with data.
//
// The data is written to a uniquely named sibling, synced, renamed over
// path, and the parent directory is synced to persist the rename.
// Concurrent writers to the same path each publish a complete file; the
// last rename wins.
func WriteFileAtomic(fsys FileSystem, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmpPath := path + "." + uuid.NewString() + TempSuffix
	f, err := fsys.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		fsys.Remove(tmpPath)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		fsys.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		fsys.Remove(tmpPath)
		return err
	}

	if err := fsys.Rename(tmpPath, path); err != nil {
		fsys.Remove(tmpPath)
		return err
	}

	return SyncDir(fsys, dir)
}

// SyncDir fsyncs a directory.
func SyncDir(fsys FileSystem, dir string) error {
	f, err := fsys.OpenFile(dir, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
