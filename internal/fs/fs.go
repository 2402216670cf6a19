package fs

import (
	"io"
	"os"
)

// File is the part of *os.File the blob store touches: positional reads for
// record decoding, and write plus sync for atomic publishing.
type File interface {
	io.Writer
	io.ReaderAt
	io.Closer
	Sync() error
	Stat() (os.FileInfo, error)
}

// FileSystem is the set of directory operations a LocalStore performs.
type FileSystem interface {
	OpenFile(path string, flag int, mode os.FileMode) (File, error)
	Remove(path string) error
	Rename(from, to string) error
	MkdirAll(dir string, mode os.FileMode) error
	ReadDir(dir string) ([]os.DirEntry, error)
}

// osFS forwards to the os package.
type osFS struct{}

func (osFS) OpenFile(path string, flag int, mode os.FileMode) (File, error) {
	f, err := os.OpenFile(path, flag, mode)
	if err != nil {
		// Avoid a non-nil File holding a nil *os.File.
		return nil, err
	}
	return f, nil
}

func (osFS) Remove(path string) error                    { return os.Remove(path) }
func (osFS) Rename(from, to string) error                { return os.Rename(from, to) }
func (osFS) MkdirAll(dir string, mode os.FileMode) error { return os.MkdirAll(dir, mode) }
func (osFS) ReadDir(dir string) ([]os.DirEntry, error)   { return os.ReadDir(dir) }

// Default backs every LocalStore that is not given its own FileSystem.
var Default FileSystem = osFS{}
