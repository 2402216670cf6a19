package fs

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrInjected is the default error returned by injected faults.
var ErrInjected = errors.New("injected fault error")

// Fault selects which calls fail for a matching path.
type Fault struct {
	FailOnOpen   bool
	FailOnWrite  bool
	FailOnSync   bool
	FailOnRename bool
	FailOnRemove bool
	FailOnList   bool
	Err          error
}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

// FaultyFS fails calls on paths that match a rule and forwards the rest.
// Rules match when the pattern is a substring of the path.
type FaultyFS struct {
	FS    FileSystem
	mu    sync.Mutex
	rules map[string]Fault
}

// NewFaultyFS wraps inner, or Default when inner is nil.
func NewFaultyFS(inner FileSystem) *FaultyFS {
	if inner == nil {
		inner = Default
	}
	return &FaultyFS{
		FS:    inner,
		rules: make(map[string]Fault),
	}
}

// AddRule adds a fault injection rule for a path pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

// ClearRules removes all rules.
func (f *FaultyFS) ClearRules() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = make(map[string]Fault)
}

// match merges every rule whose pattern occurs in name.
func (f *FaultyFS) match(name string) Fault {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out Fault
	for pattern, rule := range f.rules {
		if !strings.Contains(name, pattern) {
			continue
		}
		out.FailOnOpen = out.FailOnOpen || rule.FailOnOpen
		out.FailOnWrite = out.FailOnWrite || rule.FailOnWrite
		out.FailOnSync = out.FailOnSync || rule.FailOnSync
		out.FailOnRename = out.FailOnRename || rule.FailOnRename
		out.FailOnRemove = out.FailOnRemove || rule.FailOnRemove
		out.FailOnList = out.FailOnList || rule.FailOnList
		if rule.Err != nil {
			out.Err = rule.Err
		}
	}
	return out
}

func (f *FaultyFS) OpenFile(path string, flag int, mode os.FileMode) (File, error) {
	fault := f.match(path)
	if fault.FailOnOpen {
		return nil, fault.err()
	}
	file, err := f.FS.OpenFile(path, flag, mode)
	if err != nil {
		return nil, err
	}
	return &faultyFile{File: file, fault: fault}, nil
}

func (f *FaultyFS) Remove(path string) error {
	if fault := f.match(path); fault.FailOnRemove {
		return fault.err()
	}
	return f.FS.Remove(path)
}

func (f *FaultyFS) Rename(from, to string) error {
	if fault := f.match(to); fault.FailOnRename {
		return fault.err()
	}
	return f.FS.Rename(from, to)
}

func (f *FaultyFS) MkdirAll(dir string, mode os.FileMode) error {
	return f.FS.MkdirAll(dir, mode)
}

func (f *FaultyFS) ReadDir(dir string) ([]os.DirEntry, error) {
	if fault := f.match(dir); fault.FailOnList {
		return nil, fault.err()
	}
	return f.FS.ReadDir(dir)
}

type faultyFile struct {
	File
	fault Fault
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if ff.fault.FailOnWrite {
		return 0, ff.fault.err()
	}
	return ff.File.Write(p)
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return ff.fault.err()
	}
	return ff.File.Sync()
}
