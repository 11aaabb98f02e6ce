package domain

import (
	"path/filepath"
	"runtime"
	"strings"
)

// FileId is the canonical identity of a source file: an absolute path with
// symlinks resolved (where the caller can resolve them) and case normalized
// per host filesystem. Two FileIds are equal iff they name the same file.
type FileId string

// NewFileId canonicalizes an absolute path into a FileId. Callers on the
// scanning path should have already resolved symlinks (filepath.EvalSymlinks);
// NewFileId only normalizes separators and case.
func NewFileId(absPath string) FileId {
	p := filepath.Clean(absPath)
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		p = strings.ToLower(p)
	}
	return FileId(filepath.ToSlash(p))
}

// String returns the underlying path.
func (f FileId) String() string {
	return string(f)
}

// Base returns the file's base name without extension, applying the
// "index" special case: a file named index.* takes the name of its
// containing directory instead.
func (f FileId) Base() string {
	base := filepath.Base(string(f))
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	if name == "index" {
		dir := filepath.Dir(string(f))
		return filepath.Base(dir)
	}
	return name
}

// ByFileId sorts FileIds lexicographically; used everywhere the spec
// requires deterministic ordering keyed on file identity.
type ByFileId []FileId

func (b ByFileId) Len() int           { return len(b) }
func (b ByFileId) Less(i, j int) bool { return b[i] < b[j] }
func (b ByFileId) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }
