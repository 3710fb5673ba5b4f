// Package vfs provides the filesystem abstraction the finder reads directories through.
// It wraps afero so that walks can run against the real filesystem or an in-memory tree.
package vfs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FS is the filesystem interface used throughout the codebase.
type FS = afero.Fs

// NewOSFS returns a filesystem backed by the real operating system filesystem.
func NewOSFS() FS {
	return afero.NewOsFs()
}

// NewMemMapFS returns an in-memory filesystem for testing purposes.
func NewMemMapFS() FS {
	return afero.NewMemMapFs()
}

// IsOS reports whether the filesystem is backed by the operating system.
func IsOS(fs FS) bool {
	_, ok := fs.(*afero.OsFs)
	return ok
}

// ReadDir reads the directory named by dirname and returns a list of its entries sorted by name.
// Symbolic links are reported as links, use ResolveLink to get the target description.
func ReadDir(fs FS, dirname string) ([]os.FileInfo, error) {
	return afero.ReadDir(fs, dirname)
}

// ResolveLink returns the description of the symlink target when info describes a symbolic link, and info
// itself otherwise. Dangling links keep their own description.
func ResolveLink(fs FS, path string, info os.FileInfo) (os.FileInfo, error) {
	if info.Mode()&os.ModeSymlink == 0 {
		return info, nil
	}

	target, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return info, nil
		}

		return nil, err
	}

	return target, nil
}

// Symlink creates a symbolic link. It uses afero's SymlinkIfPossible
// which is only supported by filesystems implementing afero.Linker.
func Symlink(fs FS, oldname, newname string) error {
	linker, ok := fs.(afero.Linker)
	if !ok {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: afero.ErrNoSymlink}
	}

	return linker.SymlinkIfPossible(oldname, newname)
}

// WriteFile writes data to a file on the given filesystem.
func WriteFile(fs FS, filename string, data []byte, perm os.FileMode) error {
	return afero.WriteFile(fs, filename, data, perm)
}

// CreateTree creates the given slash-separated paths under root. Paths ending with a slash become
// directories, every other path becomes an empty file with its parent directories created as needed.
func CreateTree(fs FS, root string, paths ...string) error {
	for _, path := range paths {
		fullPath := filepath.Join(root, filepath.FromSlash(path))

		if strings.HasSuffix(path, "/") {
			if err := fs.MkdirAll(fullPath, os.ModePerm); err != nil {
				return err
			}

			continue
		}

		if err := fs.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
			return err
		}

		if err := afero.WriteFile(fs, fullPath, nil, 0644); err != nil {
			return err
		}
	}

	return nil
}

// ReadFile reads the named file.
func ReadFile(fs FS, filename string) ([]byte, error) {
	return afero.ReadFile(fs, filename)
}
