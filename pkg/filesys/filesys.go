// Package filesys collects the small set of filesystem primitives the
// storage engine needs: creating the data directory, checking whether it
// already exists, and unlinking a retired segment file.
package filesys

import (
	"errors"
	"os"
)

// ErrIsNotDir is returned by CreateDir when the target path exists and is a
// regular file rather than a directory.
var ErrIsNotDir = errors.New("path isn't a directory")

// CreateDir creates dirPath with the given permission bits.
//
// With force=false, a stat failure other than "does not exist" is returned
// as is, and a path that already exists is left untouched and nil is
// returned, without checking that it is a directory. With force=true, a path
// that exists but isn't a directory fails with ErrIsNotDir; an existing
// directory is kept and its permission bits are reset to permission.
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	stat, err := os.Stat(dirPath)
	if !force && !os.IsNotExist(err) {
		return err
	}
	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}

	if err := os.MkdirAll(dirPath, permission); err != nil {
		return err
	}
	return os.Chmod(dirPath, permission)
}

// DeleteFile unlinks the file at filePath.
func DeleteFile(filePath string) error {
	return os.Remove(filePath)
}

// Exists reports whether a file or directory exists at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
