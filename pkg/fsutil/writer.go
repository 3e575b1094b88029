package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to path, replacing any previous file.
//
// The content is written to a temporary file in the same directory, flushed to
// disk and closed before it is renamed over the destination, so readers observe
// either the previous file or the complete new content. Missing parent directories
// are created. A perm of zero selects DefaultFileMode. A symlink at path is
// followed and its target is replaced, as a shell redirection would do.
//
// Returns:
//   - int: number of bytes written
//   - error: ErrEmptyOutputPath, ErrNotRegularFile, or a wrapped filesystem error
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (int, error) {
	if path == "" {
		return 0, ErrEmptyOutputPath
	}

	if perm == 0 {
		perm = DefaultFileMode
	}

	path, err := resolveTarget(filepath.Clean(path))
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)

	err = os.MkdirAll(dir, dirPermUserGroupRX)
	if err != nil {
		return 0, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}

	tmpName := tmp.Name()

	written, err := writeAndClose(tmp, data, perm)
	if err != nil {
		_ = os.Remove(tmpName)

		return 0, err
	}

	err = os.Rename(tmpName, path)
	if err != nil {
		_ = os.Remove(tmpName)

		return 0, fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return written, nil
}

// maxSymlinkHops matches the Linux limit for nested symlinks.
const maxSymlinkHops = 40

// resolveTarget follows symlinks at path and returns the file to replace.
// Dangling links resolve to their missing target, which is then created.
func resolveTarget(path string) (string, error) {
	for range maxSymlinkHops {
		info, err := os.Lstat(path)

		switch {
		case errors.Is(err, os.ErrNotExist):
			return path, nil
		case err != nil:
			return "", fmt.Errorf("failed to check file %s: %w", path, err)
		case info.Mode().IsRegular():
			return path, nil
		case info.Mode()&os.ModeSymlink == 0:
			return "", fmt.Errorf("%w: %s", ErrNotRegularFile, path)
		}

		target, err := os.Readlink(path)
		if err != nil {
			return "", fmt.Errorf("failed to resolve symlink %s: %w", path, err)
		}

		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}

		path = filepath.Clean(target)
	}

	return "", fmt.Errorf("%w: too many levels of symbolic links: %s", ErrNotRegularFile, path)
}

func writeAndClose(file *os.File, data []byte, perm os.FileMode) (int, error) {
	written, err := file.Write(data)
	if err != nil {
		_ = file.Close()

		return 0, fmt.Errorf("failed to write %s: %w", file.Name(), err)
	}

	err = file.Chmod(perm)
	if err != nil {
		_ = file.Close()

		return 0, fmt.Errorf("failed to set mode on %s: %w", file.Name(), err)
	}

	err = file.Sync()
	if err != nil {
		_ = file.Close()

		return 0, fmt.Errorf("failed to flush %s: %w", file.Name(), err)
	}

	err = file.Close()
	if err != nil {
		return 0, fmt.Errorf("failed to close %s: %w", file.Name(), err)
	}

	return written, nil
}
