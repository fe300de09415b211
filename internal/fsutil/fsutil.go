package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Default permissions for directories and files created by this package.
const (
	DirPerm  fs.FileMode = 0o755
	FilePerm fs.FileMode = 0o644
)

// NormalizePath expands a leading "~" to the user's home directory and
// returns a cleaned absolute path. Relative paths resolve against the
// working directory.
func NormalizePath(p string) (string, error) {
	if p == "" {
		return "", ErrEmptyPath
	}

	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", p, err)
	}
	return abs, nil
}

// ListFiles returns the names of regular files directly inside dir whose
// extension equals ext (including the dot). An empty ext matches every file.
// Names are sorted so callers get a stable order.
func ListFiles(fsys fs.FS, dir, ext string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ext != "" && path.Ext(e.Name()) != ext {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// FindFilesByExtension walks root recursively and returns the paths of all
// regular files with the given extension, sorted.
func FindFilesByExtension(root, ext string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && (ext == "" || filepath.Ext(p) == ext) {
			found = append(found, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(found)
	return found, nil
}

// EnsureDir creates path and any missing parents with perm.
// An existing directory is left untouched.
func EnsureDir(p string, perm fs.FileMode) error {
	if p == "" {
		return ErrEmptyPath
	}

	info, err := os.Stat(p)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("%s: %w", p, ErrNotDirectory)
		}
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("checking %s: %w", p, err)
	}

	if err := os.MkdirAll(p, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", p, err)
	}
	return nil
}

// CreateFile creates an empty file at path, creating parent directories as
// needed. An existing file is not truncated.
func CreateFile(p string) error {
	if p == "" {
		return ErrEmptyPath
	}
	if err := EnsureDir(filepath.Dir(p), DirPerm); err != nil {
		return err
	}

	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY, FilePerm) //nolint:gosec // caller-controlled path
	if err != nil {
		return fmt.Errorf("creating file %s: %w", p, err)
	}
	return f.Close()
}

// FixPermissions walks root and sets dirPerm on every directory (root
// included) and filePerm on every regular file whose permission bits differ.
// Symlinks are not followed.
//
// Returns the number of entries changed.
func FixPermissions(root string, dirPerm, filePerm fs.FileMode) (int, error) {
	changed := 0
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		var want fs.FileMode
		switch {
		case d.IsDir():
			want = dirPerm
		case d.Type().IsRegular():
			want = filePerm
		default:
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Mode().Perm() == want.Perm() {
			return nil
		}
		if err := os.Chmod(p, want.Perm()); err != nil {
			return err
		}
		changed++
		return nil
	})
	if err != nil {
		return changed, fmt.Errorf("fixing permissions under %s: %w", root, err)
	}
	return changed, nil
}

// PermissionString renders the permission bits of mode as "rwxr-xr-x".
func PermissionString(mode fs.FileMode) string {
	const rwx = "rwxrwxrwx"
	perm := mode.Perm()

	var b strings.Builder
	b.Grow(len(rwx))
	for i := range len(rwx) {
		if perm&(1<<uint(len(rwx)-1-i)) != 0 {
			b.WriteByte(rwx[i])
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
