// Package fileset provides the filesystem operations for one materials
// directory: listing candidate files, reading and overwriting scripts, and
// the one-shot backup/restore cycle under the backup subdirectory.
package fileset

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Manager performs file operations rooted at a single materials directory.
// Backups live in a fixed-name subdirectory of that directory and are
// created lazily, on the first backup write.
type Manager struct {
	dir       string
	backupDir string
}

// New creates a Manager for the given directory. The directory must exist.
func New(dir, backupSubdir string) (*Manager, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Errorf("checking materials directory: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s is not a directory", dir)
	}
	dir = filepath.Clean(dir)
	return &Manager{
		dir:       dir,
		backupDir: filepath.Join(dir, backupSubdir),
	}, nil
}

// Dir returns the materials directory path.
func (m *Manager) Dir() string { return m.dir }

// BackupDir returns the backup subdirectory path. The directory may not
// exist yet.
func (m *Manager) BackupDir() string { return m.backupDir }

// List returns the names of regular files directly under the materials
// directory whose name matches pattern, in directory order (sorted by
// name). Subdirectories, including the backup directory, are not descended.
func (m *Manager) List(ctx context.Context, pattern string) ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, errors.Errorf("reading materials directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := doublestar.Match(pattern, entry.Name())
		if err != nil {
			return nil, errors.Errorf("matching pattern %q: %w", pattern, err)
		}
		if ok {
			names = append(names, entry.Name())
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("dir", m.dir).
		Str("pattern", pattern).
		Int("matches", len(names)).
		Msg("listed material files")
	return names, nil
}

// Read returns the full content of a file in the materials directory.
func (m *Manager) Read(ctx context.Context, name string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(m.dir, name))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// Write replaces a file in the materials directory. The write is plain, not
// atomic; the backup taken beforehand is the recovery path for a crash
// mid-write.
func (m *Manager) Write(ctx context.Context, name string, content []byte) error {
	if err := os.WriteFile(filepath.Join(m.dir, name), content, 0644); err != nil {
		return errors.Errorf("writing file: %w", err)
	}
	return nil
}

// Backup copies a file byte-identical into the backup subdirectory,
// creating the subdirectory if absent. The copy completes before Backup
// returns, so callers may overwrite the original afterwards.
func (m *Manager) Backup(ctx context.Context, name string) error {
	if err := os.MkdirAll(m.backupDir, 0755); err != nil {
		return errors.Errorf("creating backup directory: %w", err)
	}
	src := filepath.Join(m.dir, name)
	dst := filepath.Join(m.backupDir, name)
	if err := copyFile(src, dst); err != nil {
		return errors.Errorf("backing up %s: %w", name, err)
	}

	zerolog.Ctx(ctx).Debug().Str("file", name).Str("backup", dst).Msg("backed up original")
	return nil
}

// ListBackups returns the names of backed-up files matching pattern. A
// missing backup directory yields no names, not an error.
func (m *Manager) ListBackups(ctx context.Context, pattern string) ([]string, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Errorf("reading backup directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := doublestar.Match(pattern, entry.Name())
		if err != nil {
			return nil, errors.Errorf("matching pattern %q: %w", pattern, err)
		}
		if ok {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Restore copies a backed-up file over its sibling original.
func (m *Manager) Restore(ctx context.Context, name string) error {
	src := filepath.Join(m.backupDir, name)
	dst := filepath.Join(m.dir, name)
	if err := copyFile(src, dst); err != nil {
		return errors.Errorf("restoring %s: %w", name, err)
	}

	zerolog.Ctx(ctx).Debug().Str("file", name).Msg("restored from backup")
	return nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return errors.Errorf("copying file: %w", err)
	}

	return nil
}
