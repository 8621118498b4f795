// Package store manages the on-disk registry of installed rubies.
//
// The layout under a store root R is:
//
//	R/versions/<name>/       one directory per installed ruby
//	R/versions/<name>/src/   transient build workspace
//	R/versions/<name>/bin/   executables exposed by activation
//	R/current                symlink to R/versions/<active-name>
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zhm/ry/pkgs/gnu"
)

// Store is the registry of installed versions rooted at a base directory.
// The set of installed names is never cached; every call reflects disk state.
type Store struct {
	root string
}

// New creates a Store rooted at root. The directory is not created until
// EnsureLayout or an install touches it.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the store root directory.
func (s *Store) Root() string {
	return s.root
}

// VersionsDir returns the directory holding one subdirectory per install.
func (s *Store) VersionsDir() string {
	return filepath.Join(s.root, "versions")
}

// InstallDir returns the installation root for name. It doubles as the
// --prefix handed to build systems.
func (s *Store) InstallDir(name string) string {
	return filepath.Join(s.VersionsDir(), name)
}

// SourceDir returns the build workspace for name.
func (s *Store) SourceDir(name string) string {
	return filepath.Join(s.InstallDir(name), "src")
}

// BinDir returns the bin directory activation exposes for name. The
// directory itself is not required to exist.
func (s *Store) BinDir(name string) string {
	return filepath.Join(s.InstallDir(name), "bin")
}

// CurrentPath returns the path of the activation pointer.
func (s *Store) CurrentPath() string {
	return filepath.Join(s.root, "current")
}

// EnsureLayout creates the store skeleton if it is missing.
func (s *Store) EnsureLayout() error {
	if err := os.MkdirAll(s.VersionsDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create store layout: %w", err)
	}
	return nil
}

// List returns the installed names in version-sorted order. A missing
// versions directory is an empty store, not an error.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.VersionsDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	gnu.Sort(names)
	return names, nil
}

// Exists reports whether name is installed. A directory present under
// versions/ counts as installed even if a build inside it failed.
func (s *Store) Exists(name string) bool {
	if name == "" {
		return false
	}
	info, err := os.Stat(s.InstallDir(name))
	return err == nil && info.IsDir()
}

// AssertInstalled fails with a NotInstalledError when name is empty or not
// installed. Every name-taking operation calls this first.
func (s *Store) AssertInstalled(name string) error {
	if !s.Exists(name) {
		return &NotInstalledError{Name: name}
	}
	return nil
}

// CurrentName resolves the activation pointer and returns the active name.
// ok is false when the pointer is unset or dangling; neither is an error.
func (s *Store) CurrentName() (name string, ok bool) {
	target, err := os.Readlink(s.CurrentPath())
	if err != nil {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(s.root, target)
	}
	if _, err := os.Stat(target); err != nil {
		// Dangling pointer: the version was removed out from under it.
		return "", false
	}
	return filepath.Base(target), true
}

// CreateInstallDir makes the installation directory for name, marking the
// start of an install.
func (s *Store) CreateInstallDir(name string) error {
	if err := os.MkdirAll(s.InstallDir(name), 0o755); err != nil {
		return fmt.Errorf("failed to create install dir for %s: %w", name, err)
	}
	return nil
}

// Remove deletes versions/<name> recursively. Removing a name that is not
// installed is a no-op. Removing the active version leaves the activation
// pointer dangling; it is not resolved here.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	if err := os.RemoveAll(s.InstallDir(name)); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}
