// Package activate selects which installed ruby is current and derives the
// execution PATH that exposes it.
package activate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/zhm/ry/internal/store"
	"github.com/zhm/ry/internal/tool"
)

// Manager owns the activation pointer; it is the only writer. Everything
// else reads it through the store.
type Manager struct {
	store  *store.Store
	runner tool.Runner
	logger *log.Logger

	// getenv supplies the ambient environment; swapped in tests.
	getenv func(string) string
}

// NewManager creates a Manager over st.
func NewManager(st *store.Store, runner tool.Runner, logger *log.Logger) *Manager {
	return &Manager{store: st, runner: runner, logger: logger, getenv: os.Getenv}
}

// Use makes name the current ruby. The switch is delete-then-create: the
// old pointer is removed before the new one exists, so a concurrent reader
// can observe a window with no current version. The returned name is
// re-read through the store rather than echoing the input.
func (m *Manager) Use(name string) (string, error) {
	if err := m.store.AssertInstalled(name); err != nil {
		return "", err
	}

	current := m.store.CurrentPath()
	if err := os.Remove(current); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to clear current pointer: %w", err)
	}
	if err := os.Symlink(m.store.InstallDir(name), current); err != nil {
		return "", fmt.Errorf("failed to set current pointer: %w", err)
	}

	resolved, ok := m.store.CurrentName()
	if !ok {
		return "", fmt.Errorf("current pointer did not resolve after switching to %s", name)
	}
	return resolved, nil
}

// BinPath returns the bin directory for name. The directory is not
// required to exist; a missing bin simply resolves nothing at runtime.
func (m *Manager) BinPath(name string) (string, error) {
	if err := m.store.AssertInstalled(name); err != nil {
		return "", err
	}
	return m.store.BinDir(name), nil
}

// FullPath derives the search path exposing one ruby: its bin directory
// prepended to the ambient PATH with every entry inside the store root
// filtered out, so entries from other versions never leak through. The
// relative order of surviving entries is preserved. An empty name uses the
// activation pointer's bin.
func (m *Manager) FullPath(name string) (string, error) {
	var bin string
	if name == "" {
		bin = filepath.Join(m.store.CurrentPath(), "bin")
	} else {
		var err error
		bin, err = m.BinPath(name)
		if err != nil {
			return "", err
		}
	}

	dirs := []string{bin}
	for _, entry := range filepath.SplitList(m.getenv("PATH")) {
		if entry == "" || m.insideStore(entry) {
			continue
		}
		dirs = append(dirs, entry)
	}
	return strings.Join(dirs, string(os.PathListSeparator)), nil
}

func (m *Manager) insideStore(dir string) bool {
	root := filepath.Clean(m.store.Root())
	dir = filepath.Clean(dir)
	return dir == root || strings.HasPrefix(dir, root+string(os.PathSeparator))
}

// Exec runs command once per name in namesCsv, in the order given. Each
// invocation gets the name's derived PATH through the subprocess
// environment only; nothing leaks to sibling invocations or the parent
// process. Per-name failures do not stop the remaining names; the joined
// error reports every failure.
func (m *Manager) Exec(ctx context.Context, namesCsv, command string, args ...string) error {
	var errs []error
	for _, name := range strings.Split(namesCsv, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		path, err := m.FullPath(name)
		if err != nil {
			m.logger.Warn("skipping", "ruby", name, "err", err)
			errs = append(errs, err)
			continue
		}

		// The command must resolve through the substituted PATH, not the
		// parent's; by the time the child looks, its PATH is correct but
		// the executable was already chosen.
		resolved, err := tool.LookPathIn(command, path)
		if err != nil {
			m.logger.Warn("skipping", "ruby", name, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		m.logger.Debug("exec", "ruby", name, "cmd", resolved)
		cmd := tool.Cmd{
			Env:  []string{"PATH=" + path},
			Name: resolved,
			Args: args,
		}
		if err := m.runner.Run(ctx, cmd); err != nil {
			m.logger.Warn("command failed", "ruby", name, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
