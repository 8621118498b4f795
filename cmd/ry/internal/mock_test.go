package internal

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/zhm/ry/internal/activate"
	"github.com/zhm/ry/internal/buildsys"
	"github.com/zhm/ry/internal/config"
	"github.com/zhm/ry/internal/fetch"
	"github.com/zhm/ry/internal/store"
	"github.com/zhm/ry/internal/tool"
)

// mockRunner simulates the external tools an install drives.
type mockRunner struct {
	// tools is the set of names LookPath resolves.
	tools map[string]bool
	// onPipe runs in place of the piped download so a test can
	// materialize the extracted tree itself.
	onPipe func(src, dst tool.Cmd) error
	runErr func(cmd tool.Cmd) error
	runs   []tool.Cmd
	pipes  [][2]tool.Cmd
}

func (m *mockRunner) LookPath(name string) (string, error) {
	if m.tools[name] {
		return "/usr/bin/" + name, nil
	}
	return "", fmt.Errorf("%s: executable file not found", name)
}

func (m *mockRunner) Run(ctx context.Context, cmd tool.Cmd) error {
	m.runs = append(m.runs, cmd)
	if m.runErr != nil {
		return m.runErr(cmd)
	}
	return nil
}

func (m *mockRunner) Pipe(ctx context.Context, src, dst tool.Cmd, diag io.Writer) (error, error) {
	m.pipes = append(m.pipes, [2]tool.Cmd{src, dst})
	if m.onPipe != nil {
		if err := m.onPipe(src, dst); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// newTestApp wires the command components over a throwaway store root, the
// same way newApp does for real invocations.
func newTestApp(t *testing.T, runner *mockRunner) *app {
	t.Helper()
	st := store.New(t.TempDir())
	logger := log.New(io.Discard)
	return &app{
		cfg:        &config.Config{Root: st.Root()},
		logger:     logger,
		store:      st,
		runner:     runner,
		fetcher:    fetch.New(runner, logger, ""),
		dispatcher: buildsys.NewDispatcher(runner, logger),
		activator:  activate.NewManager(st, runner, logger),
	}
}
