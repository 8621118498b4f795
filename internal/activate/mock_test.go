package activate

import (
	"context"
	"fmt"
	"io"

	"github.com/zhm/ry/internal/tool"
)

// mockRunner records invocations instead of executing commands.
type mockRunner struct {
	runErr func(cmd tool.Cmd) error
	runs   []tool.Cmd
}

func (m *mockRunner) LookPath(name string) (string, error) {
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
	return nil, nil
}
