package fetch

import (
	"context"
	"fmt"
	"io"

	"github.com/zhm/ry/internal/tool"
)

type pipeCall struct {
	src, dst tool.Cmd
}

// mockRunner records invocations instead of executing tools.
type mockRunner struct {
	tools  map[string]bool
	runErr error

	pipeSrcErr error
	pipeDstErr error

	runs  []tool.Cmd
	pipes []pipeCall
}

func newMockRunner(tools ...string) *mockRunner {
	m := &mockRunner{tools: make(map[string]bool)}
	for _, t := range tools {
		m.tools[t] = true
	}
	return m
}

func (m *mockRunner) LookPath(name string) (string, error) {
	if m.tools[name] {
		return "/usr/bin/" + name, nil
	}
	return "", fmt.Errorf("%s: executable file not found", name)
}

func (m *mockRunner) Run(ctx context.Context, cmd tool.Cmd) error {
	m.runs = append(m.runs, cmd)
	return m.runErr
}

func (m *mockRunner) Pipe(ctx context.Context, src, dst tool.Cmd, diag io.Writer) (error, error) {
	m.pipes = append(m.pipes, pipeCall{src: src, dst: dst})
	return m.pipeSrcErr, m.pipeDstErr
}
