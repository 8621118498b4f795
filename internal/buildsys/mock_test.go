package buildsys

import (
	"context"
	"fmt"
	"io"

	"github.com/zhm/ry/internal/tool"
)

// mockRunner records invocations instead of executing tools.
type mockRunner struct {
	// tools lists the names LookPath resolves.
	tools map[string]bool
	// runErr, when set, decides the outcome per invocation.
	runErr func(cmd tool.Cmd) error

	runs []tool.Cmd
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
	if m.runErr != nil {
		return m.runErr(cmd)
	}
	return nil
}

func (m *mockRunner) Pipe(ctx context.Context, src, dst tool.Cmd, diag io.Writer) (error, error) {
	m.runs = append(m.runs, src, dst)
	return nil, nil
}
