// Package tool runs the external programs ry depends on (curl, wget, tar,
// make, ant, rake, autoconf, ruby-build) behind a small interface so the
// rest of the code never touches os/exec directly.
package tool

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Cmd describes one external program invocation.
type Cmd struct {
	// Dir is the working directory for the invocation; empty means the
	// process working directory. The process itself never chdirs.
	Dir string
	// Env holds extra KEY=VALUE entries merged over the ambient environment.
	Env []string
	// Name is the program to run, Args its arguments.
	Name string
	Args []string
}

// Runner executes external tools. Implementations block until the tool
// exits; there is no timeout layer beyond ctx.
type Runner interface {
	// LookPath reports where name resolves on PATH, or an error if it
	// does not.
	LookPath(name string) (string, error)

	// Run executes cmd, streaming its output to the process streams.
	Run(ctx context.Context, cmd Cmd) error

	// Pipe executes src and dst with src's stdout connected to dst's
	// stdin. Diagnostics from both land in diag. The two results are
	// reported separately so callers can tell which side failed.
	Pipe(ctx context.Context, src, dst Cmd, diag io.Writer) (srcErr, dstErr error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct {
	logger *log.Logger
}

// NewRunner returns an ExecRunner that traces invocations through logger.
func NewRunner(logger *log.Logger) *ExecRunner {
	return &ExecRunner{logger: logger}
}

func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// LookPathIn resolves name against an explicit search path rather than the
// ambient PATH. exec.LookPath only consults the parent's environment, so a
// command that should resolve through a substituted PATH must be located
// here before spawning. A name containing a path separator is returned
// unchanged.
func LookPathIn(name, path string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) {
		return name, nil
	}
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() && info.Mode()&0o111 != 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s: executable file not found in substituted PATH", name)
}

func (r *ExecRunner) Run(ctx context.Context, cmd Cmd) error {
	r.logger.Debug("run", "cmd", cmd.Name+" "+strings.Join(cmd.Args, " "), "dir", cmd.Dir)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	return c.Run()
}

func (r *ExecRunner) Pipe(ctx context.Context, src, dst Cmd, diag io.Writer) (srcErr, dstErr error) {
	r.logger.Debug("pipe",
		"src", src.Name+" "+strings.Join(src.Args, " "),
		"dst", dst.Name+" "+strings.Join(dst.Args, " "))

	sc := exec.CommandContext(ctx, src.Name, src.Args...)
	sc.Dir = src.Dir
	sc.Stderr = diag

	dc := exec.CommandContext(ctx, dst.Name, dst.Args...)
	dc.Dir = dst.Dir
	dc.Stdout = diag
	dc.Stderr = diag

	pipe, err := sc.StdoutPipe()
	if err != nil {
		return err, nil
	}
	dc.Stdin = pipe

	if err := sc.Start(); err != nil {
		return err, nil
	}
	if err := dc.Start(); err != nil {
		_ = sc.Process.Kill()
		_ = sc.Wait()
		return nil, err
	}

	return sc.Wait(), dc.Wait()
}
