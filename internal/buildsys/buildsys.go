// Package buildsys detects which build mechanism a ruby source tree uses
// and drives it to completion under an install prefix.
//
// Detection is a strict, ordered decision table over marker files; the
// first matching rule wins. Ordering matters because some trees carry more
// than one marker (a Makefile alongside a Rakefile), and first-match keeps
// the outcome deterministic.
package buildsys

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/zhm/ry/internal/tool"
)

// System identifies the build mechanism driving the post-configure stage.
type System string

const (
	SystemMake      System = "make"
	SystemInstaller System = "installer"
	SystemAnt       System = "ant"
	SystemRake      System = "rake"
)

// Spec describes one build to run.
type Spec struct {
	// SourceDir is the tree to build. Every tool invocation runs with its
	// working directory pinned here; the process never chdirs.
	SourceDir string
	// Prefix is the installation root handed to the build system.
	Prefix string
	// ExtraArgs are passed through to configure or installer as separate
	// argument words.
	ExtraArgs []string
	// CurrentPath is the activation pointer path; the ant driver reports
	// it as the recommended JRUBY_HOME.
	CurrentPath string
}

// Result reports a completed build. Env carries recommended environment
// overrides; the dispatcher never mutates the process environment, the
// caller decides whether and how to apply them.
type Result struct {
	System System
	Env    map[string]string
}

// Dispatcher drives builds through an external-tool runner.
type Dispatcher struct {
	runner tool.Runner
	logger *log.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(runner tool.Runner, logger *log.Logger) *Dispatcher {
	return &Dispatcher{runner: runner, logger: logger}
}

// Detect returns the build system the post-configure stage will drive for
// srcDir. First match wins:
//
//	Makefile > executable installer > build.xml > Rakefile
//
// No marker yields an UnrecognizedError.
func Detect(srcDir string) (System, error) {
	switch {
	case fileExists(filepath.Join(srcDir, "Makefile")):
		return SystemMake, nil
	case isExecutable(filepath.Join(srcDir, "installer")):
		return SystemInstaller, nil
	case fileExists(filepath.Join(srcDir, "build.xml")):
		return SystemAnt, nil
	case fileExists(filepath.Join(srcDir, "Rakefile")):
		return SystemRake, nil
	}
	return "", &UnrecognizedError{Dir: srcDir}
}

// Build runs the configure stage then the detected build system. The
// tables are evaluated once per call; a tree whose markers change mid-build
// is not re-examined.
func (d *Dispatcher) Build(ctx context.Context, spec Spec) (Result, error) {
	if err := d.configure(ctx, spec); err != nil {
		return Result{}, err
	}

	system, err := Detect(spec.SourceDir)
	if err != nil {
		return Result{}, err
	}
	d.logger.Info("building", "system", string(system), "prefix", spec.Prefix)

	switch system {
	case SystemMake:
		err = d.buildMake(ctx, spec)
	case SystemInstaller:
		err = d.buildInstaller(ctx, spec)
	case SystemAnt:
		env, antErr := d.buildAnt(ctx, spec)
		if antErr != nil {
			return Result{}, antErr
		}
		return Result{System: system, Env: env}, nil
	case SystemRake:
		err = d.buildRake(ctx, spec)
	}
	if err != nil {
		return Result{}, err
	}
	return Result{System: system}, nil
}

// configure implements the pre-build table: generate a configure script
// from its template when possible, run it when executable, otherwise note
// the no-op and move on.
func (d *Dispatcher) configure(ctx context.Context, spec Spec) error {
	script := filepath.Join(spec.SourceDir, "configure")

	if fileExists(script) && !isExecutable(script) && d.hasConfigureTemplate(spec.SourceDir) {
		if gen, err := d.autoconfTool(); err == nil {
			d.logger.Info("generating configure", "tool", gen)
			cmd := tool.Cmd{Dir: spec.SourceDir, Name: gen}
			if err := d.runner.Run(ctx, cmd); err != nil {
				return &BuildFailedError{Step: gen, Err: err}
			}
		}
	}

	if !isExecutable(script) {
		d.logger.Info("no configure script, skipping configure stage", "dir", spec.SourceDir)
		return nil
	}

	args := append([]string{"--prefix=" + spec.Prefix}, spec.ExtraArgs...)
	cmd := tool.Cmd{Dir: spec.SourceDir, Name: script, Args: args}
	if err := d.runner.Run(ctx, cmd); err != nil {
		return &BuildFailedError{Step: "configure", Err: err}
	}
	return nil
}

func (d *Dispatcher) hasConfigureTemplate(srcDir string) bool {
	return fileExists(filepath.Join(srcDir, "configure.in")) ||
		fileExists(filepath.Join(srcDir, "configure.ac"))
}

func (d *Dispatcher) autoconfTool() (string, error) {
	for _, name := range []string{"autoconf", "autoreconf"} {
		if _, err := d.runner.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", errors.New("no autoconf tool found")
}

func (d *Dispatcher) buildMake(ctx context.Context, spec Spec) error {
	if _, err := d.runner.LookPath("make"); err != nil {
		return &ToolMissingError{Tool: "make"}
	}
	env := []string{"PREFIX=" + spec.Prefix}

	if err := d.runner.Run(ctx, tool.Cmd{Dir: spec.SourceDir, Name: "make", Env: env}); err != nil {
		return &BuildFailedError{Step: "make", Err: err}
	}
	if err := d.runner.Run(ctx, tool.Cmd{Dir: spec.SourceDir, Name: "make", Args: []string{"install"}, Env: env}); err != nil {
		return &BuildFailedError{Step: "make install", Err: err}
	}
	return nil
}

func (d *Dispatcher) buildInstaller(ctx context.Context, spec Spec) error {
	script := filepath.Join(spec.SourceDir, "installer")
	args := append([]string{"--auto=" + spec.Prefix}, spec.ExtraArgs...)
	if err := d.runner.Run(ctx, tool.Cmd{Dir: spec.SourceDir, Name: script, Args: args}); err != nil {
		return &BuildFailedError{Step: "installer", Err: err}
	}
	return nil
}

// jrubyLinks maps the prefixed executables an ant build produces to the
// plain names activation expects next to them.
var jrubyLinks = map[string]string{
	"jruby": "ruby",
	"jgem":  "gem",
	"jirb":  "irb",
}

// buildAnt drives a jruby-style ant build: compile the jar, expose the
// j-prefixed executables under their plain names, and link the build's bin
// and lib directly into the prefix rather than copying.
func (d *Dispatcher) buildAnt(ctx context.Context, spec Spec) (map[string]string, error) {
	if _, err := d.runner.LookPath("ant"); err != nil {
		return nil, &ToolMissingError{Tool: "ant"}
	}
	if err := d.runner.Run(ctx, tool.Cmd{Dir: spec.SourceDir, Name: "ant", Args: []string{"jar"}}); err != nil {
		return nil, &BuildFailedError{Step: "ant jar", Err: err}
	}

	binDir := filepath.Join(spec.SourceDir, "bin")
	for prefixed, plain := range jrubyLinks {
		if err := relink(prefixed, filepath.Join(binDir, plain)); err != nil {
			return nil, &BuildFailedError{Step: "link " + plain, Err: err}
		}
	}

	for _, sub := range []string{"bin", "lib"} {
		if err := relink(filepath.Join(spec.SourceDir, sub), filepath.Join(spec.Prefix, sub)); err != nil {
			return nil, &BuildFailedError{Step: "link " + sub, Err: err}
		}
	}

	return map[string]string{"JRUBY_HOME": spec.CurrentPath}, nil
}

func (d *Dispatcher) buildRake(ctx context.Context, spec Spec) error {
	if _, err := d.runner.LookPath("rake"); err != nil {
		return &ToolMissingError{Tool: "rake"}
	}
	cmd := tool.Cmd{
		Dir:  spec.SourceDir,
		Name: "rake",
		Args: []string{"install"},
		Env:  []string{"PREFIX=" + spec.Prefix},
	}
	if err := d.runner.Run(ctx, cmd); err != nil {
		return &BuildFailedError{Step: "rake install", Err: err}
	}
	return nil
}

// relink replaces path with a symlink to target.
func relink(target, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.Symlink(target, path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Mode()&0o111 != 0
}
