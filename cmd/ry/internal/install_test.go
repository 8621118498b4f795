package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhm/ry/internal/fetch"
	"github.com/zhm/ry/internal/tool"
)

func TestInstallFromTarball(t *testing.T) {
	runner := &mockRunner{tools: map[string]bool{"curl": true, "make": true}}
	runner.onPipe = func(src, dst tool.Cmd) error {
		// Stand in for the extraction: give the tree a make build.
		return os.WriteFile(filepath.Join(dst.Dir, "Makefile"), []byte("all:\n"), 0o644)
	}
	app := newTestApp(t, runner)

	url := "https://cache.ruby-lang.org/ruby-1.9.3.tar.gz"
	if err := installRuby(context.Background(), app, url, "1.9.3", nil); err != nil {
		t.Fatalf("installRuby: %v", err)
	}

	// The download landed in the source dir, not the install prefix.
	if len(runner.pipes) != 1 {
		t.Fatalf("got %d pipes, want 1", len(runner.pipes))
	}
	src, dst := runner.pipes[0][0], runner.pipes[0][1]
	if src.Name != "curl" || src.Args[len(src.Args)-1] != url {
		t.Errorf("download = %v %v, want curl ending in %s", src.Name, src.Args, url)
	}
	if dst.Dir != app.store.SourceDir("1.9.3") {
		t.Errorf("extract dir = %q, want %q", dst.Dir, app.store.SourceDir("1.9.3"))
	}

	// The build ran in the source dir with the install dir as prefix.
	if len(runner.runs) != 2 {
		t.Fatalf("got %d runs, want make and make install", len(runner.runs))
	}
	wantEnv := "PREFIX=" + app.store.InstallDir("1.9.3")
	for i, run := range runner.runs {
		if run.Name != "make" || run.Dir != app.store.SourceDir("1.9.3") {
			t.Errorf("run %d = %v in %q, want make in source dir", i, run.Name, run.Dir)
		}
		if len(run.Env) != 1 || run.Env[0] != wantEnv {
			t.Errorf("run %d Env = %v, want [%s]", i, run.Env, wantEnv)
		}
	}
	if len(runner.runs[1].Args) != 1 || runner.runs[1].Args[0] != "install" {
		t.Errorf("second run Args = %v, want [install]", runner.runs[1].Args)
	}

	// The install registered and became current.
	names, err := app.store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 || names[0] != "1.9.3" {
		t.Fatalf("List = %v, want [1.9.3]", names)
	}
	if name, ok := app.store.CurrentName(); !ok || name != "1.9.3" {
		t.Fatalf("CurrentName = (%q, %v), want (1.9.3, true)", name, ok)
	}
	binPath, err := app.activator.BinPath("1.9.3")
	if err != nil {
		t.Fatalf("BinPath: %v", err)
	}
	if !strings.HasPrefix(binPath, app.store.InstallDir("1.9.3")) {
		t.Fatalf("BinPath = %q, want under %q", binPath, app.store.InstallDir("1.9.3"))
	}
}

func TestInstallRecipeDelegates(t *testing.T) {
	runner := &mockRunner{tools: map[string]bool{"curl": true, "ruby-build": true}}
	app := newTestApp(t, runner)

	if err := installRuby(context.Background(), app, "1.9.3-p448", "1.9.3", nil); err != nil {
		t.Fatalf("installRuby: %v", err)
	}

	if len(runner.pipes) != 0 {
		t.Fatalf("got %d pipes, want no direct download", len(runner.pipes))
	}
	if len(runner.runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runner.runs))
	}
	run := runner.runs[0]
	wantArgs := []string{"1.9.3-p448", app.store.InstallDir("1.9.3")}
	if run.Name != "ruby-build" || len(run.Args) != 2 ||
		run.Args[0] != wantArgs[0] || run.Args[1] != wantArgs[1] {
		t.Fatalf("run = %v %v, want ruby-build %v", run.Name, run.Args, wantArgs)
	}
	if name, ok := app.store.CurrentName(); !ok || name != "1.9.3" {
		t.Fatalf("CurrentName = (%q, %v), want (1.9.3, true)", name, ok)
	}
}

func TestInstallRecipeWithoutInstaller(t *testing.T) {
	runner := &mockRunner{tools: map[string]bool{"curl": true}}
	app := newTestApp(t, runner)

	err := installRuby(context.Background(), app, "1.9.3-p448", "1.9.3", nil)
	var fetchErr *fetch.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("installRuby err = %v, want FetchError", err)
	}
	if fetchErr.Stage != fetch.StageFetch {
		t.Fatalf("Stage = %q, want %q", fetchErr.Stage, fetch.StageFetch)
	}
	if !strings.Contains(fetchErr.Detail, "ruby-build") {
		t.Fatalf("Detail = %q, want the missing installer named", fetchErr.Detail)
	}
	if _, ok := app.store.CurrentName(); ok {
		t.Fatal("a failed install must not become current")
	}
}
