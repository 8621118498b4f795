// Package fetch obtains ruby source trees: either by downloading and
// extracting a tarball URL, or by handing the whole install to an external
// recipe installer (ruby-build) when the specifier names a known recipe.
package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/zhm/ry/internal/tool"
)

// downloaders in preference order; the first one found on PATH wins.
var downloaders = []downloader{
	{name: "curl", args: []string{"-L", "-s"}},
	{name: "wget", args: []string{"-q", "-O", "-"}},
}

// recipeInstaller is the external tool consulted for recipe specifiers.
const recipeInstaller = "ruby-build"

type downloader struct {
	name string
	args []string
}

// Adapter materializes sources into build directories.
type Adapter struct {
	runner tool.Runner
	logger *log.Logger

	// transport is resolved once at construction.
	transport    downloader
	transportErr error
}

// New creates an Adapter. preferred forces a transport by name ("curl" or
// "wget"); empty selects the first available in preference order. A missing
// transport is not an error until a URL fetch needs it.
func New(runner tool.Runner, logger *log.Logger, preferred string) *Adapter {
	a := &Adapter{runner: runner, logger: logger}
	a.transport, a.transportErr = selectTransport(runner, preferred)
	return a
}

func selectTransport(runner tool.Runner, preferred string) (downloader, error) {
	for _, d := range downloaders {
		if preferred != "" && d.name != preferred {
			continue
		}
		if _, err := runner.LookPath(d.name); err == nil {
			return d, nil
		}
	}
	if preferred != "" {
		return downloader{}, fmt.Errorf("downloader %q not found", preferred)
	}
	return downloader{}, fmt.Errorf("no downloader found (need curl or wget)")
}

// IsURL reports whether spec is a direct archive URL rather than a recipe
// name.
func IsURL(spec string) bool {
	return strings.Contains(spec, "://")
}

// LogPath is the fixed location extraction diagnostics are written to,
// truncated on every attempt.
func LogPath() string {
	return filepath.Join(os.TempDir(), "ry-fetch.log")
}

// Fetch downloads the archive at url and extracts it into destDir with the
// leading path component stripped, so the archive's single top-level
// directory is flattened away. destDir and parents are created first.
func (a *Adapter) Fetch(ctx context.Context, url, destDir string) error {
	if a.transportErr != nil {
		return &FetchError{Stage: StageFetch, Detail: a.transportErr.Error(), Err: a.transportErr}
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return &FetchError{Stage: StageFetch, Detail: "failed to create " + destDir, Err: err}
	}

	diag, err := os.Create(LogPath())
	if err != nil {
		return &FetchError{Stage: StageFetch, Detail: "failed to open fetch log", Err: err}
	}
	defer diag.Close()

	a.logger.Info("fetching", "url", url, "via", a.transport.name)

	src := tool.Cmd{
		Name: a.transport.name,
		Args: append(append([]string{}, a.transport.args...), url),
	}
	dst := tool.Cmd{
		Dir:  destDir,
		Name: "tar",
		Args: []string{"-xz", "--strip-components", "1"},
	}

	srcErr, dstErr := a.runner.Pipe(ctx, src, dst, diag)
	if srcErr != nil {
		return &FetchError{Stage: StageFetch, Detail: a.transport.name + " failed, see " + LogPath(), Err: srcErr}
	}
	if dstErr != nil {
		return &FetchError{Stage: StageExtract, Detail: "tar failed, see " + LogPath(), Err: dstErr}
	}
	return nil
}

// HasRecipeInstaller reports whether the external recipe installer is
// available on PATH.
func (a *Adapter) HasRecipeInstaller() bool {
	_, err := a.runner.LookPath(recipeInstaller)
	return err == nil
}

// RecipeInstall delegates the entire install of recipe to the external
// installer, which fetches, builds, and installs into prefix on its own.
func (a *Adapter) RecipeInstall(ctx context.Context, recipe, prefix string) error {
	a.logger.Info("installing from recipe", "recipe", recipe, "via", recipeInstaller)

	cmd := tool.Cmd{Name: recipeInstaller, Args: []string{recipe, prefix}}
	if err := a.runner.Run(ctx, cmd); err != nil {
		return &FetchError{Stage: StageFetch, Detail: recipeInstaller + " " + recipe + " failed", Err: err}
	}
	return nil
}
