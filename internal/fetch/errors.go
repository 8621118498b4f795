package fetch

import "fmt"

// Stage identifies which half of a fetch failed.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageExtract Stage = "extract"
)

// FetchError reports a transport or extraction failure. It aborts the
// surrounding install; the caller must not proceed to build.
type FetchError struct {
	Stage  Stage
	Detail string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Detail)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NoRecipeInstallerError reports that spec is not a URL and the recipe
// installer that could interpret it is not on PATH.
func NoRecipeInstallerError(spec string) *FetchError {
	return &FetchError{
		Stage:  StageFetch,
		Detail: fmt.Sprintf("%q is not a URL and %s is not available", spec, recipeInstaller),
	}
}
