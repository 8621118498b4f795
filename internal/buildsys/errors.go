package buildsys

import "fmt"

// ToolMissingError reports that a required external build tool is not on
// PATH.
type ToolMissingError struct {
	Tool string
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("required build tool %q not found", e.Tool)
}

// UnrecognizedError reports a source tree with none of the known build
// markers. It is fatal for the surrounding install.
type UnrecognizedError struct {
	Dir string
}

func (e *UnrecognizedError) Error() string {
	return fmt.Sprintf("no recognized build system in %s", e.Dir)
}

// BuildFailedError reports a build tool that ran and exited non-zero.
type BuildFailedError struct {
	Step string
	Err  error
}

func (e *BuildFailedError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *BuildFailedError) Unwrap() error {
	return e.Err
}
