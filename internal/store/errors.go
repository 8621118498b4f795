package store

import "fmt"

// NotInstalledError reports an operation on a version that is not in the
// store.
type NotInstalledError struct {
	Name string
}

func (e *NotInstalledError) Error() string {
	if e.Name == "" {
		return "no ruby specified"
	}
	return fmt.Sprintf("ruby %q is not installed", e.Name)
}
