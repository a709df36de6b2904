package workflow

import "errors"

// ErrNoDraft is returned by Deploy when there is nothing staged.
var ErrNoDraft = errors.New("no draft to deploy")

// DuplicateNameError is returned when adding a server whose name is
// already taken in the working configuration.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return "server " + e.Name + " already exists"
}

// NotFoundError is returned when deleting a server that isn't in the
// working configuration.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "server " + e.Name + " not found"
}
