package domain

import "errors"

// ErrTaskNotFound indicates that no task exists for the requested id.
var ErrTaskNotFound = errors.New("task not found")
