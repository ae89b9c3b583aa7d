package schedule

import "errors"

var (
	ErrAssignmentNotFound = errors.New("shift assignment not found")
)
