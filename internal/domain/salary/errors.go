package salary

import "errors"

var (
	ErrAssignmentNotFound  = errors.New("salary assignment not found")
	ErrNoCurrentAssignment = errors.New("employee has no current salary assignment")
)
