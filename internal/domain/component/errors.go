package component

import "errors"

var (
	ErrComponentNotFound   = errors.New("salary component not found")
	ErrComponentCodeExists = errors.New("salary component code already exists")
	ErrComponentReferenced = errors.New("salary component is referenced and cannot be deleted")
	ErrInvalidKind         = errors.New("invalid component kind")
	ErrInvalidCalcType     = errors.New("invalid calculation type")
)
