package workshop

import "errors"

var (
	ErrWorkshopNotFound = errors.New("workshop not found")
	ErrMissingName      = errors.New("workshop name is required")
	ErrWorkshopInactive = errors.New("workshop is inactive")
)
