package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrNameExists       = errors.New("category name already exists")
	ErrMissingName      = errors.New("category name is required")
)
