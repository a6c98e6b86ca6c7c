package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidReference = errors.New("invalid reference")
	ErrDuplicateName    = errors.New("duplicate name")
	ErrInvalidInput     = errors.New("invalid input")
)
