package usecase

import "errors"

var (
	ErrForbidden = errors.New("not enough permissions")
	// ErrInvalidReference marks a payload pointing at a hospital, room or
	// account that does not exist.
	ErrInvalidReference = errors.New("referenced entity does not exist")
)
