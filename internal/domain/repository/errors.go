package repository

import "errors"

// ErrDuplicateKey is returned by repositories when a write hits a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")
