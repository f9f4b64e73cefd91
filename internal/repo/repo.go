package repo

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateIdentity = errors.New("username or email already taken")
	ErrNotFound          = errors.New("invalid credentials")
)
