package admin

import (
	"errors"
)

var (
	ErrTableConflict = errors.New("table already exists")
	ErrInvalidTable  = errors.New("table number and seats must be positive")
)
