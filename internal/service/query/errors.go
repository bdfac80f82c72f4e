package query

import (
	"errors"
)

var ErrInvalidSlot = errors.New("end time must be after start time")
