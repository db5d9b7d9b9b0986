package register

import "errors"

var (
	ErrValueOutOfRange = errors.New("value out of range")
	ErrNoRegister      = errors.New("register index out of bounds")
	ErrLocked          = errors.New("register is write-protected")
	ErrNotReentrant    = errors.New("protected section already open")
)
