package board

import "errors"

var (
	ErrBoardNotFound  = errors.New("board not found")
	ErrInvalidProfile = errors.New("invalid board profile")
)
