package clock

import (
	"errors"
	"fmt"

	"omibyte.io/clocktree/register"
)

var (
	// ErrValueOutOfRange reports a divisor, multiplier, pin or source that the
	// hardware cannot take. It is always returned before any register write.
	ErrValueOutOfRange = register.ErrValueOutOfRange

	// ErrNotReady reports a dependency whose frequency is currently zero.
	ErrNotReady = errors.New("clock not ready")

	ErrUnknownClock = errors.New("unknown clock")

	// ErrInUse reports a change to a leaf that the running PLL or the main
	// clock takes its input from. It is also an ErrValueOutOfRange.
	ErrInUse = fmt.Errorf("%w: clock in use", ErrValueOutOfRange)
)
