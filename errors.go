package numbits

import (
	"errors"
	"fmt"
)

// ErrNoFixedWidth is returned by BitWidth for types that have no fixed
// number of bits. It wraps errors.ErrUnsupported.
var ErrNoFixedWidth = fmt.Errorf("numbits: type has no fixed bit width: %w", errors.ErrUnsupported)

// errNoShift is returned by Derive when a type supplies neither Shift nor
// ShiftLeft/ShiftRight.
var errNoShift = fmt.Errorf("numbits: type must implement Shifter or LRShifter: %w", errors.ErrUnsupported)
