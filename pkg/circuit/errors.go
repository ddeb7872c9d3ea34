package circuit

import "errors"

var (
	// ErrInvalidParams is returned when a circuit parameter set cannot be
	// evaluated (non-positive resistances, supply or driver count).
	ErrInvalidParams = errors.New("invalid circuit parameters")

	// ErrVoltageOutOfRange is returned for input voltages outside the range
	// the model is defined for.
	ErrVoltageOutOfRange = errors.New("voltage out of range")

	// ErrDutyOutOfRange is returned for duty codes that do not fit the 8-bit
	// compare register.
	ErrDutyOutOfRange = errors.New("duty code out of range")
)
