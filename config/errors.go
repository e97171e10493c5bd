package config

import "errors"

// Validation errors. Every problem reported by Validate wraps one of these.
var (
	ErrNoBodies       = errors.New("system declares no bodies")
	ErrEmptyName      = errors.New("empty name")
	ErrDuplicateName  = errors.New("duplicate name")
	ErrUnknownParent  = errors.New("unknown parent")
	ErrCycle          = errors.New("parent cycle")
	ErrNonFinite      = errors.New("non-finite value")
	ErrNegativeRadius = errors.New("negative radius")
	ErrZeroPeriod     = errors.New("zero period")
	ErrConflict       = errors.New("conflicting fields")
	ErrMissingScale   = errors.New("scale required")
	ErrUnknownTarget  = errors.New("unknown camera target")
	ErrSmoothing      = errors.New("smoothing out of range")
	ErrProjection     = errors.New("invalid projection")
)

// ErrUnknownPreset is returned when a preset name is not built in.
var ErrUnknownPreset = errors.New("unknown preset")

// ErrInvalidSettings is returned when runtime settings are out of range.
var ErrInvalidSettings = errors.New("invalid settings")
