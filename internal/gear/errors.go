package gear

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry indicates a bounding box with no usable width.
	ErrInvalidGeometry = errors.New("gear: invalid geometry (width must be positive)")

	// ErrInvalidToothCount indicates a zero tooth count.
	ErrInvalidToothCount = errors.New("gear: invalid tooth count (must be non-zero)")
)

// RegistrationError wraps a registration failure with the gear it concerns.
type RegistrationError struct {
	ID      string
	Teeth   int
	Wrapped error
}

func (e *RegistrationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("register gear (teeth=%d): %v", e.Teeth, e.Wrapped)
	}
	return fmt.Sprintf("register gear %q (teeth=%d): %v", e.ID, e.Teeth, e.Wrapped)
}

func (e *RegistrationError) Unwrap() error {
	return e.Wrapped
}
