package seqfile

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrExhausted matches every *ExhaustedError.
	ErrExhausted = errors.New("attempts exhausted")

	// ErrIndexOverflow is returned when the next index does not fit in an int.
	ErrIndexOverflow = errors.New("sequence index overflows int")
)

// ConfigurationError reports an inconsistent request. It is raised before the
// filesystem is touched.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// ExhaustedError reports that every candidate tried was already taken.
type ExhaustedError struct {
	Folder   string
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("unable to create file at %s after %d attempts", e.Folder, e.Attempts)
}

// Is reports whether target is ErrExhausted.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}
